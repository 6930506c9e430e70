package estoque

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	domestoque "github.com/ewenunessn/gestaoescolar-sub007/internal/domain/estoque"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

// SaidaInput pedido de saída de um produto da escola.
type SaidaInput struct {
	TenantID   string
	UsuarioID  string
	EscolaID   string
	ProdutoID  string
	Quantidade decimal.Decimal
	Estrategia string
	Motivo     string
}

// SaidaFromRequest adapta o body HTTP para SaidaInput.
func SaidaFromRequest(tenantID, usuarioID, escolaID string, in dto.SaidaRequest) SaidaInput {
	return SaidaInput{
		TenantID:   tenantID,
		UsuarioID:  usuarioID,
		EscolaID:   escolaID,
		ProdutoID:  in.ProdutoID,
		Quantidade: in.Quantidade,
		Estrategia: in.Estrategia,
		Motivo:     in.Motivo,
	}
}

// SimularSaida calcula o plano de consumo sem gravar nada. Lotes vencidos não entram
// no plano e são devolvidos em LotesVencidos; falta de saldo vem em Faltante e Aviso.
func (uc *UseCase) SimularSaida(ctx context.Context, in SaidaInput) (*dto.PlanoSaidaResponse, error) {
	estrategia, err := domestoque.ParseEstrategia(in.Estrategia)
	if err != nil {
		return nil, err
	}
	if !in.Quantidade.IsPositive() {
		return nil, domain.ErrQuantidadeInvalida
	}
	if _, err := uc.escola(ctx, in.TenantID, in.EscolaID); err != nil {
		return nil, err
	}
	if _, err := uc.produto(ctx, in.TenantID, in.ProdutoID); err != nil {
		return nil, err
	}
	lotes, err := uc.loteRepo.ListByEscolaProduto(ctx, in.TenantID, in.EscolaID, in.ProdutoID)
	if err != nil {
		return nil, err
	}
	ref := uc.now()
	aptos, vencidos := domestoque.Disponiveis(lotes, ref)
	plano, err := domestoque.Alocar(estrategia, in.Quantidade, aptos)
	if err != nil {
		return nil, err
	}
	return toPlanoResponse(in.ProdutoID, "", plano, vencidos, ref), nil
}

// ConfirmarSaida aplica a saída numa transação: bloqueia os lotes do produto (SELECT FOR UPDATE),
// recalcula o plano sobre o saldo atual e rejeita com ErrInsufficientStock se faltar quantidade.
// Cada lote consumido recebe uma movimentação de saída; todas compartilham o TransacaoID.
func (uc *UseCase) ConfirmarSaida(ctx context.Context, in SaidaInput) (*dto.PlanoSaidaResponse, error) {
	estrategia, err := domestoque.ParseEstrategia(in.Estrategia)
	if err != nil {
		return nil, err
	}
	if !in.Quantidade.IsPositive() {
		return nil, domain.ErrQuantidadeInvalida
	}
	if _, err := uc.escola(ctx, in.TenantID, in.EscolaID); err != nil {
		return nil, err
	}
	if _, err := uc.produto(ctx, in.TenantID, in.ProdutoID); err != nil {
		return nil, err
	}

	now := uc.now()
	transacaoID := uuid.New().String()
	var (
		plano    domestoque.PlanoSaida
		vencidos []*entity.LoteEstoque
	)
	err = uc.tx.Run(ctx, func(loteRepo repository.LoteRepository, movRepo repository.MovimentacaoRepository) error {
		lotes, err := loteRepo.ListForUpdate(ctx, in.TenantID, in.EscolaID, in.ProdutoID)
		if err != nil {
			return err
		}
		var aptos []domestoque.LoteDisponivel
		aptos, vencidos = domestoque.Disponiveis(lotes, now)
		plano, err = domestoque.Alocar(estrategia, in.Quantidade, aptos)
		if err != nil {
			return err
		}
		if !plano.Completo() {
			return fmt.Errorf("%w: solicitado %s, disponível %s", domain.ErrInsufficientStock, plano.Solicitado, plano.Atendido)
		}

		porID := make(map[string]*entity.LoteEstoque, len(lotes))
		for _, l := range lotes {
			porID[l.ID] = l
		}
		for _, c := range plano.Consumos {
			lote := porID[c.Lote.LoteID]
			anterior := lote.QuantidadeAtual
			lote.QuantidadeAtual = c.RestanteNoLote
			if lote.QuantidadeAtual.IsZero() {
				lote.Status = entity.LoteStatusEsgotado
			}
			lote.UpdatedAt = now
			if err := loteRepo.UpdateSaldo(ctx, lote); err != nil {
				return err
			}
			mov := &entity.MovimentacaoEstoque{
				ID:                  uuid.New().String(),
				TransacaoID:         transacaoID,
				TenantID:            in.TenantID,
				EscolaID:            in.EscolaID,
				ProdutoID:           in.ProdutoID,
				LoteID:              lote.ID,
				Tipo:                entity.MovimentacaoSaida,
				Quantidade:          c.Consumido,
				QuantidadeAnterior:  anterior,
				QuantidadePosterior: lote.QuantidadeAtual,
				Motivo:              in.Motivo,
				UsuarioID:           in.UsuarioID,
				CreatedAt:           now,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
		}

		// Lotes vencidos que ainda constam como ativos passam a vencido.
		for _, l := range vencidos {
			if l.Status != entity.LoteStatusAtivo {
				continue
			}
			l.Status = entity.LoteStatusVencido
			l.UpdatedAt = now
			if err := loteRepo.UpdateSaldo(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidarEscola(ctx, in.TenantID, in.EscolaID)

	uc.log.Info().
		Str("tenant_id", in.TenantID).
		Str("escola_id", in.EscolaID).
		Str("produto_id", in.ProdutoID).
		Str("transacao_id", transacaoID).
		Str("quantidade", in.Quantidade.String()).
		Int("lotes", len(plano.Consumos)).
		Msg("saída de estoque confirmada")

	return toPlanoResponse(in.ProdutoID, transacaoID, plano, vencidos, now), nil
}

func toPlanoResponse(produtoID, transacaoID string, plano domestoque.PlanoSaida, vencidos []*entity.LoteEstoque, ref time.Time) *dto.PlanoSaidaResponse {
	resp := &dto.PlanoSaidaResponse{
		TransacaoID:   transacaoID,
		ProdutoID:     produtoID,
		Estrategia:    string(plano.Estrategia),
		Solicitado:    plano.Solicitado,
		Atendido:      plano.Atendido,
		Faltante:      plano.Faltante,
		Completo:      plano.Completo(),
		Consumos:      make([]dto.ConsumoLoteResponse, 0, len(plano.Consumos)),
		LotesVencidos: make([]dto.LoteResponse, 0, len(vencidos)),
	}
	for _, c := range plano.Consumos {
		resp.Consumos = append(resp.Consumos, dto.ConsumoLoteResponse{
			LoteID:         c.Lote.LoteID,
			Codigo:         c.Lote.Codigo,
			DataValidade:   dto.FormatDate(c.Lote.DataValidade),
			Disponivel:     c.Lote.Disponivel,
			Consumido:      c.Consumido,
			RestanteNoLote: c.RestanteNoLote,
		})
	}
	for _, l := range vencidos {
		resp.LotesVencidos = append(resp.LotesVencidos, toLoteResponse(l, ref))
	}
	if !plano.Completo() {
		resp.Aviso = fmt.Sprintf("estoque insuficiente: faltam %s", plano.Faltante.String())
	}
	return resp
}
