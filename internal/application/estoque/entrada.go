package estoque

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

// EntradaInput entrada de um novo lote na escola.
type EntradaInput struct {
	TenantID       string
	UsuarioID      string
	EscolaID       string
	ProdutoID      string
	Codigo         string
	Quantidade     decimal.Decimal
	DataFabricacao *time.Time
	DataValidade   *time.Time
	Observacao     string
}

// EntradaFromRequest adapta o body HTTP para EntradaInput, convertendo as datas.
func EntradaFromRequest(tenantID, usuarioID, escolaID string, in dto.RegistrarEntradaRequest) (EntradaInput, error) {
	fab, err := dto.ParseDate(in.DataFabricacao)
	if err != nil {
		return EntradaInput{}, fmt.Errorf("%w: data_fabricacao: %v", domain.ErrInvalidInput, err)
	}
	val, err := dto.ParseDate(in.DataValidade)
	if err != nil {
		return EntradaInput{}, fmt.Errorf("%w: data_validade: %v", domain.ErrInvalidInput, err)
	}
	return EntradaInput{
		TenantID:       tenantID,
		UsuarioID:      usuarioID,
		EscolaID:       escolaID,
		ProdutoID:      in.ProdutoID,
		Codigo:         strings.TrimSpace(in.Codigo),
		Quantidade:     in.Quantidade,
		DataFabricacao: fab,
		DataValidade:   val,
		Observacao:     in.Observacao,
	}, nil
}

// RegistrarEntrada cria o lote e a movimentação de entrada numa mesma transação.
func (uc *UseCase) RegistrarEntrada(ctx context.Context, in EntradaInput) (*dto.LoteResponse, error) {
	if !in.Quantidade.IsPositive() {
		return nil, domain.ErrQuantidadeInvalida
	}
	if in.DataFabricacao != nil && in.DataValidade != nil && in.DataValidade.Before(*in.DataFabricacao) {
		return nil, domain.ErrValidadeAnteriorFabricacao
	}
	now := uc.now()
	lote := &entity.LoteEstoque{
		ID:                uuid.New().String(),
		TenantID:          in.TenantID,
		EscolaID:          in.EscolaID,
		ProdutoID:         in.ProdutoID,
		Codigo:            in.Codigo,
		QuantidadeInicial: in.Quantidade,
		QuantidadeAtual:   in.Quantidade,
		DataFabricacao:    in.DataFabricacao,
		DataValidade:      in.DataValidade,
		Status:            entity.LoteStatusAtivo,
		Observacao:        in.Observacao,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := uc.escola(ctx, in.TenantID, in.EscolaID); err != nil {
		return nil, err
	}
	if _, err := uc.produto(ctx, in.TenantID, in.ProdutoID); err != nil {
		return nil, err
	}
	if lote.Vencido(now) {
		return nil, domain.ErrLoteVencido
	}
	if lote.Codigo == "" {
		lote.Codigo = "L" + now.Format("20060102") + "-" + lote.ID[:8]
	}

	err := uc.tx.Run(ctx, func(loteRepo repository.LoteRepository, movRepo repository.MovimentacaoRepository) error {
		if err := loteRepo.Create(ctx, lote); err != nil {
			return err
		}
		return movRepo.Create(ctx, &entity.MovimentacaoEstoque{
			ID:                  uuid.New().String(),
			TransacaoID:         uuid.New().String(),
			TenantID:            in.TenantID,
			EscolaID:            in.EscolaID,
			ProdutoID:           in.ProdutoID,
			LoteID:              lote.ID,
			Tipo:                entity.MovimentacaoEntrada,
			Quantidade:          in.Quantidade,
			QuantidadeAnterior:  decimal.Zero,
			QuantidadePosterior: in.Quantidade,
			Motivo:              in.Observacao,
			UsuarioID:           in.UsuarioID,
			CreatedAt:           now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.invalidarEscola(ctx, in.TenantID, in.EscolaID)

	resp := toLoteResponse(lote, now)
	return &resp, nil
}
