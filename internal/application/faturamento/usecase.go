// Package faturamento contém o cálculo e a geração do faturamento de pedidos,
// com as quantidades divididas entre as modalidades proporcionalmente ao repasse.
package faturamento

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/ports"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	domfat "github.com/ewenunessn/gestaoescolar-sub007/internal/domain/faturamento"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

// Deps dependências do caso de uso.
type Deps struct {
	TxRunner        TxRunner
	TenantRepo      repository.TenantRepository
	PedidoRepo      repository.PedidoRepository
	FaturamentoRepo repository.FaturamentoRepository
	ContratoRepo    repository.ContratoRepository
	ProdutoRepo     repository.ProdutoRepository
	ModalidadeRepo  repository.ModalidadeRepository
	PDF             ports.FaturamentoPDFGenerator
	Logger          zerolog.Logger
}

// UseCase casos de uso de faturamento.
type UseCase struct {
	tx             TxRunner
	tenantRepo     repository.TenantRepository
	pedidoRepo     repository.PedidoRepository
	fatRepo        repository.FaturamentoRepository
	contratoRepo   repository.ContratoRepository
	produtoRepo    repository.ProdutoRepository
	modalidadeRepo repository.ModalidadeRepository
	pdf            ports.FaturamentoPDFGenerator
	log            zerolog.Logger
	now            func() time.Time
}

// NewUseCase constrói o caso de uso.
func NewUseCase(d Deps) *UseCase {
	return &UseCase{
		tx:             d.TxRunner,
		tenantRepo:     d.TenantRepo,
		pedidoRepo:     d.PedidoRepo,
		fatRepo:        d.FaturamentoRepo,
		contratoRepo:   d.ContratoRepo,
		produtoRepo:    d.ProdutoRepo,
		modalidadeRepo: d.ModalidadeRepo,
		pdf:            d.PDF,
		log:            d.Logger,
		now:            time.Now,
	}
}

// Calcular monta a prévia do faturamento: itens agrupados por contrato, cada um dividido
// entre as modalidades ativas. Não grava nada.
func (uc *UseCase) Calcular(ctx context.Context, tenantID, pedidoID string) (*dto.CalculoFaturamentoResponse, error) {
	pedido, err := uc.pedido(ctx, tenantID, pedidoID)
	if err != nil {
		return nil, err
	}
	if pedido.Status == entity.PedidoCancelado {
		return nil, fmt.Errorf("%w: pedido cancelado", domain.ErrStatusInvalido)
	}
	percentuais, err := uc.percentuais(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CalculoFaturamentoResponse{PedidoID: pedido.ID, PedidoNumero: pedido.Numero, ValorTotal: decimal.Zero}
	indice := map[string]int{}
	contratos := map[string]*entity.Contrato{}
	produtos := map[string]*entity.Produto{}
	for _, item := range pedido.Itens {
		contrato, err := uc.contratoCache(ctx, tenantID, item.ContratoID, contratos)
		if err != nil {
			return nil, err
		}
		produto, err := uc.produtoCache(ctx, tenantID, item.ProdutoID, produtos)
		if err != nil {
			return nil, err
		}
		i, ok := indice[item.ContratoID]
		if !ok {
			resp.Contratos = append(resp.Contratos, dto.ContratoCalculado{
				ContratoID: contrato.ID,
				Numero:     contrato.Numero,
				Fornecedor: contrato.Fornecedor,
				ValorTotal: decimal.Zero,
			})
			i = len(resp.Contratos) - 1
			indice[item.ContratoID] = i
		}

		calc := dto.ItemCalculado{
			ProdutoID:     item.ProdutoID,
			ProdutoNome:   produto.Nome,
			Unidade:       produto.Unidade,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			ValorTotal:    item.Valor().Round(domfat.CasasValor),
		}
		for _, d := range domfat.Dividir(item.Quantidade, item.PrecoUnitario, percentuais) {
			calc.Divisoes = append(calc.Divisoes, dto.DivisaoModalidade{
				ModalidadeID:     d.Modalidade.ID,
				ModalidadeNome:   d.Modalidade.Nome,
				CodigoFinanceiro: d.Modalidade.CodigoFinanceiro,
				Percentual:       d.Percentual,
				Quantidade:       d.Quantidade,
				Valor:            d.Valor,
			})
		}
		c := &resp.Contratos[i]
		c.Itens = append(c.Itens, calc)
		c.ValorTotal = c.ValorTotal.Add(calc.ValorTotal)
		resp.ValorTotal = resp.ValorTotal.Add(calc.ValorTotal)
	}
	return resp, nil
}

// Gerar persiste o faturamento do pedido aprovado e marca o pedido como faturado na mesma transação.
// Pedido que já tem faturamento ativo devolve ErrFaturamentoExistente.
func (uc *UseCase) Gerar(ctx context.Context, tenantID, pedidoID, usuarioID string) (*dto.FaturamentoResponse, error) {
	percentuais, err := uc.percentuais(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	var fat *entity.Faturamento
	err = uc.tx.RunFaturamento(ctx, func(pedidoRepo repository.PedidoRepository, fatRepo repository.FaturamentoRepository) error {
		pedido, err := pedidoRepo.GetForUpdate(ctx, tenantID, pedidoID)
		if err != nil {
			return err
		}
		if pedido == nil {
			return domain.ErrNotFound
		}
		existentes, err := fatRepo.ListByPedido(ctx, tenantID, pedidoID)
		if err != nil {
			return err
		}
		for _, f := range existentes {
			if f.Status != entity.FaturamentoCancelado {
				return domain.ErrFaturamentoExistente
			}
		}
		if pedido.Status != entity.PedidoAprovado {
			return fmt.Errorf("%w: pedido %s precisa estar aprovado", domain.ErrStatusInvalido, pedido.Status)
		}
		if len(pedido.Itens) == 0 {
			return domain.ErrPedidoSemItens
		}
		numero, err := fatRepo.NextNumero(ctx, tenantID)
		if err != nil {
			return err
		}

		fat = &entity.Faturamento{
			ID:         uuid.New().String(),
			TenantID:   tenantID,
			PedidoID:   pedido.ID,
			Numero:     numero,
			Status:     entity.FaturamentoGerado,
			ValorTotal: decimal.Zero,
			CriadoPor:  usuarioID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		for _, item := range pedido.Itens {
			for _, d := range domfat.Dividir(item.Quantidade, item.PrecoUnitario, percentuais) {
				if d.Quantidade.IsZero() {
					continue
				}
				fat.Itens = append(fat.Itens, entity.FaturamentoItem{
					ID:            uuid.New().String(),
					FaturamentoID: fat.ID,
					ContratoID:    item.ContratoID,
					ProdutoID:     item.ProdutoID,
					ModalidadeID:  d.Modalidade.ID,
					Quantidade:    d.Quantidade,
					Percentual:    d.Percentual,
					PrecoUnitario: item.PrecoUnitario,
					ValorTotal:    d.Valor,
				})
				fat.ValorTotal = fat.ValorTotal.Add(d.Valor)
			}
		}
		if err := fatRepo.Create(ctx, fat); err != nil {
			return err
		}
		return pedidoRepo.UpdateStatus(ctx, tenantID, pedido.ID, entity.PedidoFaturado)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("pedido_id", pedidoID).
		Str("faturamento_id", fat.ID).
		Str("numero", fat.Numero).
		Str("valor_total", fat.ValorTotal.StringFixed(domfat.CasasValor)).
		Msg("faturamento gerado")

	resp := toFaturamentoResponse(fat)
	return &resp, nil
}

// Cancelar cancela o faturamento e devolve o pedido para aprovado.
func (uc *UseCase) Cancelar(ctx context.Context, tenantID, faturamentoID string) (*dto.FaturamentoResponse, error) {
	var fat *entity.Faturamento
	err := uc.tx.RunFaturamento(ctx, func(pedidoRepo repository.PedidoRepository, fatRepo repository.FaturamentoRepository) error {
		var err error
		fat, err = fatRepo.GetByID(ctx, tenantID, faturamentoID)
		if err != nil {
			return err
		}
		if fat == nil {
			return domain.ErrNotFound
		}
		if fat.Status == entity.FaturamentoCancelado {
			return fmt.Errorf("%w: faturamento já cancelado", domain.ErrStatusInvalido)
		}
		if _, err := pedidoRepo.GetForUpdate(ctx, tenantID, fat.PedidoID); err != nil {
			return err
		}
		if err := fatRepo.UpdateStatus(ctx, tenantID, fat.ID, entity.FaturamentoCancelado); err != nil {
			return err
		}
		fat.Status = entity.FaturamentoCancelado
		return pedidoRepo.UpdateStatus(ctx, tenantID, fat.PedidoID, entity.PedidoAprovado)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("tenant_id", tenantID).Str("faturamento_id", faturamentoID).Msg("faturamento cancelado")
	resp := toFaturamentoResponse(fat)
	return &resp, nil
}

// Buscar devolve um faturamento com itens.
func (uc *UseCase) Buscar(ctx context.Context, tenantID, faturamentoID string) (*dto.FaturamentoResponse, error) {
	fat, err := uc.faturamento(ctx, tenantID, faturamentoID)
	if err != nil {
		return nil, err
	}
	resp := toFaturamentoResponse(fat)
	return &resp, nil
}

// ListarPorPedido faturamentos do pedido, incluindo cancelados.
func (uc *UseCase) ListarPorPedido(ctx context.Context, tenantID, pedidoID string) ([]dto.FaturamentoResponse, error) {
	if _, err := uc.pedido(ctx, tenantID, pedidoID); err != nil {
		return nil, err
	}
	list, err := uc.fatRepo.ListByPedido(ctx, tenantID, pedidoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FaturamentoResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFaturamentoResponse(f))
	}
	return out, nil
}

// RelatorioPDF gera o relatório do faturamento por modalidade.
func (uc *UseCase) RelatorioPDF(ctx context.Context, tenantID, faturamentoID string) ([]byte, string, error) {
	fat, err := uc.faturamento(ctx, tenantID, faturamentoID)
	if err != nil {
		return nil, "", err
	}
	pedido, err := uc.pedido(ctx, tenantID, fat.PedidoID)
	if err != nil {
		return nil, "", err
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, "", err
	}
	if tenant == nil {
		return nil, "", domain.ErrNotFound
	}
	mods, err := uc.modalidadeRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, "", err
	}
	data := ports.RelatorioFaturamentoData{
		Tenant:      tenant,
		Pedido:      pedido,
		Faturamento: fat,
		Contratos:   map[string]*entity.Contrato{},
		Produtos:    map[string]*entity.Produto{},
		Modalidades: make(map[string]entity.Modalidade, len(mods)),
	}
	for _, m := range mods {
		data.Modalidades[m.ID] = m
	}
	for _, it := range fat.Itens {
		if _, err := uc.contratoCache(ctx, tenantID, it.ContratoID, data.Contratos); err != nil {
			return nil, "", err
		}
		if _, err := uc.produtoCache(ctx, tenantID, it.ProdutoID, data.Produtos); err != nil {
			return nil, "", err
		}
	}
	pdf, err := uc.pdf.GenerateFaturamento(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("faturamento: gerar pdf: %w", err)
	}
	return pdf, "faturamento-" + fat.Numero + ".pdf", nil
}

func (uc *UseCase) percentuais(ctx context.Context, tenantID string) ([]domfat.Percentual, error) {
	mods, err := uc.modalidadeRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return domfat.Percentuais(mods)
}

func (uc *UseCase) pedido(ctx context.Context, tenantID, id string) (*entity.Pedido, error) {
	p, err := uc.pedidoRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *UseCase) faturamento(ctx context.Context, tenantID, id string) (*entity.Faturamento, error) {
	f, err := uc.fatRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func (uc *UseCase) contratoCache(ctx context.Context, tenantID, id string, m map[string]*entity.Contrato) (*entity.Contrato, error) {
	if c, ok := m[id]; ok {
		return c, nil
	}
	c, err := uc.contratoRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: contrato %s", domain.ErrNotFound, id)
	}
	m[id] = c
	return c, nil
}

func (uc *UseCase) produtoCache(ctx context.Context, tenantID, id string, m map[string]*entity.Produto) (*entity.Produto, error) {
	if p, ok := m[id]; ok {
		return p, nil
	}
	p, err := uc.produtoRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: produto %s", domain.ErrNotFound, id)
	}
	m[id] = p
	return p, nil
}

func toFaturamentoResponse(f *entity.Faturamento) dto.FaturamentoResponse {
	out := dto.FaturamentoResponse{
		ID:         f.ID,
		PedidoID:   f.PedidoID,
		Numero:     f.Numero,
		Status:     f.Status,
		ValorTotal: f.ValorTotal,
		Itens:      make([]dto.FaturamentoItemResponse, 0, len(f.Itens)),
		CreatedAt:  f.CreatedAt,
	}
	for _, it := range f.Itens {
		out.Itens = append(out.Itens, dto.FaturamentoItemResponse{
			ContratoID:    it.ContratoID,
			ProdutoID:     it.ProdutoID,
			ModalidadeID:  it.ModalidadeID,
			Quantidade:    it.Quantidade,
			Percentual:    it.Percentual,
			PrecoUnitario: it.PrecoUnitario,
			ValorTotal:    it.ValorTotal,
		})
	}
	return out
}
