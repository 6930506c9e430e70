package usecase

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

// PedidoUseCase criação e ciclo de vida de pedidos (pendente → aprovado → faturado; cancelado).
type PedidoUseCase struct {
	repo         repository.PedidoRepository
	contratoRepo repository.ContratoRepository
	now          func() time.Time
}

// NewPedidoUseCase constrói o caso de uso.
func NewPedidoUseCase(repo repository.PedidoRepository, contratoRepo repository.ContratoRepository) *PedidoUseCase {
	return &PedidoUseCase{repo: repo, contratoRepo: contratoRepo, now: time.Now}
}

// Create valida cada item contra o produto de contrato: o contrato precisa estar vigente
// na data do pedido e o preço vem do contrato, não do cliente.
func (uc *PedidoUseCase) Create(ctx context.Context, tenantID, usuarioID string, in dto.CreatePedidoRequest) (*dto.PedidoResponse, error) {
	if len(in.Itens) == 0 {
		return nil, domain.ErrPedidoSemItens
	}
	now := uc.now()
	data := now
	if d, err := dto.ParseDate(in.DataPedido); err != nil {
		return nil, fmt.Errorf("%w: data_pedido", domain.ErrInvalidInput)
	} else if d != nil {
		data = *d
	}

	p := &entity.Pedido{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Numero:     strings.TrimSpace(in.Numero),
		DataPedido: data,
		Status:     entity.PedidoPendente,
		Observacao: in.Observacao,
		ValorTotal: decimal.Zero,
		CriadoPor:  usuarioID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if p.Numero == "" {
		p.Numero = "PED-" + now.Format("20060102") + "-" + p.ID[:6]
	}
	contratos := map[string]*entity.Contrato{}
	for _, it := range in.Itens {
		if !it.Quantidade.IsPositive() {
			return nil, domain.ErrQuantidadeInvalida
		}
		cp, err := uc.contratoRepo.GetProduto(ctx, tenantID, it.ContratoProdutoID)
		if err != nil {
			return nil, err
		}
		if cp == nil {
			return nil, fmt.Errorf("%w: produto de contrato %s", domain.ErrNotFound, it.ContratoProdutoID)
		}
		c, ok := contratos[cp.ContratoID]
		if !ok {
			c, err = uc.contratoRepo.GetByID(ctx, tenantID, cp.ContratoID)
			if err != nil {
				return nil, err
			}
			if c == nil {
				return nil, fmt.Errorf("%w: contrato %s", domain.ErrNotFound, cp.ContratoID)
			}
			contratos[cp.ContratoID] = c
		}
		if !c.Vigente(data) {
			return nil, fmt.Errorf("%w: contrato %s fora da vigência", domain.ErrInvalidInput, c.Numero)
		}
		item := entity.PedidoItem{
			ID:                uuid.New().String(),
			PedidoID:          p.ID,
			ContratoID:        cp.ContratoID,
			ContratoProdutoID: cp.ID,
			ProdutoID:         cp.ProdutoID,
			Quantidade:        it.Quantidade,
			PrecoUnitario:     cp.PrecoUnitario,
		}
		p.Itens = append(p.Itens, item)
		p.ValorTotal = p.ValorTotal.Add(item.Valor())
	}
	p.ValorTotal = p.ValorTotal.Round(2)
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPedidoResponse(p), nil
}

// GetByID devolve o pedido com itens.
func (uc *PedidoUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.PedidoResponse, error) {
	p, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPedidoResponse(p), nil
}

// List filtra por status quando informado.
func (uc *PedidoUseCase) List(ctx context.Context, tenantID, status string, limit, offset int) ([]dto.PedidoResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPedidoResponse(p))
	}
	return out, nil
}

// Aprovar pendente → aprovado.
func (uc *PedidoUseCase) Aprovar(ctx context.Context, tenantID, id string) (*dto.PedidoResponse, error) {
	return uc.transicao(ctx, tenantID, id, entity.PedidoAprovado, entity.PedidoPendente)
}

// Cancelar pendente ou aprovado → cancelado. Pedido faturado precisa ter o faturamento cancelado antes.
func (uc *PedidoUseCase) Cancelar(ctx context.Context, tenantID, id string) (*dto.PedidoResponse, error) {
	return uc.transicao(ctx, tenantID, id, entity.PedidoCancelado, entity.PedidoPendente, entity.PedidoAprovado)
}

func (uc *PedidoUseCase) transicao(ctx context.Context, tenantID, id, para string, de ...string) (*dto.PedidoResponse, error) {
	p, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	permitido := false
	for _, s := range de {
		if p.Status == s {
			permitido = true
			break
		}
	}
	if !permitido {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrStatusInvalido, p.Status, para)
	}
	if err := uc.repo.UpdateStatus(ctx, tenantID, id, para); err != nil {
		return nil, err
	}
	p.Status = para
	return toPedidoResponse(p), nil
}

func toPedidoResponse(p *entity.Pedido) *dto.PedidoResponse {
	out := &dto.PedidoResponse{
		ID:         p.ID,
		Numero:     p.Numero,
		DataPedido: dto.FormatDate(&p.DataPedido),
		Status:     p.Status,
		Observacao: p.Observacao,
		ValorTotal: p.ValorTotal,
		Itens:      make([]dto.PedidoItemResponse, 0, len(p.Itens)),
		CreatedAt:  p.CreatedAt,
	}
	for _, it := range p.Itens {
		out.Itens = append(out.Itens, dto.PedidoItemResponse{
			ID:                it.ID,
			ContratoID:        it.ContratoID,
			ContratoProdutoID: it.ContratoProdutoID,
			ProdutoID:         it.ProdutoID,
			Quantidade:        it.Quantidade,
			PrecoUnitario:     it.PrecoUnitario,
			ValorTotal:        it.Valor().Round(2),
		})
	}
	return out
}
