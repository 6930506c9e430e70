package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

// ContratoUseCase cadastro de contratos e seus produtos.
type ContratoUseCase struct {
	repo        repository.ContratoRepository
	produtoRepo repository.ProdutoRepository
	now         func() time.Time
}

// NewContratoUseCase constrói o caso de uso.
func NewContratoUseCase(repo repository.ContratoRepository, produtoRepo repository.ProdutoRepository) *ContratoUseCase {
	return &ContratoUseCase{repo: repo, produtoRepo: produtoRepo, now: time.Now}
}

// Create cadastra o contrato. Cada produto precisa existir no tenant, aparecer uma vez
// e ter preço positivo; a vigência precisa terminar depois de começar.
func (uc *ContratoUseCase) Create(ctx context.Context, tenantID string, in dto.CreateContratoRequest) (*dto.ContratoResponse, error) {
	if strings.TrimSpace(in.Numero) == "" || strings.TrimSpace(in.Fornecedor) == "" {
		return nil, domain.ErrInvalidInput
	}
	inicio, err := dto.ParseDate(in.DataInicio)
	if err != nil || inicio == nil {
		return nil, fmt.Errorf("%w: data_inicio", domain.ErrInvalidInput)
	}
	fim, err := dto.ParseDate(in.DataFim)
	if err != nil || fim == nil {
		return nil, fmt.Errorf("%w: data_fim", domain.ErrInvalidInput)
	}
	if fim.Before(*inicio) {
		return nil, fmt.Errorf("%w: vigência termina antes de começar", domain.ErrInvalidInput)
	}

	now := uc.now()
	c := &entity.Contrato{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Numero:     strings.TrimSpace(in.Numero),
		Fornecedor: strings.TrimSpace(in.Fornecedor),
		DataInicio: *inicio,
		DataFim:    *fim,
		Ativo:      true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	vistos := map[string]bool{}
	for _, p := range in.Produtos {
		if vistos[p.ProdutoID] {
			return nil, fmt.Errorf("%w: produto %s repetido no contrato", domain.ErrInvalidInput, p.ProdutoID)
		}
		vistos[p.ProdutoID] = true
		if !p.PrecoUnitario.IsPositive() || p.QuantidadeContratada.IsNegative() {
			return nil, fmt.Errorf("%w: preço ou quantidade do produto %s", domain.ErrInvalidInput, p.ProdutoID)
		}
		prod, err := uc.produtoRepo.GetByID(ctx, tenantID, p.ProdutoID)
		if err != nil {
			return nil, err
		}
		if prod == nil {
			return nil, fmt.Errorf("%w: produto %s", domain.ErrNotFound, p.ProdutoID)
		}
		c.Produtos = append(c.Produtos, entity.ContratoProduto{
			ID:                   uuid.New().String(),
			ContratoID:           c.ID,
			ProdutoID:            p.ProdutoID,
			PrecoUnitario:        p.PrecoUnitario,
			QuantidadeContratada: p.QuantidadeContratada,
		})
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return uc.toResponse(c), nil
}

// GetByID devolve o contrato com produtos.
func (uc *ContratoUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.ContratoResponse, error) {
	c, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(c), nil
}

// List lista contratos do tenant.
func (uc *ContratoUseCase) List(ctx context.Context, tenantID string, limit, offset int) ([]dto.ContratoResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContratoResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *uc.toResponse(c))
	}
	return out, nil
}

func (uc *ContratoUseCase) toResponse(c *entity.Contrato) *dto.ContratoResponse {
	out := &dto.ContratoResponse{
		ID:         c.ID,
		Numero:     c.Numero,
		Fornecedor: c.Fornecedor,
		DataInicio: dto.FormatDate(&c.DataInicio),
		DataFim:    dto.FormatDate(&c.DataFim),
		Ativo:      c.Ativo,
		Vigente:    c.Vigente(uc.now()),
		Produtos:   make([]dto.ContratoProdutoResponse, 0, len(c.Produtos)),
	}
	for _, p := range c.Produtos {
		out.Produtos = append(out.Produtos, dto.ContratoProdutoResponse{
			ID:                   p.ID,
			ProdutoID:            p.ProdutoID,
			PrecoUnitario:        p.PrecoUnitario,
			QuantidadeContratada: p.QuantidadeContratada,
		})
	}
	return out
}
