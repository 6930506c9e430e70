package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

// EscolaUseCase cadastro de escolas.
type EscolaUseCase struct {
	repo repository.EscolaRepository
}

// NewEscolaUseCase constrói o caso de uso.
func NewEscolaUseCase(repo repository.EscolaRepository) *EscolaUseCase {
	return &EscolaUseCase{repo: repo}
}

// Create cadastra uma escola ativa.
func (uc *EscolaUseCase) Create(ctx context.Context, tenantID string, in dto.EscolaRequest) (*dto.EscolaResponse, error) {
	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	e := &entity.Escola{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Nome:       nome,
		CodigoINEP: strings.TrimSpace(in.CodigoINEP),
		Endereco:   in.Endereco,
		Telefone:   in.Telefone,
		Ativo:      in.Ativo == nil || *in.Ativo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEscolaResponse(e), nil
}

// GetByID obtém uma escola do tenant.
func (uc *EscolaUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.EscolaResponse, error) {
	e, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toEscolaResponse(e), nil
}

// Update substitui os dados cadastrais.
func (uc *EscolaUseCase) Update(ctx context.Context, tenantID, id string, in dto.EscolaRequest) (*dto.EscolaResponse, error) {
	e, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if nome := strings.TrimSpace(in.Nome); nome != "" {
		e.Nome = nome
	}
	e.CodigoINEP = strings.TrimSpace(in.CodigoINEP)
	e.Endereco = in.Endereco
	e.Telefone = in.Telefone
	if in.Ativo != nil {
		e.Ativo = *in.Ativo
	}
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEscolaResponse(e), nil
}

// List lista as escolas do tenant com paginação.
func (uc *EscolaUseCase) List(ctx context.Context, tenantID string, limit, offset int) (*dto.EscolaListResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EscolaResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEscolaResponse(e))
	}
	return &dto.EscolaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toEscolaResponse(e *entity.Escola) *dto.EscolaResponse {
	return &dto.EscolaResponse{
		ID:         e.ID,
		Nome:       e.Nome,
		CodigoINEP: e.CodigoINEP,
		Endereco:   e.Endereco,
		Telefone:   e.Telefone,
		Ativo:      e.Ativo,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
