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

// ModalidadeUseCase cadastro das modalidades que recebem repasse.
type ModalidadeUseCase struct {
	repo repository.ModalidadeRepository
}

// NewModalidadeUseCase constrói o caso de uso.
func NewModalidadeUseCase(repo repository.ModalidadeRepository) *ModalidadeUseCase {
	return &ModalidadeUseCase{repo: repo}
}

// Create cadastra uma modalidade. O repasse não pode ser negativo.
func (uc *ModalidadeUseCase) Create(ctx context.Context, tenantID string, in dto.ModalidadeRequest) (*dto.ModalidadeResponse, error) {
	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ValorRepasse.IsNegative() {
		return nil, fmt.Errorf("%w: valor de repasse negativo", domain.ErrInvalidInput)
	}
	now := time.Now()
	m := &entity.Modalidade{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		Nome:             nome,
		CodigoFinanceiro: strings.TrimSpace(in.CodigoFinanceiro),
		ValorRepasse:     in.ValorRepasse,
		Ativo:            in.Ativo == nil || *in.Ativo,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toModalidadeResponse(m), nil
}

// Update altera nome, código, repasse e ativo.
func (uc *ModalidadeUseCase) Update(ctx context.Context, tenantID, id string, in dto.ModalidadeRequest) (*dto.ModalidadeResponse, error) {
	m, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.ValorRepasse.IsNegative() {
		return nil, fmt.Errorf("%w: valor de repasse negativo", domain.ErrInvalidInput)
	}
	if nome := strings.TrimSpace(in.Nome); nome != "" {
		m.Nome = nome
	}
	m.CodigoFinanceiro = strings.TrimSpace(in.CodigoFinanceiro)
	m.ValorRepasse = in.ValorRepasse
	if in.Ativo != nil {
		m.Ativo = *in.Ativo
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return toModalidadeResponse(m), nil
}

// List todas as modalidades do tenant.
func (uc *ModalidadeUseCase) List(ctx context.Context, tenantID string) ([]dto.ModalidadeResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ModalidadeResponse, 0, len(list))
	for i := range list {
		out = append(out, *toModalidadeResponse(&list[i]))
	}
	return out, nil
}

func toModalidadeResponse(m *entity.Modalidade) *dto.ModalidadeResponse {
	return &dto.ModalidadeResponse{
		ID:               m.ID,
		Nome:             m.Nome,
		CodigoFinanceiro: m.CodigoFinanceiro,
		ValorRepasse:     m.ValorRepasse,
		Ativo:            m.Ativo,
	}
}
