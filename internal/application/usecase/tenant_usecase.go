package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// TenantUseCase regras de negócio de tenants e branding.
type TenantUseCase struct {
	repo repository.TenantRepository
}

// NewTenantUseCase constrói o caso de uso com o porto de persistência.
func NewTenantUseCase(repo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{repo: repo}
}

// Create cria um tenant. Devolve domain.ErrDuplicate se o slug já existe.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if !slugRe.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug deve conter apenas letras minúsculas, números e hífen", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Nome) == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	t := &entity.Tenant{
		ID:     uuid.New().String(),
		Nome:   strings.TrimSpace(in.Nome),
		Slug:   slug,
		CNPJ:   in.CNPJ,
		Status: entity.TenantStatusActive,
		Branding: entity.Branding{
			CorPrimaria:   in.Branding.CorPrimaria,
			CorSecundaria: in.Branding.CorSecundaria,
			LogoURL:       in.Branding.LogoURL,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

// GetByID obtém um tenant.
func (uc *TenantUseCase) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(t), nil
}

// List lista tenants com paginação.
func (uc *TenantUseCase) List(ctx context.Context, limit, offset int) ([]dto.TenantResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTenantResponse(t))
	}
	return out, nil
}

// Branding devolve a identidade visual pelo slug (rota pública usada antes do login).
// Tenants inativos não são expostos.
func (uc *TenantUseCase) Branding(ctx context.Context, slug string) (*dto.BrandingResponse, error) {
	t, err := uc.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	if t == nil || t.Status != entity.TenantStatusActive {
		return nil, domain.ErrNotFound
	}
	b := toBranding(t)
	return &b, nil
}

// UpdateBranding altera apenas os campos informados.
func (uc *TenantUseCase) UpdateBranding(ctx context.Context, tenantID string, in dto.UpdateBrandingRequest) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if in.CorPrimaria != nil {
		t.Branding.CorPrimaria = *in.CorPrimaria
	}
	if in.CorSecundaria != nil {
		t.Branding.CorSecundaria = *in.CorSecundaria
	}
	if in.LogoURL != nil {
		t.Branding.LogoURL = *in.LogoURL
	}
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

func toBranding(t *entity.Tenant) dto.BrandingResponse {
	return dto.BrandingResponse{
		TenantNome:    t.Nome,
		Slug:          t.Slug,
		CorPrimaria:   t.Branding.CorPrimaria,
		CorSecundaria: t.Branding.CorSecundaria,
		LogoURL:       t.Branding.LogoURL,
	}
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:        t.ID,
		Nome:      t.Nome,
		Slug:      t.Slug,
		CNPJ:      t.CNPJ,
		Status:    t.Status,
		Branding:  toBranding(t),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
