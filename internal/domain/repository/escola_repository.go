package repository

import (
	"context"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// EscolaRepository porto de persistência de escolas. Todas as consultas são por tenant.
type EscolaRepository interface {
	Create(ctx context.Context, escola *entity.Escola) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Escola, error)
	Update(ctx context.Context, escola *entity.Escola) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Escola, error)
}
