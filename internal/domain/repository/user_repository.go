package repository

import (
	"context"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// UserRepository define o porto de persistência de User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail busca o usuário pelo email dentro do tenant informado.
	GetByEmail(ctx context.Context, tenantID, email string) (*entity.User, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.User, error)
}
