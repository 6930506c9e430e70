package repository

import (
	"context"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// ProdutoRepository porto de persistência de produtos.
type ProdutoRepository interface {
	Create(ctx context.Context, produto *entity.Produto) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Produto, error)
	Update(ctx context.Context, produto *entity.Produto) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Produto, error)
}
