package repository

import (
	"context"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// ContratoRepository porto de persistência de contratos e seus produtos.
type ContratoRepository interface {
	// Create persiste o contrato com Produtos.
	Create(ctx context.Context, contrato *entity.Contrato) error
	// GetByID devolve o contrato já com Produtos.
	GetByID(ctx context.Context, tenantID, id string) (*entity.Contrato, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Contrato, error)
	GetProduto(ctx context.Context, tenantID, contratoProdutoID string) (*entity.ContratoProduto, error)
}

// ModalidadeRepository porto de persistência de modalidades.
type ModalidadeRepository interface {
	Create(ctx context.Context, modalidade *entity.Modalidade) error
	Update(ctx context.Context, modalidade *entity.Modalidade) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Modalidade, error)
	ListByTenant(ctx context.Context, tenantID string) ([]entity.Modalidade, error)
}
