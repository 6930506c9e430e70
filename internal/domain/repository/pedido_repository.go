package repository

import (
	"context"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// PedidoRepository porto de persistência de pedidos com itens.
type PedidoRepository interface {
	Create(ctx context.Context, pedido *entity.Pedido) error
	// GetByID devolve o pedido já com Itens.
	GetByID(ctx context.Context, tenantID, id string) (*entity.Pedido, error)
	// GetForUpdate igual a GetByID, bloqueando a linha do pedido.
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Pedido, error)
	UpdateStatus(ctx context.Context, tenantID, id, status string) error
	ListByTenant(ctx context.Context, tenantID, status string, limit, offset int) ([]*entity.Pedido, error)
}

// FaturamentoRepository porto de persistência de faturamentos.
type FaturamentoRepository interface {
	Create(ctx context.Context, fat *entity.Faturamento) error
	// GetByID devolve o faturamento já com Itens.
	GetByID(ctx context.Context, tenantID, id string) (*entity.Faturamento, error)
	ListByPedido(ctx context.Context, tenantID, pedidoID string) ([]*entity.Faturamento, error)
	UpdateStatus(ctx context.Context, tenantID, id, status string) error
	// NextNumero devolve o próximo número sequencial de faturamento do tenant.
	NextNumero(ctx context.Context, tenantID string) (string, error)
}
