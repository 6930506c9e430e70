package repository

import (
	"context"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// RotaRepository porto de persistência de rotas de entrega.
type RotaRepository interface {
	Create(ctx context.Context, rota *entity.RotaEntrega) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.RotaEntrega, error)
	Update(ctx context.Context, rota *entity.RotaEntrega) error
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.RotaEntrega, error)
	// ListEscolas devolve as escolas da rota em ordem, com totais de itens.
	ListEscolas(ctx context.Context, tenantID, rotaID string) ([]*entity.EscolaEntrega, error)
	// SetEscolas substitui as escolas da rota; a posição no slice define a ordem.
	SetEscolas(ctx context.Context, tenantID, rotaID string, escolaIDs []string) error
}

// ItemEntregaRepository porto de persistência dos itens programados para entrega.
type ItemEntregaRepository interface {
	// CreateMany grava todos os itens ou nenhum.
	CreateMany(ctx context.Context, itens []*entity.ItemEntrega) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.ItemEntrega, error)
	// ListByEscola filtra por rota quando rotaID não é vazio.
	ListByEscola(ctx context.Context, tenantID, escolaID, rotaID string) ([]*entity.ItemEntrega, error)
	ListByRota(ctx context.Context, tenantID, rotaID string) ([]*entity.ItemEntrega, error)
	// UpdateConfirmacao só grava se o item ainda estiver em statusAnterior; caso contrário
	// devolve domain.ErrConflict sem alterar nada.
	UpdateConfirmacao(ctx context.Context, item *entity.ItemEntrega, statusAnterior string) error
}
