package repository

import (
	"context"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// DemandaFiltro filtros opcionais da listagem de demandas.
type DemandaFiltro struct {
	EscolaID string
	Status   string
	Limit    int
	Offset   int
}

// DemandaRepository porto de persistência de demandas.
type DemandaRepository interface {
	Create(ctx context.Context, demanda *entity.Demanda) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Demanda, error)
	Update(ctx context.Context, demanda *entity.Demanda) error
	List(ctx context.Context, tenantID string, filtro DemandaFiltro) ([]*entity.Demanda, error)
	Delete(ctx context.Context, tenantID, id string) error
}
