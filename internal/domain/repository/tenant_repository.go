package repository

import (
	"context"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// TenantRepository define o porto de persistência de Tenant (DIP).
// A implementação vive em infrastructure.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)
	// HasActiveModule consulta tenant_modules; false sem erro quando não contratado.
	HasActiveModule(ctx context.Context, tenantID, moduleName string) (bool, error)
	SetModule(ctx context.Context, module *entity.TenantModule) error
}
