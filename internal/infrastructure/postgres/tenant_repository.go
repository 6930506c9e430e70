package postgres

import (
	"context"
	"fmt"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementação de TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository constrói o adaptador. Aceita pool ou tx.
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

const tenantColumns = `id, nome, slug, cnpj, status, cor_primaria, cor_secundaria, logo_url, created_at, updated_at`

func scanTenant(row interface{ Scan(...any) error }) (*entity.Tenant, error) {
	var t entity.Tenant
	err := row.Scan(&t.ID, &t.Nome, &t.Slug, &t.CNPJ, &t.Status,
		&t.Branding.CorPrimaria, &t.Branding.CorSecundaria, &t.Branding.LogoURL,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, t.ID, t.Nome, t.Slug, t.CNPJ, t.Status,
		t.Branding.CorPrimaria, t.Branding.CorSecundaria, t.Branding.LogoURL, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	t, err := scanTenant(r.q.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	t, err := scanTenant(r.q.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slug))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant by slug: %w", err)
	}
	return t, nil
}

func (r *TenantRepo) Update(ctx context.Context, t *entity.Tenant) error {
	query := `
		UPDATE tenants SET nome = $2, cnpj = $3, status = $4, cor_primaria = $5, cor_secundaria = $6,
			logo_url = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, t.ID, t.Nome, t.CNPJ, t.Status,
		t.Branding.CorPrimaria, t.Branding.CorSecundaria, t.Branding.LogoURL, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	limit, offset = limitOffset(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY nome LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// HasActiveModule: ativo e não vencido.
func (r *TenantRepo) HasActiveModule(ctx context.Context, tenantID, moduleName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tenant_modules
			WHERE tenant_id = $1 AND module_name = $2 AND is_active
			  AND (expires_at IS NULL OR expires_at > now())
		)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, tenantID, moduleName).Scan(&ok); err != nil {
		return false, fmt.Errorf("check module: %w", err)
	}
	return ok, nil
}

// SetModule faz upsert por (tenant, módulo).
func (r *TenantRepo) SetModule(ctx context.Context, m *entity.TenantModule) error {
	query := `
		INSERT INTO tenant_modules (id, tenant_id, module_name, is_active, activated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, module_name)
		DO UPDATE SET is_active = EXCLUDED.is_active, activated_at = EXCLUDED.activated_at, expires_at = EXCLUDED.expires_at`
	if _, err := r.q.Exec(ctx, query, m.ID, m.TenantID, m.ModuleName, m.IsActive, m.ActivatedAt, m.ExpiresAt); err != nil {
		return fmt.Errorf("set module: %w", err)
	}
	return nil
}
