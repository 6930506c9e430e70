package postgres

import (
	"context"
	"fmt"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.ModalidadeRepository = (*ModalidadeRepo)(nil)

// ModalidadeRepo implementação de ModalidadeRepository sobre PostgreSQL.
type ModalidadeRepo struct {
	q Querier
}

// NewModalidadeRepository constrói o adaptador.
func NewModalidadeRepository(q Querier) *ModalidadeRepo {
	return &ModalidadeRepo{q: q}
}

const modalidadeColumns = `id, tenant_id, nome, codigo_financeiro, valor_repasse, ativo, created_at, updated_at`

func (r *ModalidadeRepo) Create(ctx context.Context, m *entity.Modalidade) error {
	_, err := r.q.Exec(ctx, `INSERT INTO modalidades (`+modalidadeColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.TenantID, m.Nome, m.CodigoFinanceiro, m.ValorRepasse, m.Ativo, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert modalidade: %w", err)
	}
	return nil
}

func (r *ModalidadeRepo) Update(ctx context.Context, m *entity.Modalidade) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE modalidades SET nome = $3, codigo_financeiro = $4, valor_repasse = $5, ativo = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`,
		m.TenantID, m.ID, m.Nome, m.CodigoFinanceiro, m.ValorRepasse, m.Ativo, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update modalidade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ModalidadeRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Modalidade, error) {
	var m entity.Modalidade
	err := r.q.QueryRow(ctx, `SELECT `+modalidadeColumns+` FROM modalidades WHERE tenant_id = $1 AND id = $2`, tenantID, id).
		Scan(&m.ID, &m.TenantID, &m.Nome, &m.CodigoFinanceiro, &m.ValorRepasse, &m.Ativo, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get modalidade: %w", err)
	}
	return &m, nil
}

// ListByTenant ordena por nome; a ordem define qual modalidade absorve o resíduo da divisão.
func (r *ModalidadeRepo) ListByTenant(ctx context.Context, tenantID string) ([]entity.Modalidade, error) {
	rows, err := r.q.Query(ctx, `SELECT `+modalidadeColumns+` FROM modalidades WHERE tenant_id = $1 ORDER BY nome, id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list modalidades: %w", err)
	}
	defer rows.Close()
	var list []entity.Modalidade
	for rows.Next() {
		var m entity.Modalidade
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Nome, &m.CodigoFinanceiro, &m.ValorRepasse, &m.Ativo,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan modalidade: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
