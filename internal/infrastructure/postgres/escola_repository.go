package postgres

import (
	"context"
	"fmt"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.EscolaRepository = (*EscolaRepo)(nil)

// EscolaRepo implementação de EscolaRepository sobre PostgreSQL.
type EscolaRepo struct {
	q Querier
}

// NewEscolaRepository constrói o adaptador.
func NewEscolaRepository(q Querier) *EscolaRepo {
	return &EscolaRepo{q: q}
}

const escolaColumns = `id, tenant_id, nome, codigo_inep, endereco, telefone, ativo, created_at, updated_at`

func scanEscola(row interface{ Scan(...any) error }) (*entity.Escola, error) {
	var e entity.Escola
	if err := row.Scan(&e.ID, &e.TenantID, &e.Nome, &e.CodigoINEP, &e.Endereco, &e.Telefone, &e.Ativo,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EscolaRepo) Create(ctx context.Context, e *entity.Escola) error {
	query := `INSERT INTO escolas (` + escolaColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, e.ID, e.TenantID, e.Nome, e.CodigoINEP, e.Endereco, e.Telefone, e.Ativo,
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert escola: %w", err)
	}
	return nil
}

func (r *EscolaRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Escola, error) {
	e, err := scanEscola(r.q.QueryRow(ctx, `SELECT `+escolaColumns+` FROM escolas WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get escola: %w", err)
	}
	return e, nil
}

func (r *EscolaRepo) Update(ctx context.Context, e *entity.Escola) error {
	query := `
		UPDATE escolas SET nome = $3, codigo_inep = $4, endereco = $5, telefone = $6, ativo = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, e.TenantID, e.ID, e.Nome, e.CodigoINEP, e.Endereco, e.Telefone, e.Ativo, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update escola: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EscolaRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Escola, error) {
	limit, offset = limitOffset(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+escolaColumns+` FROM escolas WHERE tenant_id = $1 ORDER BY nome LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list escolas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Escola
	for rows.Next() {
		e, err := scanEscola(rows)
		if err != nil {
			return nil, fmt.Errorf("scan escola: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
