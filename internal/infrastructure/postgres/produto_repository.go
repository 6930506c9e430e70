package postgres

import (
	"context"
	"fmt"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo implementação de ProdutoRepository sobre PostgreSQL (pool ou tx).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o adaptador de persistência de produtos.
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

const produtoColumns = `id, tenant_id, nome, unidade, categoria, perecivel, ativo, created_at, updated_at`

func scanProduto(row interface{ Scan(...any) error }) (*entity.Produto, error) {
	var p entity.Produto
	if err := row.Scan(&p.ID, &p.TenantID, &p.Nome, &p.Unidade, &p.Categoria, &p.Perecivel, &p.Ativo,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProdutoRepo) Create(ctx context.Context, p *entity.Produto) error {
	query := `INSERT INTO produtos (` + produtoColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, p.ID, p.TenantID, p.Nome, p.Unidade, p.Categoria, p.Perecivel, p.Ativo,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

func (r *ProdutoRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Produto, error) {
	p, err := scanProduto(r.q.QueryRow(ctx, `SELECT `+produtoColumns+` FROM produtos WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return p, nil
}

func (r *ProdutoRepo) Update(ctx context.Context, p *entity.Produto) error {
	query := `
		UPDATE produtos SET nome = $3, unidade = $4, categoria = $5, perecivel = $6, ativo = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, p.TenantID, p.ID, p.Nome, p.Unidade, p.Categoria, p.Perecivel, p.Ativo, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProdutoRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Produto, error) {
	limit, offset = limitOffset(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+produtoColumns+` FROM produtos WHERE tenant_id = $1 ORDER BY nome LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Produto
	for rows.Next() {
		p, err := scanProduto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
