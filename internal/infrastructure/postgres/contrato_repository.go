package postgres

import (
	"context"
	"fmt"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.ContratoRepository = (*ContratoRepo)(nil)

// ContratoRepo contratos e seus produtos.
type ContratoRepo struct {
	q Querier
}

// NewContratoRepository constrói o adaptador.
func NewContratoRepository(q Querier) *ContratoRepo {
	return &ContratoRepo{q: q}
}

const contratoColumns = `id, tenant_id, numero, fornecedor, data_inicio, data_fim, ativo, created_at, updated_at`

func scanContrato(row interface{ Scan(...any) error }) (*entity.Contrato, error) {
	var c entity.Contrato
	if err := row.Scan(&c.ID, &c.TenantID, &c.Numero, &c.Fornecedor, &c.DataInicio, &c.DataFim, &c.Ativo,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create grava contrato e produtos juntos.
func (r *ContratoRepo) Create(ctx context.Context, c *entity.Contrato) error {
	b, ok := r.q.(beginner)
	if !ok {
		return r.create(ctx, r.q, c)
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := r.create(ctx, tx, c); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *ContratoRepo) create(ctx context.Context, q Querier, c *entity.Contrato) error {
	_, err := q.Exec(ctx, `INSERT INTO contratos (`+contratoColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.TenantID, c.Numero, c.Fornecedor, c.DataInicio, c.DataFim, c.Ativo, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: contrato %s", domain.ErrDuplicate, c.Numero)
		}
		return fmt.Errorf("insert contrato: %w", err)
	}
	for _, p := range c.Produtos {
		_, err := q.Exec(ctx, `
			INSERT INTO contrato_produtos (id, contrato_id, produto_id, preco_unitario, quantidade_contratada)
			VALUES ($1, $2, $3, $4, $5)`,
			p.ID, c.ID, p.ProdutoID, p.PrecoUnitario, p.QuantidadeContratada)
		if err != nil {
			return fmt.Errorf("insert contrato produto: %w", err)
		}
	}
	return nil
}

func (r *ContratoRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Contrato, error) {
	c, err := scanContrato(r.q.QueryRow(ctx, `SELECT `+contratoColumns+` FROM contratos WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contrato: %w", err)
	}
	if err := r.loadProdutos(ctx, []*entity.Contrato{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ContratoRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Contrato, error) {
	limit, offset = limitOffset(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+contratoColumns+` FROM contratos WHERE tenant_id = $1
		ORDER BY data_inicio DESC, numero LIMIT $2 OFFSET $3`, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list contratos: %w", err)
	}
	var list []*entity.Contrato
	for rows.Next() {
		c, err := scanContrato(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan contrato: %w", err)
		}
		list = append(list, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadProdutos(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetProduto busca o produto de contrato garantindo que o contrato é do tenant.
func (r *ContratoRepo) GetProduto(ctx context.Context, tenantID, contratoProdutoID string) (*entity.ContratoProduto, error) {
	query := `
		SELECT cp.id, cp.contrato_id, cp.produto_id, cp.preco_unitario, cp.quantidade_contratada
		FROM contrato_produtos cp
		JOIN contratos c ON c.id = cp.contrato_id
		WHERE c.tenant_id = $1 AND cp.id = $2`
	var p entity.ContratoProduto
	err := r.q.QueryRow(ctx, query, tenantID, contratoProdutoID).Scan(&p.ID, &p.ContratoID, &p.ProdutoID,
		&p.PrecoUnitario, &p.QuantidadeContratada)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contrato produto: %w", err)
	}
	return &p, nil
}

func (r *ContratoRepo) loadProdutos(ctx context.Context, contratos []*entity.Contrato) error {
	if len(contratos) == 0 {
		return nil
	}
	ids := make([]string, len(contratos))
	byID := make(map[string]*entity.Contrato, len(contratos))
	for i, c := range contratos {
		ids[i] = c.ID
		byID[c.ID] = c
	}
	rows, err := r.q.Query(ctx, `
		SELECT cp.id, cp.contrato_id, cp.produto_id, cp.preco_unitario, cp.quantidade_contratada
		FROM contrato_produtos cp
		JOIN produtos p ON p.id = cp.produto_id
		WHERE cp.contrato_id::text = ANY($1)
		ORDER BY p.nome`, ids)
	if err != nil {
		return fmt.Errorf("list contrato produtos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.ContratoProduto
		if err := rows.Scan(&p.ID, &p.ContratoID, &p.ProdutoID, &p.PrecoUnitario, &p.QuantidadeContratada); err != nil {
			return fmt.Errorf("scan contrato produto: %w", err)
		}
		if c := byID[p.ContratoID]; c != nil {
			c.Produtos = append(c.Produtos, p)
		}
	}
	return rows.Err()
}
