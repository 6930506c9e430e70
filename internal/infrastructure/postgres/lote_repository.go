package postgres

import (
	"context"
	"fmt"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

// LoteRepo implementação de LoteRepository sobre PostgreSQL. Passar pool ou tx (Querier).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository constrói o adaptador de lotes.
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

const loteColumns = `id, tenant_id, escola_id, produto_id, codigo, quantidade_inicial, quantidade_atual,
	data_fabricacao, data_validade, status, observacao, created_at, updated_at`

func scanLote(row interface{ Scan(...any) error }) (*entity.LoteEstoque, error) {
	var l entity.LoteEstoque
	if err := row.Scan(&l.ID, &l.TenantID, &l.EscolaID, &l.ProdutoID, &l.Codigo, &l.QuantidadeInicial,
		&l.QuantidadeAtual, &l.DataFabricacao, &l.DataValidade, &l.Status, &l.Observacao,
		&l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LoteRepo) Create(ctx context.Context, l *entity.LoteEstoque) error {
	query := `
		INSERT INTO estoque_lotes (` + loteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query, l.ID, l.TenantID, l.EscolaID, l.ProdutoID, l.Codigo, l.QuantidadeInicial,
		l.QuantidadeAtual, l.DataFabricacao, l.DataValidade, l.Status, l.Observacao, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: escola ou produto", domain.ErrNotFound)
		}
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

func (r *LoteRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.LoteEstoque, error) {
	l, err := scanLote(r.q.QueryRow(ctx, `SELECT `+loteColumns+` FROM estoque_lotes WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return l, nil
}

func (r *LoteRepo) ListByEscolaProduto(ctx context.Context, tenantID, escolaID, produtoID string) ([]*entity.LoteEstoque, error) {
	return r.list(ctx, "", tenantID, escolaID, produtoID)
}

// ListForUpdate bloqueia os lotes do produto na escola até o fim da transação.
// Duas saídas concorrentes do mesmo produto ficam serializadas aqui.
func (r *LoteRepo) ListForUpdate(ctx context.Context, tenantID, escolaID, produtoID string) ([]*entity.LoteEstoque, error) {
	return r.list(ctx, " FOR UPDATE", tenantID, escolaID, produtoID)
}

func (r *LoteRepo) list(ctx context.Context, lock, tenantID, escolaID, produtoID string) ([]*entity.LoteEstoque, error) {
	query := `
		SELECT ` + loteColumns + `
		FROM estoque_lotes
		WHERE tenant_id = $1 AND escola_id = $2 AND produto_id = $3 AND status <> 'esgotado'
		ORDER BY created_at, id` + lock
	rows, err := r.q.Query(ctx, query, tenantID, escolaID, produtoID)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.LoteEstoque
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *LoteRepo) UpdateSaldo(ctx context.Context, l *entity.LoteEstoque) error {
	query := `
		UPDATE estoque_lotes SET quantidade_atual = $3, status = $4, updated_at = $5
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, l.TenantID, l.ID, l.QuantidadeAtual, l.Status, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update saldo lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
