package postgres

import (
	"context"
	"fmt"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.FaturamentoRepository = (*FaturamentoRepo)(nil)

// FaturamentoRepo faturamentos com itens por modalidade.
type FaturamentoRepo struct {
	q Querier
}

// NewFaturamentoRepository constrói o adaptador. Passar pool ou tx.
func NewFaturamentoRepository(q Querier) *FaturamentoRepo {
	return &FaturamentoRepo{q: q}
}

const faturamentoColumns = `id, tenant_id, pedido_id, numero, status, valor_total, COALESCE(criado_por::text, ''), created_at, updated_at`

func scanFaturamento(row interface{ Scan(...any) error }) (*entity.Faturamento, error) {
	var f entity.Faturamento
	if err := row.Scan(&f.ID, &f.TenantID, &f.PedidoID, &f.Numero, &f.Status, &f.ValorTotal, &f.CriadoPor,
		&f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create espera rodar dentro do TxRunner; o índice parcial impede dois faturamentos ativos do mesmo pedido.
func (r *FaturamentoRepo) Create(ctx context.Context, f *entity.Faturamento) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO faturamentos (id, tenant_id, pedido_id, numero, status, valor_total, criado_por, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		f.ID, f.TenantID, f.PedidoID, f.Numero, f.Status, f.ValorTotal, nullUUID(f.CriadoPor), f.CreatedAt, f.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrFaturamentoExistente
		}
		return fmt.Errorf("insert faturamento: %w", err)
	}
	for i, it := range f.Itens {
		_, err := r.q.Exec(ctx, `
			INSERT INTO faturamento_itens (id, faturamento_id, contrato_id, produto_id, modalidade_id, quantidade,
				percentual, preco_unitario, valor_total, posicao)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			it.ID, f.ID, it.ContratoID, it.ProdutoID, it.ModalidadeID, it.Quantidade, it.Percentual,
			it.PrecoUnitario, it.ValorTotal, i)
		if err != nil {
			return fmt.Errorf("insert faturamento item: %w", err)
		}
	}
	return nil
}

func (r *FaturamentoRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Faturamento, error) {
	f, err := scanFaturamento(r.q.QueryRow(ctx, `SELECT `+faturamentoColumns+` FROM faturamentos WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get faturamento: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, faturamento_id, contrato_id, produto_id, modalidade_id, quantidade, percentual, preco_unitario, valor_total
		FROM faturamento_itens WHERE faturamento_id = $1 ORDER BY posicao`, f.ID)
	if err != nil {
		return nil, fmt.Errorf("list faturamento itens: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.FaturamentoItem
		if err := rows.Scan(&it.ID, &it.FaturamentoID, &it.ContratoID, &it.ProdutoID, &it.ModalidadeID,
			&it.Quantidade, &it.Percentual, &it.PrecoUnitario, &it.ValorTotal); err != nil {
			return nil, fmt.Errorf("scan faturamento item: %w", err)
		}
		f.Itens = append(f.Itens, it)
	}
	return f, rows.Err()
}

// ListByPedido sem itens; mais recente primeiro.
func (r *FaturamentoRepo) ListByPedido(ctx context.Context, tenantID, pedidoID string) ([]*entity.Faturamento, error) {
	rows, err := r.q.Query(ctx, `SELECT `+faturamentoColumns+` FROM faturamentos
		WHERE tenant_id = $1 AND pedido_id = $2 ORDER BY created_at DESC`, tenantID, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("list faturamentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Faturamento
	for rows.Next() {
		f, err := scanFaturamento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan faturamento: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func (r *FaturamentoRepo) UpdateStatus(ctx context.Context, tenantID, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE faturamentos SET status = $3, updated_at = now() WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, status)
	if err != nil {
		return fmt.Errorf("update status faturamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextNumero incrementa o contador do tenant; dentro da transação a linha fica bloqueada até o commit.
func (r *FaturamentoRepo) NextNumero(ctx context.Context, tenantID string) (string, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		INSERT INTO faturamento_sequencias (tenant_id, ultimo) VALUES ($1, 1)
		ON CONFLICT (tenant_id) DO UPDATE SET ultimo = faturamento_sequencias.ultimo + 1
		RETURNING ultimo`, tenantID).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next numero faturamento: %w", err)
	}
	return fmt.Sprintf("FAT-%04d", n), nil
}
