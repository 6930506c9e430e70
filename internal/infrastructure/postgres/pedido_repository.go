package postgres

import (
	"context"
	"fmt"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo pedidos com itens. Passar pool ou tx (Querier).
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository constrói o adaptador.
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

const pedidoColumns = `id, tenant_id, numero, data_pedido, status, observacao, valor_total,
	COALESCE(criado_por::text, ''), created_at, updated_at`

func scanPedido(row interface{ Scan(...any) error }) (*entity.Pedido, error) {
	var p entity.Pedido
	if err := row.Scan(&p.ID, &p.TenantID, &p.Numero, &p.DataPedido, &p.Status, &p.Observacao, &p.ValorTotal,
		&p.CriadoPor, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create grava pedido e itens juntos; a ordem dos itens é preservada em posicao.
func (r *PedidoRepo) Create(ctx context.Context, p *entity.Pedido) error {
	b, ok := r.q.(beginner)
	if !ok {
		return r.create(ctx, r.q, p)
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := r.create(ctx, tx, p); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *PedidoRepo) create(ctx context.Context, q Querier, p *entity.Pedido) error {
	_, err := q.Exec(ctx, `
		INSERT INTO pedidos (id, tenant_id, numero, data_pedido, status, observacao, valor_total, criado_por, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.TenantID, p.Numero, p.DataPedido, p.Status, p.Observacao, p.ValorTotal, nullUUID(p.CriadoPor),
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: pedido %s", domain.ErrDuplicate, p.Numero)
		}
		return fmt.Errorf("insert pedido: %w", err)
	}
	for i, it := range p.Itens {
		_, err := q.Exec(ctx, `
			INSERT INTO pedido_itens (id, pedido_id, contrato_id, contrato_produto_id, produto_id, quantidade, preco_unitario, posicao)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, p.ID, it.ContratoID, it.ContratoProdutoID, it.ProdutoID, it.Quantidade, it.PrecoUnitario, i)
		if err != nil {
			return fmt.Errorf("insert pedido item: %w", err)
		}
	}
	return nil
}

func (r *PedidoRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Pedido, error) {
	return r.get(ctx, "", tenantID, id)
}

// GetForUpdate bloqueia a linha do pedido; usado por gerar e cancelar faturamento.
func (r *PedidoRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Pedido, error) {
	return r.get(ctx, " FOR UPDATE", tenantID, id)
}

func (r *PedidoRepo) get(ctx context.Context, lock, tenantID, id string) (*entity.Pedido, error) {
	p, err := scanPedido(r.q.QueryRow(ctx, `SELECT `+pedidoColumns+` FROM pedidos WHERE tenant_id = $1 AND id = $2`+lock, tenantID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	if err := r.loadItens(ctx, []*entity.Pedido{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PedidoRepo) UpdateStatus(ctx context.Context, tenantID, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE pedidos SET status = $3, updated_at = now() WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, status)
	if err != nil {
		return fmt.Errorf("update status pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PedidoRepo) ListByTenant(ctx context.Context, tenantID, status string, limit, offset int) ([]*entity.Pedido, error) {
	limit, offset = limitOffset(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT `+pedidoColumns+` FROM pedidos
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY data_pedido DESC, created_at DESC
		LIMIT $3 OFFSET $4`, tenantID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	var list []*entity.Pedido
	for rows.Next() {
		p, err := scanPedido(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItens(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PedidoRepo) loadItens(ctx context.Context, pedidos []*entity.Pedido) error {
	if len(pedidos) == 0 {
		return nil
	}
	ids := make([]string, len(pedidos))
	byID := make(map[string]*entity.Pedido, len(pedidos))
	for i, p := range pedidos {
		ids[i] = p.ID
		byID[p.ID] = p
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, pedido_id, contrato_id, contrato_produto_id, produto_id, quantidade, preco_unitario
		FROM pedido_itens WHERE pedido_id::text = ANY($1)
		ORDER BY pedido_id, posicao`, ids)
	if err != nil {
		return fmt.Errorf("list pedido itens: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PedidoItem
		if err := rows.Scan(&it.ID, &it.PedidoID, &it.ContratoID, &it.ContratoProdutoID, &it.ProdutoID,
			&it.Quantidade, &it.PrecoUnitario); err != nil {
			return fmt.Errorf("scan pedido item: %w", err)
		}
		if p := byID[it.PedidoID]; p != nil {
			p.Itens = append(p.Itens, it)
		}
	}
	return rows.Err()
}
