package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.ItemEntregaRepository = (*ItemEntregaRepo)(nil)

// ItemEntregaRepo implementação de ItemEntregaRepository sobre PostgreSQL.
type ItemEntregaRepo struct {
	q Querier
}

// NewItemEntregaRepository constrói o adaptador.
func NewItemEntregaRepository(q Querier) *ItemEntregaRepo {
	return &ItemEntregaRepo{q: q}
}

const itemEntregaSelect = `
	SELECT i.id, i.tenant_id, i.rota_id, i.escola_id, i.produto_id, p.nome, p.unidade,
		i.quantidade_programada, i.quantidade_entregue, i.status, i.data_prevista, i.entregue_em,
		COALESCE(i.entregue_por::text, ''), i.nome_recebedor, i.observacao, i.created_at, i.updated_at
	FROM itens_entrega i
	JOIN produtos p ON p.id = i.produto_id`

func scanItemEntrega(row interface{ Scan(...any) error }) (*entity.ItemEntrega, error) {
	var it entity.ItemEntrega
	if err := row.Scan(&it.ID, &it.TenantID, &it.RotaID, &it.EscolaID, &it.ProdutoID, &it.ProdutoNome, &it.Unidade,
		&it.QuantidadeProgramada, &it.QuantidadeEntregue, &it.Status, &it.DataPrevista, &it.EntregueEm,
		&it.EntreguePor, &it.NomeRecebedor, &it.Observacao, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// CreateMany insere os itens num único INSERT multi-linha, que é atômico.
func (r *ItemEntregaRepo) CreateMany(ctx context.Context, itens []*entity.ItemEntrega) error {
	if len(itens) == 0 {
		return nil
	}
	const cols = 12
	var b strings.Builder
	b.WriteString(`
		INSERT INTO itens_entrega (id, tenant_id, rota_id, escola_id, produto_id, quantidade_programada,
			quantidade_entregue, status, data_prevista, observacao, created_at, updated_at)
		VALUES `)
	args := make([]any, 0, len(itens)*cols)
	for i, it := range itens {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for c := 1; c <= cols; c++ {
			if c > 1 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", i*cols+c)
		}
		b.WriteString(")")
		args = append(args, it.ID, it.TenantID, it.RotaID, it.EscolaID, it.ProdutoID, it.QuantidadeProgramada,
			it.QuantidadeEntregue, it.Status, it.DataPrevista, it.Observacao, it.CreatedAt, it.UpdatedAt)
	}
	if _, err := r.q.Exec(ctx, b.String(), args...); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: rota, escola ou produto", domain.ErrNotFound)
		}
		return fmt.Errorf("insert itens entrega: %w", err)
	}
	return nil
}

func (r *ItemEntregaRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.ItemEntrega, error) {
	it, err := scanItemEntrega(r.q.QueryRow(ctx, itemEntregaSelect+` WHERE i.tenant_id = $1 AND i.id = $2`, tenantID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item entrega: %w", err)
	}
	return it, nil
}

func (r *ItemEntregaRepo) ListByEscola(ctx context.Context, tenantID, escolaID, rotaID string) ([]*entity.ItemEntrega, error) {
	query := itemEntregaSelect + ` WHERE i.tenant_id = $1 AND i.escola_id = $2 AND ($3 = '' OR i.rota_id::text = $3)
		ORDER BY p.nome, i.created_at`
	return r.list(ctx, query, tenantID, escolaID, rotaID)
}

func (r *ItemEntregaRepo) ListByRota(ctx context.Context, tenantID, rotaID string) ([]*entity.ItemEntrega, error) {
	query := itemEntregaSelect + ` WHERE i.tenant_id = $1 AND i.rota_id = $2 ORDER BY i.escola_id, p.nome`
	return r.list(ctx, query, tenantID, rotaID)
}

func (r *ItemEntregaRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ItemEntrega, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list itens entrega: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemEntrega
	for rows.Next() {
		it, err := scanItemEntrega(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item entrega: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// UpdateConfirmacao grava o resultado de confirmar ou cancelar a entrega. O filtro por
// status impede que duas confirmações concorrentes passem pela mesma leitura.
func (r *ItemEntregaRepo) UpdateConfirmacao(ctx context.Context, it *entity.ItemEntrega, statusAnterior string) error {
	query := `
		UPDATE itens_entrega SET quantidade_entregue = $3, status = $4, entregue_em = $5, entregue_por = $6,
			nome_recebedor = $7, observacao = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2 AND status = $10`
	tag, err := r.q.Exec(ctx, query, it.TenantID, it.ID, it.QuantidadeEntregue, it.Status, it.EntregueEm,
		nullUUID(it.EntreguePor), it.NomeRecebedor, it.Observacao, it.UpdatedAt, statusAnterior)
	if err != nil {
		return fmt.Errorf("update item entrega: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s alterado por outra operação", domain.ErrConflict, it.ID)
	}
	return nil
}
