package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.MovimentacaoRepository = (*MovimentacaoRepo)(nil)

// MovimentacaoRepo histórico imutável de movimentações (só INSERT e SELECT).
type MovimentacaoRepo struct {
	q Querier
}

// NewMovimentacaoRepository constrói o adaptador. Passar pool ou tx.
func NewMovimentacaoRepository(q Querier) *MovimentacaoRepo {
	return &MovimentacaoRepo{q: q}
}

func (r *MovimentacaoRepo) Create(ctx context.Context, m *entity.MovimentacaoEstoque) error {
	query := `
		INSERT INTO estoque_movimentacoes (id, transacao_id, tenant_id, escola_id, produto_id, lote_id, tipo,
			quantidade, quantidade_anterior, quantidade_posterior, motivo, usuario_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query, m.ID, m.TransacaoID, m.TenantID, m.EscolaID, m.ProdutoID, m.LoteID, m.Tipo,
		m.Quantidade, m.QuantidadeAnterior, m.QuantidadePosterior, m.Motivo, nullUUID(m.UsuarioID), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movimentacao: %w", err)
	}
	return nil
}

// ListByEscola mais recentes primeiro; produto e período são filtros opcionais.
func (r *MovimentacaoRepo) ListByEscola(ctx context.Context, tenantID, escolaID, produtoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimentacaoEstoque, error) {
	limit, offset = limitOffset(limit, offset)
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, transacao_id, tenant_id, escola_id, produto_id, lote_id, tipo, quantidade,
			quantidade_anterior, quantidade_posterior, motivo, COALESCE(usuario_id::text, ''), created_at
		FROM estoque_movimentacoes
		WHERE tenant_id = $1 AND escola_id = $2`)
	args := []any{tenantID, escolaID}
	if produtoID != "" {
		args = append(args, produtoID)
		fmt.Fprintf(&sb, " AND produto_id = $%d", len(args))
	}
	if from != nil {
		args = append(args, *from)
		fmt.Fprintf(&sb, " AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		fmt.Fprintf(&sb, " AND created_at < $%d", len(args))
	}
	args = append(args, limit, offset)
	fmt.Fprintf(&sb, " ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list movimentacoes: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimentacaoEstoque
	for rows.Next() {
		var m entity.MovimentacaoEstoque
		if err := rows.Scan(&m.ID, &m.TransacaoID, &m.TenantID, &m.EscolaID, &m.ProdutoID, &m.LoteID, &m.Tipo,
			&m.Quantidade, &m.QuantidadeAnterior, &m.QuantidadePosterior, &m.Motivo, &m.UsuarioID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimentacao: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
