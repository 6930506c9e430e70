package postgres

import (
	"context"
	"fmt"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.EstoqueEscolaRepository = (*EstoqueEscolaRepo)(nil)

// EstoqueEscolaRepo leitura do saldo consolidado a partir dos lotes ativos.
type EstoqueEscolaRepo struct {
	q Querier
}

// NewEstoqueEscolaRepository constrói o adaptador.
func NewEstoqueEscolaRepository(q Querier) *EstoqueEscolaRepo {
	return &EstoqueEscolaRepo{q: q}
}

// ListItens agrega por produto os lotes ativos da escola. Produtos que já tiveram lote
// na escola aparecem mesmo zerados, com quantidade 0.
func (r *EstoqueEscolaRepo) ListItens(ctx context.Context, tenantID, escolaID string) ([]*entity.ItemEstoqueEscola, error) {
	query := `
		SELECT p.id, p.nome, p.categoria, p.unidade,
			COALESCE(SUM(l.quantidade_atual) FILTER (WHERE l.status = 'ativo'), 0),
			MIN(l.data_validade) FILTER (WHERE l.status = 'ativo' AND l.quantidade_atual > 0),
			COUNT(*) FILTER (WHERE l.status = 'ativo'),
			MAX(l.updated_at)
		FROM estoque_lotes l
		JOIN produtos p ON p.id = l.produto_id AND p.tenant_id = l.tenant_id
		WHERE l.tenant_id = $1 AND l.escola_id = $2
		GROUP BY p.id, p.nome, p.categoria, p.unidade
		ORDER BY p.nome`
	rows, err := r.q.Query(ctx, query, tenantID, escolaID)
	if err != nil {
		return nil, fmt.Errorf("list itens estoque: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemEstoqueEscola
	for rows.Next() {
		it := entity.ItemEstoqueEscola{TenantID: tenantID, EscolaID: escolaID}
		if err := rows.Scan(&it.ProdutoID, &it.ProdutoNome, &it.Categoria, &it.Unidade,
			&it.Quantidade, &it.ProximaValidade, &it.TotalLotes, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item estoque: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
