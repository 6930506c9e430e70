package repository

import (
	"context"
	"time"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// LoteRepository porto de persistência dos lotes de estoque escolar.
// Usado dentro de transações para garantir consistência na saída.
type LoteRepository interface {
	Create(ctx context.Context, lote *entity.LoteEstoque) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.LoteEstoque, error)
	// ListByEscolaProduto devolve os lotes não esgotados do produto na escola.
	ListByEscolaProduto(ctx context.Context, tenantID, escolaID, produtoID string) ([]*entity.LoteEstoque, error)
	// ListForUpdate igual a ListByEscolaProduto, bloqueando as linhas (SELECT FOR UPDATE).
	ListForUpdate(ctx context.Context, tenantID, escolaID, produtoID string) ([]*entity.LoteEstoque, error)
	UpdateSaldo(ctx context.Context, lote *entity.LoteEstoque) error
}

// MovimentacaoRepository porto de persistência do histórico de movimentações.
type MovimentacaoRepository interface {
	Create(ctx context.Context, mov *entity.MovimentacaoEstoque) error
	// ListByEscola filtra por produto quando produtoID não é vazio.
	ListByEscola(ctx context.Context, tenantID, escolaID, produtoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimentacaoEstoque, error)
}

// EstoqueEscolaRepository consultas de leitura do saldo consolidado.
type EstoqueEscolaRepository interface {
	ListItens(ctx context.Context, tenantID, escolaID string) ([]*entity.ItemEstoqueEscola, error)
}
