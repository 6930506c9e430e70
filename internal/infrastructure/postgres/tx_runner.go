package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/estoque"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/faturamento"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ estoque.TxRunner = (*TxRunner)(nil)
var _ faturamento.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios de lote e movimentação presos a ela
// e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	loteRepo repository.LoteRepository,
	movRepo repository.MovimentacaoRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewLoteRepository(tx), NewMovimentacaoRepository(tx))
	})
}

// RunFaturamento inicia uma transação com os repositórios de pedido e faturamento.
func (r *TxRunner) RunFaturamento(ctx context.Context, fn func(
	pedidoRepo repository.PedidoRepository,
	fatRepo repository.FaturamentoRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewPedidoRepository(tx), NewFaturamentoRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
