package faturamento

import (
	"context"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

// TxRunner executa fn numa transação com os repositórios de pedido e faturamento.
// Gerar e cancelar alteram as duas tabelas juntas.
type TxRunner interface {
	RunFaturamento(ctx context.Context, fn func(
		pedidoRepo repository.PedidoRepository,
		fatRepo repository.FaturamentoRepository,
	) error) error
}
