package estoque

import (
	"context"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando repositórios presos a ela.
// Garante a atomicidade da saída inteligente: todos os lotes ou nenhum.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		loteRepo repository.LoteRepository,
		movRepo repository.MovimentacaoRepository,
	) error) error
}
