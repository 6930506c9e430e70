package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
	ErrInsufficientStock  = errors.New("estoque insuficiente")
)

// Erros específicos do domínio escolar. Os de validação embrulham ErrInvalidInput
// e os de estado embrulham ErrConflict, para que errors.Is funcione nos dois níveis.
var (
	ErrQuantidadeInvalida         = fmt.Errorf("%w: quantidade deve ser maior que zero", ErrInvalidInput)
	ErrValidadeAnteriorFabricacao = fmt.Errorf("%w: data de validade anterior à fabricação", ErrInvalidInput)
	ErrPedidoSemItens             = fmt.Errorf("%w: pedido sem itens", ErrInvalidInput)
	ErrLoteVencido                = fmt.Errorf("%w: lote com validade vencida", ErrInvalidInput)
	ErrEntregaJaConfirmada        = fmt.Errorf("%w: entrega já confirmada", ErrConflict)
	ErrFaturamentoExistente       = fmt.Errorf("%w: pedido já possui faturamento", ErrConflict)
	ErrModalidadesNaoConfiguradas = fmt.Errorf("%w: nenhuma modalidade ativa com repasse", ErrConflict)
	ErrStatusInvalido             = fmt.Errorf("%w: transição de status inválida", ErrConflict)
)

// Códigos estáveis de erro expostos na API e nos resultados da sincronização.
const (
	CodeValidation        = "VALIDATION"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeDuplicate         = "DUPLICATE"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeInternal          = "INTERNAL"
)

// Code classifica err num dos códigos acima; erros desconhecidos viram CodeInternal.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientStock):
		return CodeInsufficientStock
	case errors.Is(err, ErrInvalidInput):
		return CodeValidation
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return CodeNotFound
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrEmailAlreadyExists):
		return CodeDuplicate
	case errors.Is(err, ErrConflict):
		return CodeConflict
	}
	return CodeInternal
}
