package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de pedido.
const (
	PedidoPendente  = "pendente"
	PedidoAprovado  = "aprovado"
	PedidoFaturado  = "faturado"
	PedidoCancelado = "cancelado"
)

// Pedido compra feita contra um ou mais contratos.
type Pedido struct {
	ID         string
	TenantID   string
	Numero     string
	DataPedido time.Time
	Status     string
	Observacao string
	ValorTotal decimal.Decimal
	Itens      []PedidoItem
	CriadoPor  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PedidoItem item de pedido vinculado a um produto de contrato.
type PedidoItem struct {
	ID                string
	PedidoID          string
	ContratoID        string
	ContratoProdutoID string
	ProdutoID         string
	Quantidade        decimal.Decimal
	PrecoUnitario     decimal.Decimal
}

// Valor quantidade × preço.
func (i PedidoItem) Valor() decimal.Decimal {
	return i.Quantidade.Mul(i.PrecoUnitario)
}
