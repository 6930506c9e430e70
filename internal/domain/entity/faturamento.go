package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de faturamento.
const (
	FaturamentoGerado    = "gerado"
	FaturamentoCancelado = "cancelado"
)

// Faturamento divisão de um pedido por modalidade, persistida para prestação de contas.
type Faturamento struct {
	ID         string
	TenantID   string
	PedidoID   string
	Numero     string
	Status     string
	ValorTotal decimal.Decimal
	Itens      []FaturamentoItem
	CriadoPor  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FaturamentoItem quantidade de um produto de contrato atribuída a uma modalidade.
type FaturamentoItem struct {
	ID            string
	FaturamentoID string
	ContratoID    string
	ProdutoID     string
	ModalidadeID  string
	Quantidade    decimal.Decimal
	Percentual    decimal.Decimal
	PrecoUnitario decimal.Decimal
	ValorTotal    decimal.Decimal
}
