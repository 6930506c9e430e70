package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PedidoItemInput item de pedido: produto de contrato e quantidade.
type PedidoItemInput struct {
	ContratoProdutoID string          `json:"contrato_produto_id"`
	Quantidade        decimal.Decimal `json:"quantidade"`
}

// CreatePedidoRequest entrada para criar pedido.
type CreatePedidoRequest struct {
	Numero     string            `json:"numero"`
	DataPedido string            `json:"data_pedido"`
	Observacao string            `json:"observacao"`
	Itens      []PedidoItemInput `json:"itens" validate:"required,min=1"`
}

// PedidoItemResponse item de pedido na saída.
type PedidoItemResponse struct {
	ID                string          `json:"id"`
	ContratoID        string          `json:"contrato_id"`
	ContratoProdutoID string          `json:"contrato_produto_id"`
	ProdutoID         string          `json:"produto_id"`
	Quantidade        decimal.Decimal `json:"quantidade"`
	PrecoUnitario     decimal.Decimal `json:"preco_unitario"`
	ValorTotal        decimal.Decimal `json:"valor_total"`
}

// PedidoResponse saída de um pedido.
type PedidoResponse struct {
	ID         string               `json:"id"`
	Numero     string               `json:"numero"`
	DataPedido string               `json:"data_pedido"`
	Status     string               `json:"status"`
	Observacao string               `json:"observacao"`
	ValorTotal decimal.Decimal      `json:"valor_total"`
	Itens      []PedidoItemResponse `json:"itens"`
	CreatedAt  time.Time            `json:"created_at"`
}
