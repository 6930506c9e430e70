package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DivisaoModalidade parte de um item atribuída a uma modalidade.
type DivisaoModalidade struct {
	ModalidadeID     string          `json:"modalidade_id"`
	ModalidadeNome   string          `json:"modalidade_nome"`
	CodigoFinanceiro string          `json:"codigo_financeiro"`
	Percentual       decimal.Decimal `json:"percentual"`
	Quantidade       decimal.Decimal `json:"quantidade"`
	Valor            decimal.Decimal `json:"valor"`
}

// ItemCalculado item de pedido dividido por modalidade.
type ItemCalculado struct {
	ProdutoID     string              `json:"produto_id"`
	ProdutoNome   string              `json:"produto_nome"`
	Unidade       string              `json:"unidade"`
	Quantidade    decimal.Decimal     `json:"quantidade"`
	PrecoUnitario decimal.Decimal     `json:"preco_unitario"`
	ValorTotal    decimal.Decimal     `json:"valor_total"`
	Divisoes      []DivisaoModalidade `json:"divisoes"`
}

// ContratoCalculado itens de um contrato no cálculo do faturamento.
type ContratoCalculado struct {
	ContratoID string          `json:"contrato_id"`
	Numero     string          `json:"numero"`
	Fornecedor string          `json:"fornecedor"`
	Itens      []ItemCalculado `json:"itens"`
	ValorTotal decimal.Decimal `json:"valor_total"`
}

// CalculoFaturamentoResponse prévia do faturamento de um pedido.
type CalculoFaturamentoResponse struct {
	PedidoID     string              `json:"pedido_id"`
	PedidoNumero string              `json:"pedido_numero"`
	Contratos    []ContratoCalculado `json:"contratos"`
	ValorTotal   decimal.Decimal     `json:"valor_total"`
}

// FaturamentoItemResponse linha persistida do faturamento.
type FaturamentoItemResponse struct {
	ContratoID    string          `json:"contrato_id"`
	ProdutoID     string          `json:"produto_id"`
	ModalidadeID  string          `json:"modalidade_id"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	Percentual    decimal.Decimal `json:"percentual"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
}

// FaturamentoResponse saída de um faturamento.
type FaturamentoResponse struct {
	ID         string                    `json:"id"`
	PedidoID   string                    `json:"pedido_id"`
	Numero     string                    `json:"numero"`
	Status     string                    `json:"status"`
	ValorTotal decimal.Decimal           `json:"valor_total"`
	Itens      []FaturamentoItemResponse `json:"itens"`
	CreatedAt  time.Time                 `json:"created_at"`
}
