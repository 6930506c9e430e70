package dto

import "github.com/shopspring/decimal"

// ContratoProdutoInput produto de um contrato.
type ContratoProdutoInput struct {
	ProdutoID            string          `json:"produto_id"`
	PrecoUnitario        decimal.Decimal `json:"preco_unitario"`
	QuantidadeContratada decimal.Decimal `json:"quantidade_contratada"`
}

// CreateContratoRequest entrada para cadastrar contrato.
type CreateContratoRequest struct {
	Numero     string                 `json:"numero" validate:"required"`
	Fornecedor string                 `json:"fornecedor" validate:"required"`
	DataInicio string                 `json:"data_inicio" validate:"required"`
	DataFim    string                 `json:"data_fim" validate:"required"`
	Produtos   []ContratoProdutoInput `json:"produtos"`
}

// ContratoProdutoResponse produto de contrato na saída.
type ContratoProdutoResponse struct {
	ID                   string          `json:"id"`
	ProdutoID            string          `json:"produto_id"`
	PrecoUnitario        decimal.Decimal `json:"preco_unitario"`
	QuantidadeContratada decimal.Decimal `json:"quantidade_contratada"`
}

// ContratoResponse saída de um contrato.
type ContratoResponse struct {
	ID         string                    `json:"id"`
	Numero     string                    `json:"numero"`
	Fornecedor string                    `json:"fornecedor"`
	DataInicio string                    `json:"data_inicio"`
	DataFim    string                    `json:"data_fim"`
	Ativo      bool                      `json:"ativo"`
	Vigente    bool                      `json:"vigente"`
	Produtos   []ContratoProdutoResponse `json:"produtos"`
}

// ModalidadeRequest entrada para criar/atualizar modalidade.
type ModalidadeRequest struct {
	Nome             string          `json:"nome" validate:"required"`
	CodigoFinanceiro string          `json:"codigo_financeiro"`
	ValorRepasse     decimal.Decimal `json:"valor_repasse"`
	Ativo            *bool           `json:"ativo"`
}

// ModalidadeResponse saída de uma modalidade.
type ModalidadeResponse struct {
	ID               string          `json:"id"`
	Nome             string          `json:"nome"`
	CodigoFinanceiro string          `json:"codigo_financeiro"`
	ValorRepasse     decimal.Decimal `json:"valor_repasse"`
	Ativo            bool            `json:"ativo"`
}
