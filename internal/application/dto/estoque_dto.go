package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemEstoqueResponse saldo de um produto na escola.
type ItemEstoqueResponse struct {
	ProdutoID       string          `json:"produto_id"`
	ProdutoNome     string          `json:"produto_nome"`
	Categoria       string          `json:"categoria"`
	Unidade         string          `json:"unidade"`
	Quantidade      decimal.Decimal `json:"quantidade"`
	ProximaValidade string          `json:"proxima_validade,omitempty"`
	AlertaValidade  bool            `json:"alerta_validade"`
	TotalLotes      int             `json:"total_lotes"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// LoteResponse saída de um lote.
type LoteResponse struct {
	ID                string          `json:"id"`
	ProdutoID         string          `json:"produto_id"`
	Codigo            string          `json:"codigo"`
	QuantidadeInicial decimal.Decimal `json:"quantidade_inicial"`
	QuantidadeAtual   decimal.Decimal `json:"quantidade_atual"`
	DataFabricacao    string          `json:"data_fabricacao,omitempty"`
	DataValidade      string          `json:"data_validade,omitempty"`
	Status            string          `json:"status"`
	Vencido           bool            `json:"vencido"`
	CreatedAt         time.Time       `json:"created_at"`
}

// RegistrarEntradaRequest body de POST /api/estoque/escolas/:escola_id/entradas.
type RegistrarEntradaRequest struct {
	ProdutoID      string          `json:"produto_id" validate:"required"`
	Codigo         string          `json:"codigo"`
	Quantidade     decimal.Decimal `json:"quantidade" validate:"required"`
	DataFabricacao string          `json:"data_fabricacao,omitempty"`
	DataValidade   string          `json:"data_validade,omitempty"`
	Observacao     string          `json:"observacao,omitempty"`
}

// SaidaRequest body da simulação e da confirmação da saída inteligente.
type SaidaRequest struct {
	ProdutoID  string          `json:"produto_id" validate:"required"`
	Quantidade decimal.Decimal `json:"quantidade" validate:"required"`
	Estrategia string          `json:"estrategia,omitempty" validate:"omitempty,oneof=fefo fifo"`
	Motivo     string          `json:"motivo,omitempty"`
}

// ConsumoLoteResponse linha do plano de saída.
type ConsumoLoteResponse struct {
	LoteID         string          `json:"lote_id"`
	Codigo         string          `json:"codigo"`
	DataValidade   string          `json:"data_validade,omitempty"`
	Disponivel     decimal.Decimal `json:"disponivel"`
	Consumido      decimal.Decimal `json:"consumido"`
	RestanteNoLote decimal.Decimal `json:"restante_no_lote"`
}

// PlanoSaidaResponse resultado da simulação ou da confirmação.
type PlanoSaidaResponse struct {
	TransacaoID   string                `json:"transacao_id,omitempty"`
	ProdutoID     string                `json:"produto_id"`
	Estrategia    string                `json:"estrategia"`
	Solicitado    decimal.Decimal       `json:"solicitado"`
	Atendido      decimal.Decimal       `json:"atendido"`
	Faltante      decimal.Decimal       `json:"faltante"`
	Completo      bool                  `json:"completo"`
	Consumos      []ConsumoLoteResponse `json:"consumos"`
	LotesVencidos []LoteResponse        `json:"lotes_vencidos"`
	Aviso         string                `json:"aviso,omitempty"`
}

// MovimentacaoResponse linha do histórico.
type MovimentacaoResponse struct {
	ID                  string          `json:"id"`
	TransacaoID         string          `json:"transacao_id"`
	ProdutoID           string          `json:"produto_id"`
	LoteID              string          `json:"lote_id"`
	Tipo                string          `json:"tipo"`
	Quantidade          decimal.Decimal `json:"quantidade"`
	QuantidadeAnterior  decimal.Decimal `json:"quantidade_anterior"`
	QuantidadePosterior decimal.Decimal `json:"quantidade_posterior"`
	Motivo              string          `json:"motivo,omitempty"`
	UsuarioID           string          `json:"usuario_id"`
	CreatedAt           time.Time       `json:"created_at"`
}
