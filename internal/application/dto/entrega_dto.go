package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RotaRequest entrada para criar/atualizar rota.
type RotaRequest struct {
	Nome      string `json:"nome" validate:"required"`
	Cor       string `json:"cor"`
	Descricao string `json:"descricao"`
	Ativo     *bool  `json:"ativo"`
}

// RotaResponse saída de uma rota.
type RotaResponse struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Cor       string `json:"cor"`
	Descricao string `json:"descricao"`
	Ativo     bool   `json:"ativo"`
}

// SetEscolasRotaRequest escolas da rota na ordem de visita.
type SetEscolasRotaRequest struct {
	EscolaIDs []string `json:"escola_ids"`
}

// EscolaEntregaResponse escola da rota com progresso.
type EscolaEntregaResponse struct {
	EscolaID       string `json:"escola_id"`
	EscolaNome     string `json:"escola_nome"`
	Endereco       string `json:"endereco"`
	Ordem          int    `json:"ordem"`
	TotalItens     int    `json:"total_itens"`
	ItensEntregues int    `json:"itens_entregues"`
	Concluida      bool   `json:"concluida"`
}

// ItemEntregaResponse item programado para uma escola.
type ItemEntregaResponse struct {
	ID                   string          `json:"id"`
	RotaID               string          `json:"rota_id"`
	EscolaID             string          `json:"escola_id"`
	ProdutoID            string          `json:"produto_id"`
	ProdutoNome          string          `json:"produto_nome"`
	Unidade              string          `json:"unidade"`
	QuantidadeProgramada decimal.Decimal `json:"quantidade_programada"`
	QuantidadeEntregue   decimal.Decimal `json:"quantidade_entregue"`
	Status               string          `json:"status"`
	DataPrevista         string          `json:"data_prevista,omitempty"`
	EntregueEm           *time.Time      `json:"entregue_em,omitempty"`
	NomeRecebedor        string          `json:"nome_recebedor,omitempty"`
	Observacao           string          `json:"observacao,omitempty"`
}

// ConfirmarEntregaRequest body da confirmação de entrega de um item.
type ConfirmarEntregaRequest struct {
	QuantidadeEntregue decimal.Decimal `json:"quantidade_entregue" validate:"required"`
	NomeRecebedor      string          `json:"nome_recebedor" validate:"required"`
	Observacao         string          `json:"observacao"`
}

// ProgramarItensRequest programação de itens de uma escola numa rota.
type ProgramarItensRequest struct {
	RotaID       string                `json:"rota_id" validate:"required"`
	EscolaID     string                `json:"escola_id" validate:"required"`
	DataPrevista string                `json:"data_prevista"`
	Itens        []ItemProgramadoInput `json:"itens" validate:"required,min=1"`
}

// ItemProgramadoInput produto e quantidade programada.
type ItemProgramadoInput struct {
	ProdutoID  string          `json:"produto_id"`
	Quantidade decimal.Decimal `json:"quantidade"`
}
