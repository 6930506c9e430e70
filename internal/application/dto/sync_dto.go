package dto

import (
	"encoding/json"
	"time"
)

// Tipos de operação aceitos na fila offline dos apps.
const (
	OpConfirmarEntrega = "confirmar_entrega"
	OpSaidaEstoque     = "saida_estoque"
	OpEntradaEstoque   = "entrada_estoque"
)

// OperacaoPendente operação enfileirada no dispositivo enquanto offline.
// ID é gerado no dispositivo e serve de chave de idempotência.
type OperacaoPendente struct {
	ID       string          `json:"id"`
	Tipo     string          `json:"tipo"`
	CriadaEm time.Time       `json:"criada_em"`
	Payload  json.RawMessage `json:"payload"`
}

// SyncRequest lote de operações pendentes, na ordem em que foram feitas.
type SyncRequest struct {
	Operacoes []OperacaoPendente `json:"operacoes"`
}

// Status de resultado de uma operação reenviada.
const (
	SyncOK        = "ok"
	SyncErro      = "erro"
	SyncDuplicada = "duplicada"
)

// ResultadoOperacao resultado de uma operação reenviada.
type ResultadoOperacao struct {
	ID       string `json:"id"`
	Tipo     string `json:"tipo"`
	Status   string `json:"status"`
	Codigo   string `json:"codigo,omitempty"`
	Mensagem string `json:"mensagem,omitempty"`
}

// SyncResponse resultados na mesma ordem das operações recebidas.
type SyncResponse struct {
	Resultados []ResultadoOperacao `json:"resultados"`
	Aplicadas  int                 `json:"aplicadas"`
	Falhas     int                 `json:"falhas"`
}

// ConfirmarEntregaPayload payload de confirmar_entrega.
type ConfirmarEntregaPayload struct {
	ItemID string `json:"item_id"`
	ConfirmarEntregaRequest
}

// SaidaEstoquePayload payload de saida_estoque.
type SaidaEstoquePayload struct {
	EscolaID string `json:"escola_id"`
	SaidaRequest
}

// EntradaEstoquePayload payload de entrada_estoque.
type EntradaEstoquePayload struct {
	EscolaID string `json:"escola_id"`
	RegistrarEntradaRequest
}
