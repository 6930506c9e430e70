package dto

import "time"

// CreateDemandaRequest entrada para registrar uma demanda.
type CreateDemandaRequest struct {
	EscolaID        string `json:"escola_id" validate:"required"`
	NumeroOficio    string `json:"numero_oficio" validate:"required"`
	Objeto          string `json:"objeto" validate:"required"`
	Descricao       string `json:"descricao"`
	DataSolicitacao string `json:"data_solicitacao"`
	Observacoes     string `json:"observacoes"`
}

// UpdateDemandaStatusRequest mudança de status; data de resposta exigida para atendido/nao_atendido.
type UpdateDemandaStatusRequest struct {
	Status       string `json:"status" validate:"required,oneof=pendente enviado_semead atendido nao_atendido"`
	DataResposta string `json:"data_resposta"`
	Observacoes  string `json:"observacoes"`
}

// DemandaResponse saída de uma demanda.
type DemandaResponse struct {
	ID              string    `json:"id"`
	EscolaID        string    `json:"escola_id"`
	NumeroOficio    string    `json:"numero_oficio"`
	Objeto          string    `json:"objeto"`
	Descricao       string    `json:"descricao"`
	DataSolicitacao string    `json:"data_solicitacao"`
	DataResposta    string    `json:"data_resposta,omitempty"`
	DiasEmAberto    int       `json:"dias_em_aberto"`
	Status          string    `json:"status"`
	Observacoes     string    `json:"observacoes"`
	CreatedAt       time.Time `json:"created_at"`
}
