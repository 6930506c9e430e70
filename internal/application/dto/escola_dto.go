package dto

import "time"

// EscolaRequest entrada para criar/atualizar escola.
type EscolaRequest struct {
	Nome       string `json:"nome" validate:"required,min=1,max=200"`
	CodigoINEP string `json:"codigo_inep"`
	Endereco   string `json:"endereco"`
	Telefone   string `json:"telefone"`
	Ativo      *bool  `json:"ativo"`
}

// EscolaResponse saída de uma escola.
type EscolaResponse struct {
	ID         string    `json:"id"`
	Nome       string    `json:"nome"`
	CodigoINEP string    `json:"codigo_inep"`
	Endereco   string    `json:"endereco"`
	Telefone   string    `json:"telefone"`
	Ativo      bool      `json:"ativo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EscolaListResponse lista paginada de escolas.
type EscolaListResponse struct {
	Items []EscolaResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
