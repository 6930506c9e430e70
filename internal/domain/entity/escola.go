package entity

import "time"

// Escola unidade escolar atendida.
type Escola struct {
	ID         string
	TenantID   string
	Nome       string
	CodigoINEP string
	Endereco   string
	Telefone   string
	Ativo      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
