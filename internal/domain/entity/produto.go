package entity

import "time"

// Produto item de gênero alimentício ou material fornecido às escolas.
type Produto struct {
	ID        string
	TenantID  string
	Nome      string
	Unidade   string // kg, un, L, pct
	Categoria string
	Perecivel bool
	Ativo     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
