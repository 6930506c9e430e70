package dto

import "time"

// ProdutoRequest entrada para criar/atualizar produto.
type ProdutoRequest struct {
	Nome      string `json:"nome" validate:"required,min=1,max=200"`
	Unidade   string `json:"unidade" validate:"required"`
	Categoria string `json:"categoria"`
	Perecivel bool   `json:"perecivel"`
	Ativo     *bool  `json:"ativo"`
}

// ProdutoResponse saída de um produto.
type ProdutoResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Unidade   string    `json:"unidade"`
	Categoria string    `json:"categoria"`
	Perecivel bool      `json:"perecivel"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProdutoListResponse lista paginada de produtos.
type ProdutoListResponse struct {
	Items []ProdutoResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
