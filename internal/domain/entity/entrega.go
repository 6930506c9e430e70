package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RotaEntrega agrupamento de escolas atendidas numa mesma saída de veículo.
type RotaEntrega struct {
	ID        string
	TenantID  string
	Nome      string
	Cor       string
	Descricao string
	Ativo     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EscolaEntrega escola dentro de uma rota, com os totais de itens para o app.
type EscolaEntrega struct {
	RotaID         string
	EscolaID       string
	EscolaNome     string
	Endereco       string
	Ordem          int
	TotalItens     int
	ItensEntregues int
}

// Status de item de entrega.
const (
	EntregaPendente = "pendente"
	EntregaParcial  = "parcial"
	EntregaEntregue = "entregue"
)

// ItemEntrega quantidade programada de um produto para uma escola e sua confirmação.
type ItemEntrega struct {
	ID                   string
	TenantID             string
	RotaID               string
	EscolaID             string
	ProdutoID            string
	ProdutoNome          string
	Unidade              string
	QuantidadeProgramada decimal.Decimal
	QuantidadeEntregue   decimal.Decimal
	Status               string
	DataPrevista         *time.Time
	EntregueEm           *time.Time
	EntreguePor          string
	NomeRecebedor        string
	Observacao           string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
