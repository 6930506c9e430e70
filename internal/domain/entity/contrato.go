package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contrato ata/contrato com fornecedor.
type Contrato struct {
	ID         string
	TenantID   string
	Numero     string
	Fornecedor string
	DataInicio time.Time
	DataFim    time.Time
	Ativo      bool
	Produtos   []ContratoProduto
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Vigente informa se ref está dentro da vigência (datas inclusivas).
func (c *Contrato) Vigente(ref time.Time) bool {
	d := Dia(ref)
	return c.Ativo && !d.Before(Dia(c.DataInicio)) && !d.After(Dia(c.DataFim))
}

// ContratoProduto preço e quantidade contratada de um produto.
type ContratoProduto struct {
	ID                   string
	ContratoID           string
	ProdutoID            string
	PrecoUnitario        decimal.Decimal
	QuantidadeContratada decimal.Decimal
}

// Modalidade de ensino/programa que recebe repasse (ex.: PNAE Creche, PNAE Fundamental).
// O faturamento divide as quantidades proporcionalmente ao ValorRepasse.
type Modalidade struct {
	ID               string
	TenantID         string
	Nome             string
	CodigoFinanceiro string
	ValorRepasse     decimal.Decimal
	Ativo            bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
