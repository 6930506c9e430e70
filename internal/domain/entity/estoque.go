package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de lote.
const (
	LoteStatusAtivo    = "ativo"
	LoteStatusEsgotado = "esgotado"
	LoteStatusVencido  = "vencido"
)

// LoteEstoque quantidade de um produto recebida junta numa escola, com fabricação e validade próprias.
type LoteEstoque struct {
	ID                string
	TenantID          string
	EscolaID          string
	ProdutoID         string
	Codigo            string
	QuantidadeInicial decimal.Decimal
	QuantidadeAtual   decimal.Decimal
	DataFabricacao    *time.Time
	DataValidade      *time.Time // nil = produto sem validade
	Status            string
	Observacao        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Vencido informa se a validade já passou na data de referência (o dia da validade ainda é válido).
func (l *LoteEstoque) Vencido(ref time.Time) bool {
	if l.DataValidade == nil {
		return false
	}
	return Dia(*l.DataValidade).Before(Dia(ref))
}

// ItemEstoqueEscola saldo consolidado de um produto numa escola (soma dos lotes ativos).
type ItemEstoqueEscola struct {
	TenantID        string
	EscolaID        string
	ProdutoID       string
	ProdutoNome     string
	Categoria       string
	Unidade         string
	Quantidade      decimal.Decimal
	ProximaValidade *time.Time
	TotalLotes      int
	UpdatedAt       time.Time
}

// Tipos de movimentação de estoque.
const (
	MovimentacaoEntrada = "entrada"
	MovimentacaoSaida   = "saida"
	MovimentacaoAjuste  = "ajuste"
)

// MovimentacaoEstoque registro imutável de alteração de saldo de um lote.
type MovimentacaoEstoque struct {
	ID                  string
	TransacaoID         string
	TenantID            string
	EscolaID            string
	ProdutoID           string
	LoteID              string
	Tipo                string
	Quantidade          decimal.Decimal // sempre positiva; o sentido vem do Tipo
	QuantidadeAnterior  decimal.Decimal
	QuantidadePosterior decimal.Decimal
	Motivo              string
	UsuarioID           string
	CreatedAt           time.Time
}

// Dia devolve a data civil de t (no fuso do próprio t) como meia-noite UTC.
// Colunas DATE chegam do pgx como meia-noite UTC e o relógio do servidor vem no fuso
// local; comparar por Dia compara o calendário dos dois, não o instante.
func Dia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
