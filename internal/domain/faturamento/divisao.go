// Package faturamento contém a regra de divisão de quantidades por modalidade.
package faturamento

import (
	"github.com/shopspring/decimal"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// CasasQuantidade casas decimais das quantidades divididas.
const CasasQuantidade = 2

// CasasValor casas decimais dos valores monetários.
const CasasValor = 2

// Percentual participação de uma modalidade no total de repasses.
type Percentual struct {
	Modalidade entity.Modalidade
	Fator      decimal.Decimal // 0..1
}

// Divisao parte de uma quantidade atribuída a uma modalidade.
type Divisao struct {
	Modalidade entity.Modalidade
	Percentual decimal.Decimal // 0..100
	Quantidade decimal.Decimal
	Valor      decimal.Decimal
}

// Percentuais calcula o fator de cada modalidade ativa: repasse / soma dos repasses.
// Modalidades inativas ou com repasse <= 0 ficam de fora.
func Percentuais(modalidades []entity.Modalidade) ([]Percentual, error) {
	total := decimal.Zero
	ativas := make([]entity.Modalidade, 0, len(modalidades))
	for _, m := range modalidades {
		if !m.Ativo || !m.ValorRepasse.IsPositive() {
			continue
		}
		ativas = append(ativas, m)
		total = total.Add(m.ValorRepasse)
	}
	if len(ativas) == 0 {
		return nil, domain.ErrModalidadesNaoConfiguradas
	}
	out := make([]Percentual, 0, len(ativas))
	for _, m := range ativas {
		out = append(out, Percentual{Modalidade: m, Fator: m.ValorRepasse.Div(total)})
	}
	return out, nil
}

// Dividir reparte quantidade entre as modalidades. Cada parte é arredondada em
// CasasQuantidade e a última modalidade absorve o resíduo, de modo que a soma das
// partes é exatamente a quantidade original. O mesmo vale para o valor: a soma dos
// valores é sempre (quantidade × preço) arredondado em CasasValor.
func Dividir(quantidade, precoUnitario decimal.Decimal, percentuais []Percentual) []Divisao {
	out := make([]Divisao, 0, len(percentuais))
	total := quantidade.Mul(precoUnitario).Round(CasasValor)
	acumulado, valorAcumulado := decimal.Zero, decimal.Zero
	hundred := decimal.NewFromInt(100)
	for i, p := range percentuais {
		var parte, valor decimal.Decimal
		if i == len(percentuais)-1 {
			parte = quantidade.Sub(acumulado)
			valor = total.Sub(valorAcumulado)
		} else {
			parte = decimal.Min(quantidade.Mul(p.Fator).Round(CasasQuantidade), quantidade.Sub(acumulado))
			valor = decimal.Min(parte.Mul(precoUnitario).Round(CasasValor), total.Sub(valorAcumulado))
		}
		acumulado = acumulado.Add(parte)
		valorAcumulado = valorAcumulado.Add(valor)
		out = append(out, Divisao{
			Modalidade: p.Modalidade,
			Percentual: p.Fator.Mul(hundred).Round(2),
			Quantidade: parte,
			Valor:      valor,
		})
	}
	return out
}
