package faturamento

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func modalidades() []entity.Modalidade {
	return []entity.Modalidade{
		{ID: "creche", Nome: "Creche", ValorRepasse: d("1.07"), Ativo: true},
		{ID: "pre", Nome: "Pré-escola", ValorRepasse: d("0.53"), Ativo: true},
		{ID: "fund", Nome: "Fundamental", ValorRepasse: d("0.36"), Ativo: true},
		{ID: "inativa", Nome: "EJA", ValorRepasse: d("0.32"), Ativo: false},
		{ID: "zerada", Nome: "AEE", ValorRepasse: decimal.Zero, Ativo: true},
	}
}

func TestPercentuais_SomamUm(t *testing.T) {
	ps, err := Percentuais(modalidades())
	require.NoError(t, err)
	require.Len(t, ps, 3)

	soma := decimal.Zero
	for _, p := range ps {
		soma = soma.Add(p.Fator)
	}
	assert.True(t, soma.Round(10).Equal(decimal.NewFromInt(1)), soma.String())
}

func TestPercentuais_SemModalidadeAtiva(t *testing.T) {
	_, err := Percentuais([]entity.Modalidade{{ID: "x", ValorRepasse: d("1"), Ativo: false}})
	assert.ErrorIs(t, err, domain.ErrModalidadesNaoConfiguradas)
}

func TestDividir_SomaExata(t *testing.T) {
	ps, err := Percentuais(modalidades())
	require.NoError(t, err)

	for _, q := range []string{"100", "33.33", "0.01", "7", "1234.56"} {
		qtd := d(q)
		partes := Dividir(qtd, d("4.99"), ps)
		require.Len(t, partes, 3)

		soma := decimal.Zero
		for _, p := range partes {
			soma = soma.Add(p.Quantidade)
		}
		assert.True(t, soma.Equal(qtd), "quantidade %s dividida soma %s", q, soma)
	}
}

func TestDividir_ValoresProporcionais(t *testing.T) {
	ps := []Percentual{
		{Modalidade: entity.Modalidade{ID: "a"}, Fator: d("0.5")},
		{Modalidade: entity.Modalidade{ID: "b"}, Fator: d("0.5")},
	}
	partes := Dividir(d("10"), d("2.50"), ps)

	assert.True(t, partes[0].Quantidade.Equal(d("5")))
	assert.True(t, partes[0].Valor.Equal(d("12.5")))
	assert.True(t, partes[0].Percentual.Equal(d("50")))
	assert.True(t, partes[1].Quantidade.Equal(d("5")))
}

func TestDividir_SomaDosValoresIgualAoTotalDoItem(t *testing.T) {
	meio := []Percentual{
		{Modalidade: entity.Modalidade{ID: "a"}, Fator: d("0.5")},
		{Modalidade: entity.Modalidade{ID: "b"}, Fator: d("0.5")},
	}
	partes := Dividir(d("1"), d("0.005"), meio)
	assert.Equal(t, "0.01", partes[0].Valor.Add(partes[1].Valor).String())

	ps, err := Percentuais(modalidades())
	require.NoError(t, err)
	quantidades := []string{"1", "3", "0.01", "0.33", "7.77", "33.33", "100", "1234.56"}
	precos := []string{"0.005", "0.015", "0.333", "1.005", "4.99", "2.675", "12.3456"}
	for _, fatores := range [][]Percentual{meio, ps} {
		for _, q := range quantidades {
			for _, pr := range precos {
				esperado := d(q).Mul(d(pr)).Round(CasasValor)
				soma := decimal.Zero
				for _, parte := range Dividir(d(q), d(pr), fatores) {
					assert.False(t, parte.Valor.IsNegative(), "q=%s p=%s", q, pr)
					soma = soma.Add(parte.Valor)
				}
				assert.True(t, soma.Equal(esperado), "q=%s p=%s: soma %s, esperado %s", q, pr, soma, esperado)
			}
		}
	}
}
