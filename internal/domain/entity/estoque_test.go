package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var brasilia = time.FixedZone("BRT", -3*60*60)

func TestLoteEstoque_Vencido_ComparaDataCivil(t *testing.T) {
	validade := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	l := &LoteEstoque{DataValidade: &validade}

	cases := []struct {
		nome string
		ref  time.Time
		want bool
	}{
		{"manhã do dia da validade em Brasília", time.Date(2025, 1, 10, 9, 0, 0, 0, brasilia), false},
		{"noite do dia da validade em Brasília", time.Date(2025, 1, 10, 23, 30, 0, 0, brasilia), false},
		{"madrugada do dia seguinte em Brasília", time.Date(2025, 1, 11, 0, 5, 0, 0, brasilia), true},
		{"dia anterior em UTC", time.Date(2025, 1, 9, 23, 0, 0, 0, time.UTC), false},
		{"dia seguinte em UTC", time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tc := range cases {
		t.Run(tc.nome, func(t *testing.T) {
			assert.Equal(t, tc.want, l.Vencido(tc.ref))
		})
	}
}

func TestLoteEstoque_Vencido_SemValidade(t *testing.T) {
	assert.False(t, (&LoteEstoque{}).Vencido(time.Now()))
}

func TestDia(t *testing.T) {
	ref := time.Date(2025, 3, 1, 22, 0, 0, 0, brasilia) // 01:00 UTC do dia 2
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Dia(ref))
}

func TestContrato_Vigente_ComFusoLocal(t *testing.T) {
	c := &Contrato{
		Ativo:      true,
		DataInicio: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DataFim:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, c.Vigente(time.Date(2025, 12, 31, 22, 0, 0, 0, brasilia)))
	assert.False(t, c.Vigente(time.Date(2026, 1, 1, 8, 0, 0, 0, brasilia)))
}
