package estoque

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
)

func dia(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func lote(id string, qtd int64, validade string) LoteDisponivel {
	l := LoteDisponivel{LoteID: id, Codigo: "L" + id, Disponivel: dec(qtd)}
	if validade != "" {
		l.DataValidade = dia(validade)
	}
	return l
}

func somaConsumida(p PlanoSaida) decimal.Decimal {
	total := decimal.Zero
	for _, c := range p.Consumos {
		total = total.Add(c.Consumido)
	}
	return total
}

func TestAlocarFEFO_ExemploBasico(t *testing.T) {
	lotes := []LoteDisponivel{
		lote("1", 5, "2025-01-10"),
		lote("2", 10, "2025-02-01"),
	}

	plano, err := AlocarFEFO(dec(8), lotes)
	require.NoError(t, err)

	require.Len(t, plano.Consumos, 2)
	assert.Equal(t, "1", plano.Consumos[0].Lote.LoteID)
	assert.True(t, plano.Consumos[0].Consumido.Equal(dec(5)))
	assert.True(t, plano.Consumos[0].RestanteNoLote.IsZero())
	assert.Equal(t, "2", plano.Consumos[1].Lote.LoteID)
	assert.True(t, plano.Consumos[1].Consumido.Equal(dec(3)))
	assert.True(t, plano.Consumos[1].RestanteNoLote.Equal(dec(7)))
	assert.True(t, plano.Faltante.IsZero())
	assert.True(t, plano.Completo())
}

func TestAlocarFEFO_OrdenaPorValidadeESemValidadePorUltimo(t *testing.T) {
	lotes := []LoteDisponivel{
		lote("sem", 100, ""),
		lote("mar", 2, "2025-03-01"),
		lote("jan", 2, "2025-01-01"),
		lote("fev", 2, "2025-02-01"),
	}

	plano, err := AlocarFEFO(dec(10), lotes)
	require.NoError(t, err)

	ids := make([]string, 0, len(plano.Consumos))
	for _, c := range plano.Consumos {
		ids = append(ids, c.Lote.LoteID)
	}
	assert.Equal(t, []string{"jan", "fev", "mar", "sem"}, ids)
	assert.True(t, plano.Consumos[3].Consumido.Equal(dec(4)))
}

func TestAlocarFEFO_EmpateMantemOrdemDeEntrada(t *testing.T) {
	lotes := []LoteDisponivel{
		lote("a", 3, "2025-05-05"),
		lote("b", 3, "2025-05-05"),
		lote("c", 3, ""),
		lote("d", 3, ""),
	}
	plano, err := AlocarFEFO(dec(12), lotes)
	require.NoError(t, err)

	ids := []string{}
	for _, c := range plano.Consumos {
		ids = append(ids, c.Lote.LoteID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestAlocarFEFO_Falta(t *testing.T) {
	lotes := []LoteDisponivel{lote("1", 4, "2025-01-01"), lote("2", 3, "")}

	plano, err := AlocarFEFO(dec(10), lotes)
	require.NoError(t, err)

	assert.True(t, plano.Atendido.Equal(dec(7)))
	assert.True(t, plano.Faltante.Equal(dec(3)))
	assert.False(t, plano.Completo())
}

func TestAlocarFEFO_QuantidadeInvalida(t *testing.T) {
	lotes := []LoteDisponivel{lote("1", 4, "2025-01-01")}

	for _, q := range []decimal.Decimal{decimal.Zero, dec(-1)} {
		_, err := AlocarFEFO(q, lotes)
		assert.ErrorIs(t, err, domain.ErrQuantidadeInvalida)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestAlocarFEFO_IgnoraLotesZeradosOuNegativos(t *testing.T) {
	lotes := []LoteDisponivel{
		lote("zero", 0, "2024-01-01"),
		lote("neg", -2, "2024-02-01"),
		lote("ok", 5, "2024-03-01"),
	}
	plano, err := AlocarFEFO(dec(2), lotes)
	require.NoError(t, err)
	require.Len(t, plano.Consumos, 1)
	assert.Equal(t, "ok", plano.Consumos[0].Lote.LoteID)
}

func TestAlocarFEFO_QuantidadesFracionadas(t *testing.T) {
	lotes := []LoteDisponivel{
		{LoteID: "1", Disponivel: decimal.RequireFromString("1.250"), DataValidade: dia("2025-01-01")},
		{LoteID: "2", Disponivel: decimal.RequireFromString("0.800"), DataValidade: dia("2025-01-02")},
	}
	plano, err := AlocarFEFO(decimal.RequireFromString("1.5"), lotes)
	require.NoError(t, err)
	assert.True(t, plano.Consumos[1].Consumido.Equal(decimal.RequireFromString("0.25")))
	assert.True(t, plano.Consumos[1].RestanteNoLote.Equal(decimal.RequireFromString("0.55")))
}

func TestAlocarFEFO_NaoAlteraEntrada(t *testing.T) {
	lotes := []LoteDisponivel{lote("b", 1, "2025-02-01"), lote("a", 1, "2025-01-01")}
	_, err := AlocarFEFO(dec(1), lotes)
	require.NoError(t, err)
	assert.Equal(t, "b", lotes[0].LoteID)
}

func TestAlocarFIFO_OrdenaPorEntrada(t *testing.T) {
	lotes := []LoteDisponivel{
		{LoteID: "novo", Disponivel: dec(5), DataEntrada: *dia("2025-03-01"), DataValidade: dia("2025-04-01")},
		{LoteID: "antigo", Disponivel: dec(5), DataEntrada: *dia("2025-01-01"), DataValidade: dia("2025-12-01")},
	}
	plano, err := Alocar(FIFO, dec(6), lotes)
	require.NoError(t, err)
	assert.Equal(t, "antigo", plano.Consumos[0].Lote.LoteID)
	assert.Equal(t, "novo", plano.Consumos[1].Lote.LoteID)
}

func TestParseEstrategia(t *testing.T) {
	e, err := ParseEstrategia("")
	require.NoError(t, err)
	assert.Equal(t, FEFO, e)

	e, err = ParseEstrategia("fifo")
	require.NoError(t, err)
	assert.Equal(t, FIFO, e)

	_, err = ParseEstrategia("lifo")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Propriedades do alocador verificadas sobre entradas aleatórias.
func TestAlocarFEFO_Propriedades(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for iter := 0; iter < 500; iter++ {
		n := rng.Intn(8)
		lotes := make([]LoteDisponivel, n)
		for i := range lotes {
			lotes[i] = LoteDisponivel{
				LoteID:     string(rune('a' + i)),
				Disponivel: decimal.NewFromInt(int64(rng.Intn(20))),
			}
			if rng.Intn(4) != 0 {
				v := base.AddDate(0, 0, rng.Intn(60))
				lotes[i].DataValidade = &v
			}
		}
		solicitado := decimal.NewFromInt(int64(1 + rng.Intn(60)))
		total := TotalDisponivel(lotes)

		plano, err := AlocarFEFO(solicitado, lotes)
		require.NoError(t, err)

		consumido := somaConsumida(plano)
		if solicitado.LessThanOrEqual(total) {
			assert.True(t, consumido.Equal(solicitado), "soma consumida deve igualar o solicitado")
			assert.True(t, plano.Faltante.IsZero())
		} else {
			assert.True(t, consumido.Equal(total), "soma consumida deve igualar o disponível")
			assert.True(t, plano.Faltante.Equal(solicitado.Sub(total)))
		}

		semValidade := false
		var ultima *time.Time
		for _, c := range plano.Consumos {
			assert.True(t, c.Consumido.LessThanOrEqual(c.Lote.Disponivel), "consumo acima do disponível")
			assert.True(t, c.RestanteNoLote.Equal(c.Lote.Disponivel.Sub(c.Consumido)))
			if c.Lote.DataValidade == nil {
				semValidade = true
				continue
			}
			assert.False(t, semValidade, "lote datado consumido depois de lote sem validade")
			if ultima != nil {
				assert.False(t, c.Lote.DataValidade.Before(*ultima), "validade fora de ordem")
			}
			ultima = c.Lote.DataValidade
		}
		if semValidade {
			for _, l := range lotes {
				if l.DataValidade == nil || !l.Disponivel.IsPositive() {
					continue
				}
				consumidoDoLote := decimal.Zero
				for _, c := range plano.Consumos {
					if c.Lote.LoteID == l.LoteID {
						consumidoDoLote = c.Consumido
					}
				}
				assert.True(t, consumidoDoLote.Equal(l.Disponivel), "lote datado deve esgotar antes dos sem validade")
			}
		}

		denovo, err := AlocarFEFO(solicitado, lotes)
		require.NoError(t, err)
		assert.Equal(t, plano, denovo, "alocação deve ser determinística")
	}
}
