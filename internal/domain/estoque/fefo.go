// Package estoque contém os serviços de domínio do estoque escolar.
//
// O alocador FEFO (First-Expired-First-Out) decide de quais lotes sai uma
// quantidade solicitada: primeiro os que vencem antes, depois os sem validade.
// A variante FIFO ordena pela data de entrada. Ambos são funções puras sobre
// dados já carregados; não há persistência nem estado.
package estoque

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
)

// Estrategia ordem de consumo dos lotes.
type Estrategia string

const (
	FEFO Estrategia = "fefo"
	FIFO Estrategia = "fifo"
)

// ParseEstrategia aceita "fefo", "fifo" ou vazio (FEFO).
func ParseEstrategia(s string) (Estrategia, error) {
	switch Estrategia(s) {
	case "", FEFO:
		return FEFO, nil
	case FIFO:
		return FIFO, nil
	}
	return "", fmt.Errorf("%w: estratégia %q", domain.ErrInvalidInput, s)
}

// LoteDisponivel visão mínima de um lote para alocação.
type LoteDisponivel struct {
	LoteID       string
	Codigo       string
	Disponivel   decimal.Decimal
	DataValidade *time.Time
	DataEntrada  time.Time // fabricação ou recebimento; usada no FIFO
}

// ConsumoLote quanto sai de um lote e quanto sobra nele.
type ConsumoLote struct {
	Lote           LoteDisponivel
	Consumido      decimal.Decimal
	RestanteNoLote decimal.Decimal
}

// PlanoSaida resultado da alocação.
type PlanoSaida struct {
	Estrategia Estrategia
	Solicitado decimal.Decimal
	Atendido   decimal.Decimal
	Faltante   decimal.Decimal
	Consumos   []ConsumoLote
}

// Completo informa se o plano atende toda a quantidade solicitada.
func (p PlanoSaida) Completo() bool {
	return p.Faltante.IsZero()
}

// AlocarFEFO aloca solicitado pelos lotes com validade mais próxima primeiro.
func AlocarFEFO(solicitado decimal.Decimal, lotes []LoteDisponivel) (PlanoSaida, error) {
	return Alocar(FEFO, solicitado, lotes)
}

// Alocar percorre os lotes na ordem da estratégia consumindo min(restante, disponível)
// de cada um até zerar o restante ou acabarem os lotes. O slice recebido não é alterado.
// Se o total disponível não basta, Faltante = solicitado - atendido e cabe ao chamador bloquear.
func Alocar(estrategia Estrategia, solicitado decimal.Decimal, lotes []LoteDisponivel) (PlanoSaida, error) {
	if !solicitado.GreaterThan(decimal.Zero) {
		return PlanoSaida{}, domain.ErrQuantidadeInvalida
	}

	ordenados := make([]LoteDisponivel, len(lotes))
	copy(ordenados, lotes)
	switch estrategia {
	case FEFO:
		sort.SliceStable(ordenados, func(i, j int) bool {
			return antesFEFO(ordenados[i], ordenados[j])
		})
	case FIFO:
		sort.SliceStable(ordenados, func(i, j int) bool {
			return ordenados[i].DataEntrada.Before(ordenados[j].DataEntrada)
		})
	default:
		return PlanoSaida{}, fmt.Errorf("%w: estratégia %q", domain.ErrInvalidInput, estrategia)
	}

	plano := PlanoSaida{
		Estrategia: estrategia,
		Solicitado: solicitado,
		Atendido:   decimal.Zero,
	}
	restante := solicitado
	for _, lote := range ordenados {
		if restante.IsZero() {
			break
		}
		disponivel := lote.Disponivel
		if !disponivel.GreaterThan(decimal.Zero) {
			continue
		}
		consumo := decimal.Min(restante, disponivel)
		plano.Consumos = append(plano.Consumos, ConsumoLote{
			Lote:           lote,
			Consumido:      consumo,
			RestanteNoLote: disponivel.Sub(consumo),
		})
		plano.Atendido = plano.Atendido.Add(consumo)
		restante = restante.Sub(consumo)
	}
	plano.Faltante = restante
	return plano, nil
}

// antesFEFO: validade crescente; sem validade depois de todos os datados.
func antesFEFO(a, b LoteDisponivel) bool {
	switch {
	case a.DataValidade == nil:
		return false
	case b.DataValidade == nil:
		return true
	default:
		return a.DataValidade.Before(*b.DataValidade)
	}
}

// TotalDisponivel soma o disponível (positivo) dos lotes.
func TotalDisponivel(lotes []LoteDisponivel) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lotes {
		if l.Disponivel.GreaterThan(decimal.Zero) {
			total = total.Add(l.Disponivel)
		}
	}
	return total
}
