package estoque

import (
	"sort"
	"time"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// Disponiveis converte lotes ativos e não vencidos em ref para a visão de alocação.
// Os lotes vencidos com saldo são devolvidos à parte para alerta.
func Disponiveis(lotes []*entity.LoteEstoque, ref time.Time) (aptos []LoteDisponivel, vencidos []*entity.LoteEstoque) {
	for _, l := range lotes {
		if l == nil || l.Status == entity.LoteStatusEsgotado {
			continue
		}
		if l.Vencido(ref) || l.Status == entity.LoteStatusVencido {
			if l.QuantidadeAtual.IsPositive() {
				vencidos = append(vencidos, l)
			}
			continue
		}
		aptos = append(aptos, ParaDisponivel(l))
	}
	return aptos, vencidos
}

// ParaDisponivel projeta um lote na visão usada pelo alocador.
func ParaDisponivel(l *entity.LoteEstoque) LoteDisponivel {
	entrada := l.CreatedAt
	if l.DataFabricacao != nil {
		entrada = *l.DataFabricacao
	}
	return LoteDisponivel{
		LoteID:       l.ID,
		Codigo:       l.Codigo,
		Disponivel:   l.QuantidadeAtual,
		DataValidade: l.DataValidade,
		DataEntrada:  entrada,
	}
}

// ProximaValidade menor validade entre lotes com saldo; nil se nenhum tiver validade.
func ProximaValidade(lotes []*entity.LoteEstoque) *time.Time {
	var menor *time.Time
	for _, l := range lotes {
		if l.DataValidade == nil || !l.QuantidadeAtual.IsPositive() {
			continue
		}
		if menor == nil || l.DataValidade.Before(*menor) {
			v := *l.DataValidade
			menor = &v
		}
	}
	return menor
}

// VenceAte informa se a validade cai até ref+dias (inclusive). Sem validade nunca alerta.
func VenceAte(validade *time.Time, ref time.Time, dias int) bool {
	if validade == nil {
		return false
	}
	limite := entity.Dia(ref).AddDate(0, 0, dias)
	return !entity.Dia(*validade).After(limite)
}

// OrdenarFEFO ordena os lotes (no próprio slice) na ordem de consumo FEFO.
func OrdenarFEFO(lotes []*entity.LoteEstoque) {
	sort.SliceStable(lotes, func(i, j int) bool {
		return antesFEFO(ParaDisponivel(lotes[i]), ParaDisponivel(lotes[j]))
	})
}
