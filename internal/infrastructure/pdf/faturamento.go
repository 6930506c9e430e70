package pdf

import (
	"context"
	"fmt"
	"sort"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/ports"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

var colunasFaturamento = []coluna{
	{"Produto", 4, align.Left},
	{"Modalidade", 3, align.Left},
	{"%", 1, align.Right},
	{"Qtd.", 1, align.Right},
	{"Valor", 3, align.Right},
}

// GenerateFaturamento uma seção por contrato com a divisão por modalidade e, no fim,
// o resumo por modalidade usado na prestação de contas.
func (g *MarotoPDFGenerator) GenerateFaturamento(_ context.Context, data ports.RelatorioFaturamentoData) ([]byte, error) {
	if data.Faturamento == nil {
		return nil, fmt.Errorf("pdf: relatório sem faturamento")
	}
	fat := data.Faturamento
	m := g.novo("Faturamento "+fat.Numero, data.Tenant)

	m.AddRows(cabecalho(data.Tenant, "Faturamento por modalidade", fat.Numero, fat.CreatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if data.Pedido != nil {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Pedido %s de %s   |   Status: %s",
				data.Pedido.Numero, data.Pedido.DataPedido.Format("02/01/2006"), fat.Status),
				props.Text{Size: 9, Top: 3}),
		)))
	}

	porContrato := map[string][]entity.FaturamentoItem{}
	var ordem []string
	for _, it := range fat.Itens {
		if _, ok := porContrato[it.ContratoID]; !ok {
			ordem = append(ordem, it.ContratoID)
		}
		porContrato[it.ContratoID] = append(porContrato[it.ContratoID], it)
	}

	totalPorModalidade := map[string]decimal.Decimal{}
	for _, contratoID := range ordem {
		titulo, sub := "Contrato "+contratoID, ""
		if c := data.Contratos[contratoID]; c != nil {
			titulo = "Contrato " + c.Numero
			sub = fmt.Sprintf("%s   |   vigência %s a %s", c.Fornecedor,
				c.DataInicio.Format("02/01/2006"), c.DataFim.Format("02/01/2006"))
		}
		m.AddRows(secao(titulo, sub))
		m.AddRows(cabecalhoTabela(colunasFaturamento...))
		subtotal := decimal.Zero
		for _, it := range porContrato[contratoID] {
			m.AddRows(linhaTabela(colunasFaturamento,
				g.nomeProduto(data, it.ProdutoID),
				g.nomeModalidade(data, it.ModalidadeID),
				formatPercentual(it.Percentual),
				formatQuantidade(it.Quantidade),
				formatMoney(it.ValorTotal),
			))
			subtotal = subtotal.Add(it.ValorTotal)
			totalPorModalidade[it.ModalidadeID] = totalPorModalidade[it.ModalidadeID].Add(it.ValorTotal)
		}
		m.AddRows(totalRow("Subtotal do contrato:", formatMoney(subtotal), false))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(secao("Resumo por modalidade", ""))
	ids := make([]string, 0, len(totalPorModalidade))
	for id := range totalPorModalidade {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return g.nomeModalidade(data, ids[i]) < g.nomeModalidade(data, ids[j]) })
	for _, id := range ids {
		nome := g.nomeModalidade(data, id)
		if mod, ok := data.Modalidades[id]; ok && mod.CodigoFinanceiro != "" {
			nome += " (" + mod.CodigoFinanceiro + ")"
		}
		m.AddRows(totalRow(nome+":", formatMoney(totalPorModalidade[id]), false))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow("TOTAL FATURADO:", formatMoney(fat.ValorTotal), true))

	return gerar(m)
}

func (g *MarotoPDFGenerator) nomeProduto(data ports.RelatorioFaturamentoData, id string) string {
	if p := data.Produtos[id]; p != nil {
		return p.Nome
	}
	return id
}

func (g *MarotoPDFGenerator) nomeModalidade(data ports.RelatorioFaturamentoData, id string) string {
	if m, ok := data.Modalidades[id]; ok {
		return m.Nome
	}
	return id
}

func totalRow(rotulo, valor string, destaque bool) core.Row {
	p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
	if destaque {
		p.Style = fontstyle.Bold
		p.Size = 10
		p.Color = colorPrimary
	}
	r := p
	r.Style = fontstyle.Bold
	return row.New(7).Add(
		col.New(6),
		col.New(3).Add(text.New(rotulo, r)),
		col.New(3).Add(text.New(valor, p)),
	)
}
