package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/ports"
)

var colunasRomaneio = []coluna{
	{"Produto", 5, align.Left},
	{"Unid.", 1, align.Center},
	{"Programado", 2, align.Right},
	{"Entregue", 2, align.Right},
	{"Conferido", 2, align.Center},
}

// GenerateRomaneio uma seção por escola na ordem da rota, com os itens a entregar e
// campo de assinatura do recebedor. O QR leva o ID da rota para o app de entregas.
func (g *MarotoPDFGenerator) GenerateRomaneio(_ context.Context, data ports.RomaneioData) ([]byte, error) {
	if data.Rota == nil {
		return nil, fmt.Errorf("pdf: romaneio sem rota")
	}
	m := g.novo("Romaneio de Entrega", data.Tenant)

	m.AddRows(cabecalho(data.Tenant, "Romaneio de entrega", data.Rota.Nome, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(30).Add(
		col.New(9).Add(
			text.New(nonEmpty(data.Rota.Descricao, "Rota "+data.Rota.Nome), props.Text{Size: 9, Top: 3}),
			text.New(fmt.Sprintf("%d escola(s) nesta rota", len(data.Escolas)), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
		col.New(3).Add(code.NewQr(data.Rota.ID, props.Rect{Percent: 90, Center: true})),
	))

	for i, e := range data.Escolas {
		if e.Escola == nil {
			continue
		}
		m.AddRows(secao(
			fmt.Sprintf("%d. %s", i+1, e.Escola.EscolaNome),
			nonEmpty(e.Escola.Endereco, "endereço não informado"),
		))
		m.AddRows(cabecalhoTabela(colunasRomaneio...))
		if len(e.Itens) == 0 {
			m.AddRows(linhaTabela(colunasRomaneio, "Nenhum item pendente"))
		}
		for _, it := range e.Itens {
			m.AddRows(linhaTabela(colunasRomaneio,
				it.ProdutoNome,
				it.Unidade,
				formatQuantidade(it.QuantidadeProgramada),
				formatQuantidade(it.QuantidadeEntregue),
				"[   ]",
			))
		}
		m.AddRows(row.New(12).Add(
			col.New(6).Add(text.New("Recebido por: ______________________________", props.Text{Size: 8, Top: 6})),
			col.New(6).Add(text.New("Data: ____/____/________", props.Text{Size: 8, Top: 6, Align: align.Right})),
		))
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	return gerar(m)
}
