// Package pdf gera os documentos impressos da secretaria com Maroto v2:
// o romaneio de entrega de uma rota e o relatório de faturamento por modalidade.
//
// Layout comum (A4 retrato):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABEÇALHO: Nome do tenant + título  │  Número + Data        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BLOCOS: uma seção por escola (romaneio) ou contrato         │
//	│  TABELA: Produto | Quantidade | ...                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: totais e assinaturas                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/ports"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

var (
	_ ports.RomaneioPDFGenerator    = (*MarotoPDFGenerator)(nil)
	_ ports.FaturamentoPDFGenerator = (*MarotoPDFGenerator)(nil)
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 64, Blue: 128}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoPDFGenerator implementa os geradores de romaneio e de faturamento.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{now: time.Now}
}

func (g *MarotoPDFGenerator) novo(titulo string, tenant *entity.Tenant) core.Maroto {
	autor := "Gestão Escolar"
	if tenant != nil && tenant.Nome != "" {
		autor = tenant.Nome
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		WithAuthor(autor, true).
		Build()
	return maroto.New(cfg)
}

// cabecalho: tenant e título à esquerda, identificação e data à direita.
func cabecalho(tenant *entity.Tenant, titulo, identificacao string, data time.Time) core.Row {
	nome := "Gestão Escolar"
	cnpj := ""
	if tenant != nil {
		nome = tenant.Nome
		if tenant.CNPJ != "" {
			cnpj = "CNPJ: " + tenant.CNPJ
		}
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nome, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(cnpj, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(titulo), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(identificacao, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6}),
			text.New("Emitido em "+data.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

type coluna struct {
	titulo  string
	largura int
	alinha  align.Type
}

// cabecalhoTabela: títulos em branco; larguras somam 12.
func cabecalhoTabela(cols ...coluna) core.Row {
	r := row.New(7).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	for _, c := range cols {
		r.Add(col.New(c.largura).Add(text.New(c.titulo, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.alinha, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return r
}

func linhaTabela(cols []coluna, valores ...string) core.Row {
	r := row.New(6)
	for i, c := range cols {
		v := ""
		if i < len(valores) {
			v = valores[i]
		}
		r.Add(col.New(c.largura).Add(text.New(v, props.Text{Size: 8, Align: c.alinha, Top: 1, Left: 1, Right: 1})))
	}
	return r
}

func secao(titulo, subtitulo string) core.Row {
	return row.New(11).Add(col.New(12).Add(
		text.New(titulo, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
		text.New(subtitulo, props.Text{Size: 8, Color: colorGray, Top: 7}),
	))
}

// formatMoney formata no padrão brasileiro: 1234.5 → "R$ 1.234,50".
func formatMoney(v decimal.Decimal) string {
	return "R$ " + formatDecimal(v, 2)
}

// formatQuantidade usa até 3 casas e remove zeros à direita: 10.500 → "10,5".
func formatQuantidade(v decimal.Decimal) string {
	s := formatDecimal(v, 3)
	if strings.Contains(s, ",") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ",")
	}
	return s
}

func formatPercentual(v decimal.Decimal) string {
	return formatDecimal(v, 2) + "%"
}

func formatDecimal(v decimal.Decimal, casas int32) string {
	s := v.StringFixed(casas)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	inteiro, frac, _ := strings.Cut(s, ".")
	n := len(inteiro)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range []byte(inteiro) {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(c)
	}
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func gerar(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}
