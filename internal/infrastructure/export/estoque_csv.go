// Package export gera planilhas a partir das consultas de estoque.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/ports"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

var _ ports.EstoqueCSVExporter = (*GotaCSVExporter)(nil)

// GotaCSVExporter monta o saldo como DataFrame e serializa em CSV.
type GotaCSVExporter struct{}

func NewGotaCSVExporter() *GotaCSVExporter { return &GotaCSVExporter{} }

// ExportEstoque uma linha por produto, ordenada pelo nome.
// Colunas: produto_id, produto, categoria, unidade, quantidade, proxima_validade, lotes.
func (e *GotaCSVExporter) ExportEstoque(_ context.Context, itens []*entity.ItemEstoqueEscola) ([]byte, error) {
	n := len(itens)
	ids := make([]string, n)
	nomes := make([]string, n)
	categorias := make([]string, n)
	unidades := make([]string, n)
	quantidades := make([]string, n)
	validades := make([]string, n)
	lotes := make([]int, n)
	for i, it := range itens {
		ids[i] = it.ProdutoID
		nomes[i] = it.ProdutoNome
		categorias[i] = it.Categoria
		unidades[i] = it.Unidade
		quantidades[i] = it.Quantidade.String()
		if it.ProximaValidade != nil {
			validades[i] = it.ProximaValidade.Format("2006-01-02")
		}
		lotes[i] = it.TotalLotes
	}

	df := dataframe.New(
		series.New(ids, series.String, "produto_id"),
		series.New(nomes, series.String, "produto"),
		series.New(categorias, series.String, "categoria"),
		series.New(unidades, series.String, "unidade"),
		series.New(quantidades, series.String, "quantidade"),
		series.New(validades, series.String, "proxima_validade"),
		series.New(lotes, series.Int, "lotes"),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("export: montar planilha: %w", df.Err)
	}
	if n > 1 {
		df = df.Arrange(dataframe.Sort("produto"))
		if df.Err != nil {
			return nil, fmt.Errorf("export: ordenar planilha: %w", df.Err)
		}
	}

	var buf bytes.Buffer
	if err := df.WriteCSV(&buf); err != nil {
		return nil, fmt.Errorf("export: escrever csv (%d linhas): %w", n, err)
	}
	return buf.Bytes(), nil
}
