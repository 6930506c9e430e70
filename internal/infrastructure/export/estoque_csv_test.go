package export

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

func TestExportEstoque(t *testing.T) {
	validade := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	itens := []*entity.ItemEstoqueEscola{
		{ProdutoID: "p2", ProdutoNome: "Leite em pó", Categoria: "laticínios", Unidade: "kg", Quantidade: decimal.RequireFromString("12.5"), ProximaValidade: &validade, TotalLotes: 2},
		{ProdutoID: "p1", ProdutoNome: "Arroz", Categoria: "grãos", Unidade: "kg", Quantidade: decimal.NewFromInt(40), TotalLotes: 1},
	}

	out, err := NewGotaCSVExporter().ExportEstoque(context.Background(), itens)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"produto_id", "produto", "categoria", "unidade", "quantidade", "proxima_validade", "lotes"}, records[0])
	assert.Equal(t, []string{"p1", "Arroz", "grãos", "kg", "40", "", "1"}, records[1])
	assert.Equal(t, []string{"p2", "Leite em pó", "laticínios", "kg", "12.5", "2025-04-30", "2"}, records[2])
}
