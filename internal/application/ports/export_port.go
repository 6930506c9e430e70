package ports

import (
	"context"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// RomaneioData dados do romaneio de uma rota: escolas na ordem e seus itens.
type RomaneioData struct {
	Tenant  *entity.Tenant
	Rota    *entity.RotaEntrega
	Escolas []RomaneioEscola
}

// RomaneioEscola escola do romaneio com os itens programados.
type RomaneioEscola struct {
	Escola *entity.EscolaEntrega
	Itens  []*entity.ItemEntrega
}

// RomaneioPDFGenerator gera o PDF do romaneio de entrega.
type RomaneioPDFGenerator interface {
	GenerateRomaneio(ctx context.Context, data RomaneioData) ([]byte, error)
}

// RelatorioFaturamentoData dados do relatório de um faturamento.
type RelatorioFaturamentoData struct {
	Tenant      *entity.Tenant
	Pedido      *entity.Pedido
	Faturamento *entity.Faturamento
	Contratos   map[string]*entity.Contrato
	Produtos    map[string]*entity.Produto
	Modalidades map[string]entity.Modalidade
}

// FaturamentoPDFGenerator gera o PDF do relatório de faturamento por modalidade.
type FaturamentoPDFGenerator interface {
	GenerateFaturamento(ctx context.Context, data RelatorioFaturamentoData) ([]byte, error)
}

// EstoqueCSVExporter exporta o saldo de estoque de uma escola em CSV.
type EstoqueCSVExporter interface {
	ExportEstoque(ctx context.Context, itens []*entity.ItemEstoqueEscola) ([]byte, error)
}
