package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func hoje() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

func contratosDeTeste() *fakeContratos {
	f := newFakeContratos()
	f.byID["c1"] = &entity.Contrato{
		ID: "c1", TenantID: "t1", Numero: "001/2025", Ativo: true,
		DataInicio: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DataFim:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Produtos: []entity.ContratoProduto{
			{ID: "cp-arroz", ContratoID: "c1", ProdutoID: "arroz", PrecoUnitario: dec("5.00")},
			{ID: "cp-leite", ContratoID: "c1", ProdutoID: "leite", PrecoUnitario: dec("4.10")},
		},
	}
	f.byID["c0"] = &entity.Contrato{
		ID: "c0", TenantID: "t1", Numero: "009/2024", Ativo: true,
		DataInicio: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DataFim:    time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Produtos:   []entity.ContratoProduto{{ID: "cp-velho", ContratoID: "c0", ProdutoID: "arroz", PrecoUnitario: dec("4.00")}},
	}
	return f
}

func newPedidoUC() (*PedidoUseCase, fakePedidos) {
	repo := fakePedidos{}
	uc := NewPedidoUseCase(repo, contratosDeTeste())
	uc.now = hoje
	return uc, repo
}

func TestPedidoUseCase_CreatePrecoDoContrato(t *testing.T) {
	uc, repo := newPedidoUC()

	out, err := uc.Create(context.Background(), "t1", "u1", dto.CreatePedidoRequest{
		Itens: []dto.PedidoItemInput{
			{ContratoProdutoID: "cp-arroz", Quantidade: dec("10")},
			{ContratoProdutoID: "cp-leite", Quantidade: dec("3")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoPendente, out.Status)
	assert.True(t, out.ValorTotal.Equal(dec("62.30")), out.ValorTotal.String())
	assert.Equal(t, "2025-03-10", out.DataPedido)
	assert.Contains(t, out.Numero, "PED-20250310-")
	require.Len(t, out.Itens, 2)
	assert.Equal(t, "c1", out.Itens[0].ContratoID)
	assert.True(t, out.Itens[1].ValorTotal.Equal(dec("12.30")))
	assert.Equal(t, "u1", repo[out.ID].CriadoPor)
}

func TestPedidoUseCase_CreateValidacoes(t *testing.T) {
	uc, _ := newPedidoUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, "t1", "u1", dto.CreatePedidoRequest{})
	assert.ErrorIs(t, err, domain.ErrPedidoSemItens)

	_, err = uc.Create(ctx, "t1", "u1", dto.CreatePedidoRequest{Itens: []dto.PedidoItemInput{{ContratoProdutoID: "cp-arroz", Quantidade: decimal.Zero}}})
	assert.ErrorIs(t, err, domain.ErrQuantidadeInvalida)

	_, err = uc.Create(ctx, "t1", "u1", dto.CreatePedidoRequest{Itens: []dto.PedidoItemInput{{ContratoProdutoID: "nao-existe", Quantidade: dec("1")}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, "t1", "u1", dto.CreatePedidoRequest{Itens: []dto.PedidoItemInput{{ContratoProdutoID: "cp-velho", Quantidade: dec("1")}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "contrato fora da vigência")

	_, err = uc.Create(ctx, "t2", "u1", dto.CreatePedidoRequest{Itens: []dto.PedidoItemInput{{ContratoProdutoID: "cp-arroz", Quantidade: dec("1")}}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "produto de contrato de outro tenant")

	_, err = uc.Create(ctx, "t1", "u1", dto.CreatePedidoRequest{DataPedido: "10/03/2025", Itens: []dto.PedidoItemInput{{ContratoProdutoID: "cp-arroz", Quantidade: dec("1")}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPedidoUseCase_Transicoes(t *testing.T) {
	uc, repo := newPedidoUC()
	ctx := context.Background()
	out, err := uc.Create(ctx, "t1", "u1", dto.CreatePedidoRequest{Itens: []dto.PedidoItemInput{{ContratoProdutoID: "cp-arroz", Quantidade: dec("1")}}})
	require.NoError(t, err)

	aprovado, err := uc.Aprovar(ctx, "t1", out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoAprovado, aprovado.Status)

	_, err = uc.Aprovar(ctx, "t1", out.ID)
	assert.ErrorIs(t, err, domain.ErrStatusInvalido)

	repo[out.ID].Status = entity.PedidoFaturado
	_, err = uc.Cancelar(ctx, "t1", out.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	repo[out.ID].Status = entity.PedidoAprovado
	cancelado, err := uc.Cancelar(ctx, "t1", out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoCancelado, cancelado.Status)

	_, err = uc.Aprovar(ctx, "t1", "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, "t1", entity.PedidoCancelado, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestContratoUseCase_Create(t *testing.T) {
	produtos := fakeProdutos{
		"arroz":  {ID: "arroz", TenantID: "t1", Nome: "Arroz"},
		"feijao": {ID: "feijao", TenantID: "t1", Nome: "Feijão"},
	}
	uc := NewContratoUseCase(newFakeContratos(), produtos)
	uc.now = hoje
	ctx := context.Background()

	in := dto.CreateContratoRequest{
		Numero: "002/2025", Fornecedor: "Cooperativa", DataInicio: "2025-01-01", DataFim: "2025-06-30",
		Produtos: []dto.ContratoProdutoInput{
			{ProdutoID: "arroz", PrecoUnitario: dec("5"), QuantidadeContratada: dec("1000")},
			{ProdutoID: "feijao", PrecoUnitario: dec("8.3"), QuantidadeContratada: dec("500")},
		},
	}
	out, err := uc.Create(ctx, "t1", in)
	require.NoError(t, err)
	assert.True(t, out.Vigente)
	assert.Len(t, out.Produtos, 2)

	got, err := uc.GetByID(ctx, "t1", out.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-30", got.DataFim)

	invertido := in
	invertido.DataInicio, invertido.DataFim = "2025-07-01", "2025-06-30"
	_, err = uc.Create(ctx, "t1", invertido)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repetido := in
	repetido.Produtos = append([]dto.ContratoProdutoInput{}, in.Produtos[0], in.Produtos[0])
	_, err = uc.Create(ctx, "t1", repetido)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	semPreco := in
	semPreco.Produtos = []dto.ContratoProdutoInput{{ProdutoID: "arroz"}}
	_, err = uc.Create(ctx, "t1", semPreco)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	outroTenant := in
	_, err = uc.Create(ctx, "t2", outroTenant)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
