package sincronizacao

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/entregas"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/estoque"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/infrastructure/cache"
)

type fakeEntregas struct {
	calls []entregas.ConfirmacaoInput
	err   error
}

func (f *fakeEntregas) ConfirmarEntrega(_ context.Context, in entregas.ConfirmacaoInput) (*dto.ItemEntregaResponse, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ItemEntregaResponse{ID: in.ItemID}, nil
}

type fakeEstoque struct {
	saidas   []estoque.SaidaInput
	entradas []estoque.EntradaInput
	saidaErr error
}

func (f *fakeEstoque) ConfirmarSaida(_ context.Context, in estoque.SaidaInput) (*dto.PlanoSaidaResponse, error) {
	f.saidas = append(f.saidas, in)
	if f.saidaErr != nil {
		return nil, f.saidaErr
	}
	return &dto.PlanoSaidaResponse{}, nil
}

func (f *fakeEstoque) RegistrarEntrada(_ context.Context, in estoque.EntradaInput) (*dto.LoteResponse, error) {
	f.entradas = append(f.entradas, in)
	return &dto.LoteResponse{}, nil
}

type fakeModules map[string]bool

func (f fakeModules) HasActiveModule(_ context.Context, _, module string) (bool, error) {
	return f[module], nil
}

func op(id, tipo string, payload any) dto.OperacaoPendente {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return dto.OperacaoPendente{ID: id, Tipo: tipo, Payload: raw}
}

func newUC(ent *fakeEntregas, est *fakeEstoque, mods fakeModules) *UseCase {
	return NewUseCase(ent, est, mods, cache.NewMemoryCache(), zerolog.Nop())
}

var todos = fakeModules{entity.ModuleEntregas: true, entity.ModuleEstoque: true}

func TestReplay_AplicaEmOrdemEMarcaDuplicadas(t *testing.T) {
	ent, est := &fakeEntregas{}, &fakeEstoque{}
	uc := newUC(ent, est, todos)
	ator := Ator{TenantID: "t1", UsuarioID: "u1", Role: entity.RoleAdmin}
	ops := []dto.OperacaoPendente{
		op("op-1", dto.OpConfirmarEntrega, map[string]any{"item_id": "i1", "quantidade_entregue": "5", "nome_recebedor": "Ana"}),
		op("op-2", dto.OpSaidaEstoque, map[string]any{"escola_id": "e1", "produto_id": "p1", "quantidade": 3}),
		op("op-3", dto.OpEntradaEstoque, map[string]any{"escola_id": "e1", "produto_id": "p1", "quantidade": "10", "data_validade": "2026-01-01"}),
	}

	resp := uc.Replay(context.Background(), ator, ops)
	require.Len(t, resp.Resultados, 3)
	for i, r := range resp.Resultados {
		assert.Equal(t, ops[i].ID, r.ID)
		assert.Equal(t, dto.SyncOK, r.Status, r.Mensagem)
	}
	assert.Equal(t, 3, resp.Aplicadas)
	require.Len(t, ent.calls, 1)
	assert.Equal(t, "i1", ent.calls[0].ItemID)
	assert.Equal(t, "Ana", ent.calls[0].NomeRecebedor)
	require.Len(t, est.saidas, 1)
	assert.Equal(t, "3", est.saidas[0].Quantidade.String())
	require.Len(t, est.entradas, 1)
	require.NotNil(t, est.entradas[0].DataValidade)

	again := uc.Replay(context.Background(), ator, ops)
	for _, r := range again.Resultados {
		assert.Equal(t, dto.SyncDuplicada, r.Status)
	}
	assert.Equal(t, 0, again.Aplicadas)
	assert.Len(t, ent.calls, 1, "operação duplicada não é reexecutada")
	assert.Len(t, est.saidas, 1)
}

func TestReplay_FalhaNaoInterrompeEPodeSerRepetida(t *testing.T) {
	ent := &fakeEntregas{}
	est := &fakeEstoque{saidaErr: domain.ErrInsufficientStock}
	uc := newUC(ent, est, todos)
	ator := Ator{TenantID: "t1", UsuarioID: "u1", Role: entity.RoleGestor}
	ops := []dto.OperacaoPendente{
		op("a", dto.OpSaidaEstoque, map[string]any{"escola_id": "e1", "produto_id": "p1", "quantidade": 3}),
		op("b", dto.OpConfirmarEntrega, map[string]any{"item_id": "i1", "quantidade_entregue": 1, "nome_recebedor": "Ana"}),
		{ID: "c", Tipo: "apagar_tudo", Payload: json.RawMessage(`{}`)},
		{ID: "", Tipo: dto.OpSaidaEstoque},
		{ID: "d", Tipo: dto.OpSaidaEstoque, Payload: json.RawMessage(`{quebrado`)},
	}

	resp := uc.Replay(context.Background(), ator, ops)
	assert.Equal(t, dto.SyncErro, resp.Resultados[0].Status)
	assert.Equal(t, domain.CodeInsufficientStock, resp.Resultados[0].Codigo)
	assert.Equal(t, dto.SyncOK, resp.Resultados[1].Status)
	assert.Equal(t, domain.CodeValidation, resp.Resultados[2].Codigo)
	assert.Equal(t, domain.CodeValidation, resp.Resultados[3].Codigo)
	assert.Equal(t, domain.CodeValidation, resp.Resultados[4].Codigo)
	assert.Equal(t, 1, resp.Aplicadas)
	assert.Equal(t, 4, resp.Falhas)

	est.saidaErr = nil
	resp = uc.Replay(context.Background(), ator, ops[:1])
	assert.Equal(t, dto.SyncOK, resp.Resultados[0].Status, "operação que falhou pode ser reenviada")
}

func TestReplay_Autorizacao(t *testing.T) {
	ent, est := &fakeEntregas{}, &fakeEstoque{}
	ctx := context.Background()

	escola := Ator{TenantID: "t1", UsuarioID: "u2", Role: entity.RoleEscola, EscolaID: "e1"}
	resp := newUC(ent, est, todos).Replay(ctx, escola, []dto.OperacaoPendente{
		op("x1", dto.OpSaidaEstoque, map[string]any{"escola_id": "e2", "produto_id": "p1", "quantidade": 1}),
		op("x2", dto.OpConfirmarEntrega, map[string]any{"item_id": "i1", "quantidade_entregue": 1, "nome_recebedor": "Ana"}),
		op("x3", dto.OpSaidaEstoque, map[string]any{"escola_id": "e1", "produto_id": "p1", "quantidade": 1}),
	})
	assert.Equal(t, domain.CodeForbidden, resp.Resultados[0].Codigo, "outra escola")
	assert.Equal(t, domain.CodeForbidden, resp.Resultados[1].Codigo, "escola não confirma entrega")
	assert.Equal(t, dto.SyncOK, resp.Resultados[2].Status)

	semEstoque := fakeModules{entity.ModuleEntregas: true}
	resp = newUC(ent, est, semEstoque).Replay(ctx, escola, []dto.OperacaoPendente{
		op("y1", dto.OpSaidaEstoque, map[string]any{"escola_id": "e1", "produto_id": "p1", "quantidade": 1}),
	})
	assert.Equal(t, domain.CodeForbidden, resp.Resultados[0].Codigo)
}
