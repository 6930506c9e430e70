package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

func newDemandaUC() (*DemandaUseCase, fakeDemandas) {
	repo := fakeDemandas{}
	escolas := fakeEscolas{"e1": {ID: "e1", TenantID: "t1", Nome: "EMEF Centro"}}
	uc := NewDemandaUseCase(repo, escolas)
	uc.now = hoje
	return uc, repo
}

func TestDemandaUseCase_CreateEDiasEmAberto(t *testing.T) {
	uc, _ := newDemandaUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, "t1", "u1", dto.CreateDemandaRequest{
		EscolaID: "e1", NumeroOficio: "12/2025", Objeto: "Reforma da cozinha", DataSolicitacao: "2025-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DemandaPendente, out.Status)
	assert.Equal(t, 9, out.DiasEmAberto)
	assert.Empty(t, out.DataResposta)

	_, err = uc.Create(ctx, "t1", "u1", dto.CreateDemandaRequest{EscolaID: "x", NumeroOficio: "1", Objeto: "o"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, "t1", "u1", dto.CreateDemandaRequest{EscolaID: "e1", Objeto: "o"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDemandaUseCase_UpdateStatus(t *testing.T) {
	uc, repo := newDemandaUC()
	ctx := context.Background()
	out, err := uc.Create(ctx, "t1", "u1", dto.CreateDemandaRequest{
		EscolaID: "e1", NumeroOficio: "12/2025", Objeto: "Merenda", DataSolicitacao: "2025-03-01",
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, "t1", out.ID, dto.UpdateDemandaStatusRequest{Status: entity.DemandaAtendido})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "atendido sem data de resposta")

	_, err = uc.UpdateStatus(ctx, "t1", out.ID, dto.UpdateDemandaStatusRequest{Status: entity.DemandaAtendido, DataResposta: "2025-02-28"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "resposta anterior à solicitação")

	_, err = uc.UpdateStatus(ctx, "t1", out.ID, dto.UpdateDemandaStatusRequest{Status: "arquivado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	atendida, err := uc.UpdateStatus(ctx, "t1", out.ID, dto.UpdateDemandaStatusRequest{Status: entity.DemandaAtendido, DataResposta: "2025-03-05"})
	require.NoError(t, err)
	assert.Equal(t, 4, atendida.DiasEmAberto)
	assert.Equal(t, "2025-03-05", atendida.DataResposta)

	reaberta, err := uc.UpdateStatus(ctx, "t1", out.ID, dto.UpdateDemandaStatusRequest{Status: entity.DemandaEnviadoSemead})
	require.NoError(t, err)
	assert.Empty(t, reaberta.DataResposta)
	assert.Nil(t, repo[out.ID].DataResposta)
}

func TestDemandaUseCase_ListEDelete(t *testing.T) {
	uc, repo := newDemandaUC()
	ctx := context.Background()
	repo["d1"] = &entity.Demanda{ID: "d1", TenantID: "t1", EscolaID: "e1", Status: entity.DemandaPendente, DataSolicitacao: hoje()}
	repo["d2"] = &entity.Demanda{ID: "d2", TenantID: "t1", EscolaID: "e1", Status: entity.DemandaAtendido, DataSolicitacao: hoje().Add(-48 * time.Hour)}
	repo["d3"] = &entity.Demanda{ID: "d3", TenantID: "t2", EscolaID: "e9", Status: entity.DemandaPendente, DataSolicitacao: hoje()}

	list, err := uc.List(ctx, "t1", repository.DemandaFiltro{Status: entity.DemandaPendente})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "d1", list[0].ID)

	_, err = uc.List(ctx, "t1", repository.DemandaFiltro{Status: "?"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Delete(ctx, "t1", "d1"))
	assert.ErrorIs(t, uc.Delete(ctx, "t1", "d1"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "t1", "d3"), domain.ErrNotFound)
}
