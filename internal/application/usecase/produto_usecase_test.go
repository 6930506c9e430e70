package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

func TestProdutoUseCase_ListBuscaSemAcento(t *testing.T) {
	repo := fakeProdutos{
		"1": {ID: "1", TenantID: "t1", Nome: "Feijão Carioca", Categoria: "Grãos"},
		"2": {ID: "2", TenantID: "t1", Nome: "Arroz Tipo 1", Categoria: "Grãos"},
		"3": {ID: "3", TenantID: "t1", Nome: "Leite em Pó", Categoria: "Laticínios"},
		"4": {ID: "4", TenantID: "t2", Nome: "Feijão Preto", Categoria: "Grãos"},
	}
	uc := NewProdutoUseCase(repo)
	ctx := context.Background()

	out, err := uc.List(ctx, "t1", "feijao", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Feijão Carioca", out.Items[0].Nome)

	out, err = uc.List(ctx, "t1", "graos", 1, 1)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Feijão Carioca", out.Items[0].Nome)

	out, err = uc.List(ctx, "t1", "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
}

func TestModalidadeUseCase(t *testing.T) {
	repo := fakeModalidades{}
	uc := NewModalidadeUseCase(repo)
	ctx := context.Background()

	m, err := uc.Create(ctx, "t1", dto.ModalidadeRequest{Nome: "Creche", ValorRepasse: dec("1.07")})
	require.NoError(t, err)
	assert.True(t, m.Ativo)

	_, err = uc.Create(ctx, "t1", dto.ModalidadeRequest{Nome: "EJA", ValorRepasse: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	inativa := false
	m, err = uc.Update(ctx, "t1", m.ID, dto.ModalidadeRequest{ValorRepasse: dec("1.10"), Ativo: &inativa})
	require.NoError(t, err)
	assert.Equal(t, "Creche", m.Nome)
	assert.False(t, m.Ativo)
	assert.True(t, m.ValorRepasse.Equal(dec("1.10")))

	_, err = uc.Update(ctx, "t2", m.ID, dto.ModalidadeRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserUseCase_OutroTenantNaoEncontrado(t *testing.T) {
	uc := NewUserUseCase(fakeUsuarios{"u1": {ID: "u1", TenantID: "t1", Email: "a@b.c"}})
	_, err := uc.GetByID(context.Background(), "t2", "u1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	u, err := uc.GetByID(context.Background(), "t1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", u.Email)
}

type fakeUsuarios map[string]*entity.User

func (f fakeUsuarios) Create(_ context.Context, u *entity.User) error {
	f[u.ID] = u
	return nil
}

func (f fakeUsuarios) GetByID(_ context.Context, id string) (*entity.User, error) { return f[id], nil }

func (f fakeUsuarios) GetByEmail(context.Context, string, string) (*entity.User, error) {
	return nil, nil
}

func (f fakeUsuarios) ListByTenant(context.Context, string, int, int) ([]*entity.User, error) {
	return nil, nil
}
