package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/pkg/jwt"
)

type fakeUsers struct {
	byID map[string]*entity.User
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.byID[id], nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, tenantID, email string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.TenantID == tenantID && u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.byID {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeTenants struct {
	bySlug map[string]*entity.Tenant
}

func (f *fakeTenants) Create(_ context.Context, t *entity.Tenant) error {
	f.bySlug[t.Slug] = t
	return nil
}

func (f *fakeTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	for _, t := range f.bySlug {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTenants) GetBySlug(_ context.Context, slug string) (*entity.Tenant, error) {
	return f.bySlug[slug], nil
}

func (f *fakeTenants) Update(context.Context, *entity.Tenant) error { return nil }

func (f *fakeTenants) List(context.Context, int, int) ([]*entity.Tenant, error) { return nil, nil }

func (f *fakeTenants) HasActiveModule(context.Context, string, string) (bool, error) {
	return true, nil
}

func (f *fakeTenants) SetModule(context.Context, *entity.TenantModule) error { return nil }

type fakeEscolas map[string]*entity.Escola

func (f fakeEscolas) Create(context.Context, *entity.Escola) error { return nil }

func (f fakeEscolas) GetByID(_ context.Context, tenantID, id string) (*entity.Escola, error) {
	e := f[id]
	if e == nil || e.TenantID != tenantID {
		return nil, nil
	}
	return e, nil
}

func (f fakeEscolas) Update(context.Context, *entity.Escola) error { return nil }

func (f fakeEscolas) ListByTenant(context.Context, string, int, int) ([]*entity.Escola, error) {
	return nil, nil
}

const secret = "segredo-de-teste"

func newAuth(t *testing.T) (*AuthUseCase, *fakeTenants) {
	t.Helper()
	tenants := &fakeTenants{bySlug: map[string]*entity.Tenant{
		"belem": {
			ID: "t1", Nome: "SEMEC Belém", Slug: "belem", Status: entity.TenantStatusActive,
			Branding: entity.Branding{CorPrimaria: "#004080", LogoURL: "https://cdn/logo.png"},
		},
		"suspenso": {ID: "t2", Slug: "suspenso", Status: entity.TenantStatusSuspended},
	}}
	escolas := fakeEscolas{"e1": {ID: "e1", TenantID: "t1", Nome: "EMEF Centro"}}
	uc := NewAuthUseCase(&fakeUsers{byID: map[string]*entity.User{}}, tenants, escolas, JWTConfig{
		Secret: secret, ExpMinutes: 60, Issuer: "gestaoescolar",
	})
	uc.hashCost = bcrypt.MinCost
	return uc, tenants
}

func TestRegisterUser(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, "t1", dto.RegisterRequest{Email: " Diretora@Escola.br ", Password: "12345678", Role: entity.RoleEscola, EscolaID: "e1"})
	require.NoError(t, err)
	assert.Equal(t, "diretora@escola.br", u.Email)
	assert.Equal(t, "e1", u.EscolaID)
	assert.Equal(t, "diretora@escola.br", u.Nome)

	_, err = uc.RegisterUser(ctx, "t1", dto.RegisterRequest{Email: "diretora@escola.br", Password: "abcdefgh"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, "t1", dto.RegisterRequest{Email: "x@y.z", Password: "12345678", Role: entity.RoleEscola})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, "t1", dto.RegisterRequest{Email: "x@y.z", Password: "12345678", Role: entity.RoleEscola, EscolaID: "outra"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RegisterUser(ctx, "t1", dto.RegisterRequest{Email: "x@y.z", Password: "12345678", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, "t1", dto.RegisterRequest{Email: "x@y.z", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, "t1", dto.RegisterRequest{Email: "motorista@semec.br", Password: "segredo1", Role: entity.RoleEntregador})
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Tenant: "Belem", Email: "MOTORISTA@semec.br", Password: "segredo1"})
	require.NoError(t, err)
	assert.Equal(t, "SEMEC Belém", resp.Branding.TenantNome)
	assert.Equal(t, "#004080", resp.Branding.CorPrimaria)

	id, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "t1", id.TenantID)
	assert.Equal(t, entity.RoleEntregador, id.Role)
	assert.Equal(t, resp.User.ID, id.UserID)
}

func TestLogin_Falhas(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, "t1", dto.RegisterRequest{Email: "a@b.c", Password: "segredo1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Tenant: "belem", Email: "a@b.c", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Tenant: "belem", Email: "ninguem@b.c", Password: "segredo1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Tenant: "inexistente", Email: "a@b.c", Password: "segredo1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Tenant: "suspenso", Email: "a@b.c", Password: "segredo1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
