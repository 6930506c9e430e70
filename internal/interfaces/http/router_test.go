package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/usecase"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	apphttp "github.com/ewenunessn/gestaoescolar-sub007/internal/interfaces/http"
)

type fakeTenantRepo struct {
	tenant  *entity.Tenant
	modules map[string]bool
}

func (f *fakeTenantRepo) Create(context.Context, *entity.Tenant) error { return nil }
func (f *fakeTenantRepo) Update(context.Context, *entity.Tenant) error { return nil }
func (f *fakeTenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	if id == f.tenant.ID {
		return f.tenant, nil
	}
	return nil, nil
}
func (f *fakeTenantRepo) GetBySlug(_ context.Context, slug string) (*entity.Tenant, error) {
	if slug == f.tenant.Slug {
		return f.tenant, nil
	}
	return nil, nil
}
func (f *fakeTenantRepo) List(context.Context, int, int) ([]*entity.Tenant, error) {
	return []*entity.Tenant{f.tenant}, nil
}
func (f *fakeTenantRepo) HasActiveModule(_ context.Context, _, module string) (bool, error) {
	return f.modules[module], nil
}
func (f *fakeTenantRepo) SetModule(context.Context, *entity.TenantModule) error { return nil }

func newRouterApp(t *testing.T) *fiber.App {
	t.Helper()
	repo := &fakeTenantRepo{
		tenant: &entity.Tenant{
			ID: testTenantID, Nome: "Secretaria Municipal", Slug: "semed", Status: entity.TenantStatusActive,
			Branding: entity.Branding{CorPrimaria: "#004080"},
		},
		modules: map[string]bool{entity.ModuleEntregas: true},
	}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		TenantUC:      usecase.NewTenantUseCase(repo),
		ModuleService: usecase.NewModuleService(repo),
		RateLimiter:   apphttp.NewRateLimiter(100, 100),
		Logger:        zerolog.Nop(),
		JWTSecret:     testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, auth, body string) (*http.Response, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(raw)
}

func TestRouter_BrandingPublico(t *testing.T) {
	app := newRouterApp(t)

	resp, body := call(t, app, http.MethodGet, "/api/tenants/branding/semed", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var out dto.BrandingResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "Secretaria Municipal", out.TenantNome)
	assert.Equal(t, "#004080", out.CorPrimaria)

	resp, _ = call(t, app, http.MethodGet, "/api/tenants/branding/outro", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_RotasProtegidasExigemToken(t *testing.T) {
	app := newRouterApp(t)

	resp, _ := call(t, app, http.MethodGet, "/api/tenants/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := call(t, app, http.MethodGet, "/api/tenants/me", tokenForRole(t, "gestor"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, `"slug":"semed"`)
}

func TestRouter_LoginCorpoInvalido(t *testing.T) {
	app := newRouterApp(t)
	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", `{"email":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "VALIDATION")
}

func TestRouter_PerfilEModulo(t *testing.T) {
	app := newRouterApp(t)

	// apenas admin cria tenants
	resp, _ := call(t, app, http.MethodPost, "/api/tenants", tokenForRole(t, "gestor"), `{"nome":"x","slug":"x"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// módulo de estoque não contratado
	resp, body := call(t, app, http.MethodGet, "/api/escolas/"+testEscolaID+"/estoque", tokenForRole(t, "gestor"), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "MODULE_DISABLED")

	// entregador não acessa faturamento (módulo desativado vem antes do perfil)
	resp, _ = call(t, app, http.MethodGet, "/api/pedidos", tokenForRole(t, "entregador"), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
