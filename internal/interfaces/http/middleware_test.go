package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
)

type fakeModules map[string]bool

func (f fakeModules) HasActiveModule(_ context.Context, tenantID, module string) (bool, error) {
	if tenantID == "falha" {
		return false, errors.New("db fora")
	}
	return f[module], nil
}

func withTenant(tenantID, role, escolaID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalTenantID, tenantID)
		c.Locals(LocalRole, role)
		c.Locals(LocalEscolaID, escolaID)
		return c.Next()
	}
}

func ok(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

func status(t *testing.T, app *fiber.App, method, path string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRequireModule(t *testing.T) {
	mods := fakeModules{"estoque": true}
	app := fiber.New()
	app.Get("/estoque/:tenant", func(c *fiber.Ctx) error {
		c.Locals(LocalTenantID, c.Params("tenant"))
		return c.Next()
	}, RequireModule("estoque", mods, zerolog.Nop()), ok)
	app.Get("/entregas/:tenant", func(c *fiber.Ctx) error {
		c.Locals(LocalTenantID, c.Params("tenant"))
		return c.Next()
	}, RequireModule("entregas", mods, zerolog.Nop()), ok)
	app.Get("/anonimo", RequireModule("estoque", mods, zerolog.Nop()), ok)

	assert.Equal(t, http.StatusOK, status(t, app, http.MethodGet, "/estoque/t1"))
	assert.Equal(t, http.StatusForbidden, status(t, app, http.MethodGet, "/entregas/t1"))
	assert.Equal(t, http.StatusServiceUnavailable, status(t, app, http.MethodGet, "/estoque/falha"))
	assert.Equal(t, http.StatusUnauthorized, status(t, app, http.MethodGet, "/anonimo"))
}

func TestRateLimiter_PorTenant(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return base }

	app := fiber.New()
	app.Get("/:tenant", func(c *fiber.Ctx) error {
		c.Locals(LocalTenantID, c.Params("tenant"))
		return c.Next()
	}, rl.Handler(), ok)

	assert.Equal(t, http.StatusOK, status(t, app, http.MethodGet, "/a"))
	assert.Equal(t, http.StatusOK, status(t, app, http.MethodGet, "/a"))
	assert.Equal(t, http.StatusTooManyRequests, status(t, app, http.MethodGet, "/a"))
	// outro tenant tem balde próprio
	assert.Equal(t, http.StatusOK, status(t, app, http.MethodGet, "/b"))

	base = base.Add(time.Second)
	assert.Equal(t, http.StatusOK, status(t, app, http.MethodGet, "/a"))
}

func TestRateLimiter_SweepRemoveOciosos(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return base }
	rl.Allow("a")
	rl.Allow("b")

	base = base.Add(5 * time.Minute)
	rl.Allow("b")
	base = base.Add(6 * time.Minute)

	assert.Equal(t, 1, rl.Sweep())
	assert.Len(t, rl.buckets, 1)
}

func TestRateLimiter_Desativado(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, rl.Allow("x"))
	}
}

func TestWriteError_MapeiaCodigos(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrQuantidadeInvalida, http.StatusBadRequest, domain.CodeValidation},
		{fmt.Errorf("buscar: %w", domain.ErrNotFound), http.StatusNotFound, domain.CodeNotFound},
		{domain.ErrForbidden, http.StatusForbidden, domain.CodeForbidden},
		{domain.ErrUnauthorized, http.StatusUnauthorized, domain.CodeUnauthorized},
		{domain.ErrEntregaJaConfirmada, http.StatusConflict, domain.CodeConflict},
		{domain.ErrInsufficientStock, http.StatusConflict, domain.CodeInsufficientStock},
		{domain.ErrEmailAlreadyExists, http.StatusConflict, domain.CodeDuplicate},
		{errors.New("pgx: conn closed"), http.StatusInternalServerError, domain.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tc.err) })
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Contains(t, string(body), `"code":"`+tc.code+`"`)
			if tc.code == domain.CodeInternal {
				assert.NotContains(t, string(body), "pgx")
			}
		})
	}
}

func TestPodeAcessarEscola(t *testing.T) {
	app := fiber.New()
	guard := func(c *fiber.Ctx) error {
		if !podeAcessarEscola(c, c.Params("escolaId")) {
			return forbiddenEscola(c)
		}
		return c.SendStatus(fiber.StatusOK)
	}
	app.Get("/escola/:escolaId", withTenant("t1", "escola", "e1"), guard)
	app.Get("/gestor/:escolaId", withTenant("t1", "gestor", ""), guard)

	assert.Equal(t, http.StatusOK, status(t, app, http.MethodGet, "/escola/e1"))
	assert.Equal(t, http.StatusForbidden, status(t, app, http.MethodGet, "/escola/e2"))
	assert.Equal(t, http.StatusOK, status(t, app, http.MethodGet, "/gestor/e2"))
}
