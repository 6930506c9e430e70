package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
)

// moduleChecker contrato mínimo para verificar módulos; implementado por *usecase.ModuleService.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, tenantID, moduleName string) (bool, error)
}

// RequireModule bloqueia a rota quando o tenant do token não tem o módulo ativo.
// Usar depois do AuthMiddleware.
//
//   - 401 sem tenant_id no contexto.
//   - 403 módulo não contratado ou vencido.
//   - 503 falha ao consultar o banco.
func RequireModule(moduleName string, checker moduleChecker, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := GetTenantID(c)
		if tenantID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "tenant_id ausente no token",
			})
		}

		active, err := checker.HasActiveModule(c.UserContext(), tenantID, moduleName)
		if err != nil {
			log.Error().Err(err).Str("tenant_id", tenantID).Str("module", moduleName).Msg("verificar módulo")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "não foi possível verificar o módulo, tente mais tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "o módulo '" + moduleName + "' não está ativo para este tenant",
			})
		}

		return c.Next()
	}
}
