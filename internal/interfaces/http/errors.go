package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// localError guarda o erro interno para o RequestLogger.
const localError = "error"

// statusByCode status HTTP de cada código de erro de domínio.
var statusByCode = map[string]int{
	domain.CodeValidation:        fiber.StatusBadRequest,
	domain.CodeNotFound:          fiber.StatusNotFound,
	domain.CodeUnauthorized:      fiber.StatusUnauthorized,
	domain.CodeForbidden:         fiber.StatusForbidden,
	domain.CodeConflict:          fiber.StatusConflict,
	domain.CodeDuplicate:         fiber.StatusConflict,
	domain.CodeInsufficientStock: fiber.StatusConflict,
	domain.CodeInternal:          fiber.StatusInternalServerError,
}

// writeError traduz um erro de domínio para dto.ErrorResponse. Erros internos não expõem detalhes.
func writeError(c *fiber.Ctx, err error) error {
	code := domain.Code(err)
	status, ok := statusByCode[code]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	msg := err.Error()
	if code == domain.CodeInternal {
		msg = "erro interno"
		c.Locals(localError, err)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "INVALID_BODY", "corpo inválido")
}

// page lê limit/offset da query com os limites padrão.
func page(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

// podeAcessarEscola perfis de escola só operam a própria escola.
func podeAcessarEscola(c *fiber.Ctx, escolaID string) bool {
	return entity.PodeAcessarEscola(GetRole(c), GetEscolaID(c), escolaID)
}

func forbiddenEscola(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: domain.CodeForbidden, Message: "usuário sem acesso a esta escola"})
}
