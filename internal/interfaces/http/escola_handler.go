package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/usecase"
)

// EscolaHandler cadastro de escolas.
type EscolaHandler struct {
	uc *usecase.EscolaUseCase
}

// NewEscolaHandler constrói o handler.
func NewEscolaHandler(uc *usecase.EscolaUseCase) *EscolaHandler {
	return &EscolaHandler{uc: uc}
}

// Create godoc
// @Summary      Criar escola
// @Tags         escolas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EscolaRequest  true  "Dados da escola"
// @Success      201   {object}  dto.EscolaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/escolas [post]
func (h *EscolaHandler) Create(c *fiber.Ctx) error {
	var in dto.EscolaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter escola
// @Tags         escolas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da escola"
// @Success      200  {object}  dto.EscolaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/escolas/{id} [get]
func (h *EscolaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !podeAcessarEscola(c, id) {
		return forbiddenEscola(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetTenantID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar escola
// @Tags         escolas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID da escola"
// @Param        body  body  dto.EscolaRequest  true  "Dados da escola"
// @Success      200   {object}  dto.EscolaResponse
// @Router       /api/escolas/{id} [put]
func (h *EscolaHandler) Update(c *fiber.Ctx) error {
	var in dto.EscolaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar escolas
// @Tags         escolas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.EscolaListResponse
// @Router       /api/escolas [get]
func (h *EscolaHandler) List(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.uc.List(c.UserContext(), GetTenantID(c), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
