package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/usecase"
)

// ContratoHandler contratos com fornecedores e modalidades de repasse.
type ContratoHandler struct {
	contratos   *usecase.ContratoUseCase
	modalidades *usecase.ModalidadeUseCase
}

// NewContratoHandler constrói o handler.
func NewContratoHandler(contratos *usecase.ContratoUseCase, modalidades *usecase.ModalidadeUseCase) *ContratoHandler {
	return &ContratoHandler{contratos: contratos, modalidades: modalidades}
}

// Create godoc
// @Summary      Criar contrato com produtos
// @Tags         contratos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContratoRequest  true  "Contrato"
// @Success      201   {object}  dto.ContratoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/contratos [post]
func (h *ContratoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContratoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.contratos.Create(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter contrato
// @Tags         contratos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do contrato"
// @Success      200  {object}  dto.ContratoResponse
// @Router       /api/contratos/{id} [get]
func (h *ContratoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.contratos.GetByID(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar contratos
// @Tags         contratos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ContratoResponse
// @Router       /api/contratos [get]
func (h *ContratoHandler) List(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.contratos.List(c.UserContext(), GetTenantID(c), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateModalidade godoc
// @Summary      Criar modalidade
// @Tags         modalidades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ModalidadeRequest  true  "Modalidade"
// @Success      201   {object}  dto.ModalidadeResponse
// @Router       /api/modalidades [post]
func (h *ContratoHandler) CreateModalidade(c *fiber.Ctx) error {
	var in dto.ModalidadeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.modalidades.Create(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateModalidade godoc
// @Summary      Atualizar modalidade
// @Tags         modalidades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID da modalidade"
// @Param        body  body  dto.ModalidadeRequest  true  "Modalidade"
// @Success      200   {object}  dto.ModalidadeResponse
// @Router       /api/modalidades/{id} [put]
func (h *ContratoHandler) UpdateModalidade(c *fiber.Ctx) error {
	var in dto.ModalidadeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.modalidades.Update(c.UserContext(), GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListModalidades godoc
// @Summary      Listar modalidades
// @Tags         modalidades
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ModalidadeResponse
// @Router       /api/modalidades [get]
func (h *ContratoHandler) ListModalidades(c *fiber.Ctx) error {
	out, err := h.modalidades.List(c.UserContext(), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
