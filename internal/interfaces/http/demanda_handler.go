package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/usecase"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

// DemandaHandler ofícios de demanda das escolas.
type DemandaHandler struct {
	uc *usecase.DemandaUseCase
}

// NewDemandaHandler constrói o handler.
func NewDemandaHandler(uc *usecase.DemandaUseCase) *DemandaHandler {
	return &DemandaHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar demanda
// @Tags         demandas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDemandaRequest  true  "Demanda"
// @Success      201   {object}  dto.DemandaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/demandas [post]
func (h *DemandaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDemandaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !podeAcessarEscola(c, in.EscolaID) {
		return forbiddenEscola(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetTenantID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar demandas
// @Tags         demandas
// @Security     Bearer
// @Produce      json
// @Param        escola_id  query  string  false  "Filtra por escola"
// @Param        status     query  string  false  "pendente, enviado_semead, atendido, nao_atendido"
// @Param        limit      query  int     false  "Limite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {array}  dto.DemandaResponse
// @Router       /api/demandas [get]
func (h *DemandaHandler) List(c *fiber.Ctx) error {
	p := page(c)
	filtro := repository.DemandaFiltro{
		EscolaID: c.Query("escola_id"),
		Status:   c.Query("status"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	}
	if GetRole(c) == entity.RoleEscola {
		filtro.EscolaID = GetEscolaID(c)
	}
	out, err := h.uc.List(c.UserContext(), GetTenantID(c), filtro)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter demanda
// @Tags         demandas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da demanda"
// @Success      200  {object}  dto.DemandaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/demandas/{id} [get]
func (h *DemandaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if !podeAcessarEscola(c, out.EscolaID) {
		return forbiddenEscola(c)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Alterar status da demanda
// @Tags         demandas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID da demanda"
// @Param        body  body  dto.UpdateDemandaStatusRequest  true  "Novo status"
// @Success      200   {object}  dto.DemandaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/demandas/{id}/status [put]
func (h *DemandaHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateDemandaStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir demanda
// @Tags         demandas
// @Security     Bearer
// @Param        id   path  string  true  "ID da demanda"
// @Success      204
// @Router       /api/demandas/{id} [delete]
func (h *DemandaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetTenantID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
