package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/usecase"
)

// TenantHandler tenants, branding e módulos.
type TenantHandler struct {
	uc      *usecase.TenantUseCase
	modules *usecase.ModuleService
}

// NewTenantHandler constrói o handler.
func NewTenantHandler(uc *usecase.TenantUseCase, modules *usecase.ModuleService) *TenantHandler {
	return &TenantHandler{uc: uc, modules: modules}
}

// Branding godoc
// @Summary      Branding público do tenant (tela de login dos apps)
// @Tags         tenants
// @Produce      json
// @Param        slug  path  string  true  "Slug do tenant"
// @Success      200   {object}  dto.BrandingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tenants/branding/{slug} [get]
func (h *TenantHandler) Branding(c *fiber.Ctx) error {
	out, err := h.uc.Branding(c.UserContext(), c.Params("slug"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar tenant
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTenantRequest  true  "Dados do tenant"
// @Success      201   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar tenants
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TenantResponse
// @Router       /api/tenants [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.uc.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Current godoc
// @Summary      Tenant do usuário autenticado
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TenantResponse
// @Router       /api/tenants/me [get]
func (h *TenantHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateBranding godoc
// @Summary      Atualizar branding do próprio tenant
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateBrandingRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.TenantResponse
// @Router       /api/tenants/me/branding [put]
func (h *TenantHandler) UpdateBranding(c *fiber.Ctx) error {
	var in dto.UpdateBrandingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateBranding(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetModule godoc
// @Summary      Ativar ou desativar módulo de um tenant
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                 true  "ID do tenant"
// @Param        body  body  dto.SetModuleRequest   true  "Módulo"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tenants/{id}/modules [put]
func (h *TenantHandler) SetModule(c *fiber.Ctx) error {
	var in dto.SetModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.modules.SetModule(c.UserContext(), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
