package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/entregas"
)

// EntregaHandler rotas de entrega, itens por escola e confirmação.
type EntregaHandler struct {
	uc *entregas.UseCase
}

// NewEntregaHandler constrói o handler.
func NewEntregaHandler(uc *entregas.UseCase) *EntregaHandler {
	return &EntregaHandler{uc: uc}
}

// ListarRotas godoc
// @Summary      Listar rotas de entrega
// @Tags         entregas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RotaResponse
// @Router       /api/entregas/rotas [get]
func (h *EntregaHandler) ListarRotas(c *fiber.Ctx) error {
	out, err := h.uc.ListarRotas(c.UserContext(), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CriarRota godoc
// @Summary      Criar rota
// @Tags         entregas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RotaRequest  true  "Dados da rota"
// @Success      201   {object}  dto.RotaResponse
// @Router       /api/entregas/rotas [post]
func (h *EntregaHandler) CriarRota(c *fiber.Ctx) error {
	var in dto.RotaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CriarRota(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AtualizarRota godoc
// @Summary      Atualizar rota
// @Tags         entregas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID da rota"
// @Param        body  body  dto.RotaRequest  true  "Dados da rota"
// @Success      200   {object}  dto.RotaResponse
// @Router       /api/entregas/rotas/{id} [put]
func (h *EntregaHandler) AtualizarRota(c *fiber.Ctx) error {
	var in dto.RotaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AtualizarRota(c.UserContext(), GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// EscolasDaRota godoc
// @Summary      Escolas da rota com progresso das entregas
// @Tags         entregas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da rota"
// @Success      200  {array}  dto.EscolaEntregaResponse
// @Router       /api/entregas/rotas/{id}/escolas [get]
func (h *EntregaHandler) EscolasDaRota(c *fiber.Ctx) error {
	out, err := h.uc.EscolasDaRota(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DefinirEscolas godoc
// @Summary      Definir escolas da rota (na ordem de visita)
// @Tags         entregas
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                     true  "ID da rota"
// @Param        body  body  dto.SetEscolasRotaRequest  true  "Escolas"
// @Success      204
// @Router       /api/entregas/rotas/{id}/escolas [put]
func (h *EntregaHandler) DefinirEscolas(c *fiber.Ctx) error {
	var in dto.SetEscolasRotaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.DefinirEscolas(c.UserContext(), GetTenantID(c), c.Params("id"), in.EscolaIDs); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Romaneio godoc
// @Summary      Romaneio da rota em PDF
// @Tags         entregas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da rota"
// @Success      200
// @Router       /api/entregas/rotas/{id}/romaneio [get]
func (h *EntregaHandler) Romaneio(c *fiber.Ctx) error {
	data, filename, err := h.uc.RomaneioPDF(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", filename, data)
}

// ItensDaEscola godoc
// @Summary      Itens programados para a escola
// @Tags         entregas
// @Security     Bearer
// @Produce      json
// @Param        escolaId  path   string  true   "ID da escola"
// @Param        rota_id   query  string  false  "Filtra pela rota"
// @Success      200       {array}  dto.ItemEntregaResponse
// @Router       /api/entregas/escolas/{escolaId}/itens [get]
func (h *EntregaHandler) ItensDaEscola(c *fiber.Ctx) error {
	escolaID := c.Params("escolaId")
	if !podeAcessarEscola(c, escolaID) {
		return forbiddenEscola(c)
	}
	out, err := h.uc.ItensDaEscola(c.UserContext(), GetTenantID(c), escolaID, c.Query("rota_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ProgramarItens godoc
// @Summary      Programar itens de entrega para uma escola
// @Tags         entregas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProgramarItensRequest  true  "Itens"
// @Success      201   {array}  dto.ItemEntregaResponse
// @Router       /api/entregas/itens [post]
func (h *EntregaHandler) ProgramarItens(c *fiber.Ctx) error {
	var in dto.ProgramarItensRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ProgramarItens(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ConfirmarEntrega godoc
// @Summary      Confirmar entrega de um item
// @Tags         entregas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID do item"
// @Param        body  body  dto.ConfirmarEntregaRequest  true  "Quantidade e recebedor"
// @Success      200   {object}  dto.ItemEntregaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/entregas/itens/{id}/confirmar [post]
func (h *EntregaHandler) ConfirmarEntrega(c *fiber.Ctx) error {
	var in dto.ConfirmarEntregaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ConfirmarEntrega(c.UserContext(), entregas.ConfirmacaoFromRequest(GetTenantID(c), GetUserID(c), c.Params("id"), in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CancelarEntrega godoc
// @Summary      Desfazer confirmação de entrega
// @Tags         entregas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do item"
// @Success      200  {object}  dto.ItemEntregaResponse
// @Router       /api/entregas/itens/{id}/cancelar [post]
func (h *EntregaHandler) CancelarEntrega(c *fiber.Ctx) error {
	out, err := h.uc.CancelarEntrega(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
