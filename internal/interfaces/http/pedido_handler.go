package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/faturamento"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/usecase"
)

// PedidoHandler pedidos de compra e seu faturamento por modalidade.
type PedidoHandler struct {
	pedidos     *usecase.PedidoUseCase
	faturamento *faturamento.UseCase
}

// NewPedidoHandler constrói o handler.
func NewPedidoHandler(pedidos *usecase.PedidoUseCase, fat *faturamento.UseCase) *PedidoHandler {
	return &PedidoHandler{pedidos: pedidos, faturamento: fat}
}

// Create godoc
// @Summary      Criar pedido (preços vêm do contrato)
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePedidoRequest  true  "Pedido"
// @Success      201   {object}  dto.PedidoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *PedidoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.pedidos.Create(c.UserContext(), GetTenantID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter pedido
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Router       /api/pedidos/{id} [get]
func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.pedidos.GetByID(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendente, aprovado, faturado, cancelado"
// @Success      200     {array}  dto.PedidoResponse
// @Router       /api/pedidos [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.pedidos.List(c.UserContext(), GetTenantID(c), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Aprovar godoc
// @Summary      Aprovar pedido
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/aprovar [post]
func (h *PedidoHandler) Aprovar(c *fiber.Ctx) error {
	out, err := h.pedidos.Aprovar(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancelar godoc
// @Summary      Cancelar pedido
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/cancelar [post]
func (h *PedidoHandler) Cancelar(c *fiber.Ctx) error {
	out, err := h.pedidos.Cancelar(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CalcularFaturamento godoc
// @Summary      Prévia da divisão do pedido por modalidade
// @Tags         faturamento
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.CalculoFaturamentoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/faturamento/calculo [get]
func (h *PedidoHandler) CalcularFaturamento(c *fiber.Ctx) error {
	out, err := h.faturamento.Calcular(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GerarFaturamento godoc
// @Summary      Gerar faturamento do pedido aprovado
// @Tags         faturamento
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      201  {object}  dto.FaturamentoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/faturamento [post]
func (h *PedidoHandler) GerarFaturamento(c *fiber.Ctx) error {
	out, err := h.faturamento.Gerar(c.UserContext(), GetTenantID(c), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarFaturamentos godoc
// @Summary      Faturamentos do pedido
// @Tags         faturamento
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {array}  dto.FaturamentoResponse
// @Router       /api/pedidos/{id}/faturamento [get]
func (h *PedidoHandler) ListarFaturamentos(c *fiber.Ctx) error {
	out, err := h.faturamento.ListarPorPedido(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BuscarFaturamento godoc
// @Summary      Obter faturamento
// @Tags         faturamento
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do faturamento"
// @Success      200  {object}  dto.FaturamentoResponse
// @Router       /api/faturamentos/{id} [get]
func (h *PedidoHandler) BuscarFaturamento(c *fiber.Ctx) error {
	out, err := h.faturamento.Buscar(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CancelarFaturamento godoc
// @Summary      Cancelar faturamento (pedido volta a aprovado)
// @Tags         faturamento
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do faturamento"
// @Success      200  {object}  dto.FaturamentoResponse
// @Router       /api/faturamentos/{id}/cancelar [post]
func (h *PedidoHandler) CancelarFaturamento(c *fiber.Ctx) error {
	out, err := h.faturamento.Cancelar(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RelatorioFaturamento godoc
// @Summary      Relatório do faturamento em PDF
// @Tags         faturamento
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID do faturamento"
// @Success      200
// @Router       /api/faturamentos/{id}/pdf [get]
func (h *PedidoHandler) RelatorioFaturamento(c *fiber.Ctx) error {
	data, filename, err := h.faturamento.RelatorioPDF(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", filename, data)
}
