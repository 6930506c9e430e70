package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/estoque"
)

// EstoqueHandler estoque escolar: saldo, lotes, entradas e saída inteligente.
// Todas as rotas recebem :escolaId; perfis de escola só acessam a própria.
type EstoqueHandler struct {
	uc *estoque.UseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(uc *estoque.UseCase) *EstoqueHandler {
	return &EstoqueHandler{uc: uc}
}

// ListarItens godoc
// @Summary      Saldo de estoque da escola por produto
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        escolaId   path   string  true   "ID da escola"
// @Param        q          query  string  false  "Busca por produto (ignora acentos)"
// @Param        com_saldo  query  bool    false  "Somente itens com saldo"
// @Success      200        {array}  dto.ItemEstoqueResponse
// @Router       /api/escolas/{escolaId}/estoque [get]
func (h *EstoqueHandler) ListarItens(c *fiber.Ctx) error {
	escolaID := c.Params("escolaId")
	if !podeAcessarEscola(c, escolaID) {
		return forbiddenEscola(c)
	}
	out, err := h.uc.ListarItens(c.UserContext(), GetTenantID(c), escolaID, estoque.FiltroItens{
		Busca:           c.Query("q"),
		SomenteComSaldo: c.QueryBool("com_saldo", false),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListarLotes godoc
// @Summary      Lotes do produto na escola em ordem FEFO
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        escolaId   path  string  true  "ID da escola"
// @Param        produtoId  path  string  true  "ID do produto"
// @Success      200        {array}  dto.LoteResponse
// @Router       /api/escolas/{escolaId}/estoque/{produtoId}/lotes [get]
func (h *EstoqueHandler) ListarLotes(c *fiber.Ctx) error {
	escolaID := c.Params("escolaId")
	if !podeAcessarEscola(c, escolaID) {
		return forbiddenEscola(c)
	}
	out, err := h.uc.ListarLotes(c.UserContext(), GetTenantID(c), escolaID, c.Params("produtoId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegistrarEntrada godoc
// @Summary      Registrar entrada de lote
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        escolaId  path  string                       true  "ID da escola"
// @Param        body      body  dto.RegistrarEntradaRequest  true  "Lote recebido"
// @Success      201       {object}  dto.LoteResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/escolas/{escolaId}/estoque/entradas [post]
func (h *EstoqueHandler) RegistrarEntrada(c *fiber.Ctx) error {
	escolaID := c.Params("escolaId")
	if !podeAcessarEscola(c, escolaID) {
		return forbiddenEscola(c)
	}
	var in dto.RegistrarEntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	input, err := estoque.EntradaFromRequest(GetTenantID(c), GetUserID(c), escolaID, in)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RegistrarEntrada(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SimularSaida godoc
// @Summary      Simular saída inteligente (plano FEFO, não grava)
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        escolaId  path  string            true  "ID da escola"
// @Param        body      body  dto.SaidaRequest  true  "Produto e quantidade"
// @Success      200       {object}  dto.PlanoSaidaResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/escolas/{escolaId}/estoque/saidas/simular [post]
func (h *EstoqueHandler) SimularSaida(c *fiber.Ctx) error {
	escolaID := c.Params("escolaId")
	if !podeAcessarEscola(c, escolaID) {
		return forbiddenEscola(c)
	}
	var in dto.SaidaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SimularSaida(c.UserContext(), estoque.SaidaFromRequest(GetTenantID(c), GetUserID(c), escolaID, in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ConfirmarSaida godoc
// @Summary      Confirmar saída inteligente
// @Description  Recalcula o plano com os lotes bloqueados e rejeita com 409 INSUFFICIENT_STOCK se faltar saldo.
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        escolaId  path  string            true  "ID da escola"
// @Param        body      body  dto.SaidaRequest  true  "Produto e quantidade"
// @Success      201       {object}  dto.PlanoSaidaResponse
// @Failure      409       {object}  dto.ErrorResponse
// @Router       /api/escolas/{escolaId}/estoque/saidas [post]
func (h *EstoqueHandler) ConfirmarSaida(c *fiber.Ctx) error {
	escolaID := c.Params("escolaId")
	if !podeAcessarEscola(c, escolaID) {
		return forbiddenEscola(c)
	}
	var in dto.SaidaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ConfirmarSaida(c.UserContext(), estoque.SaidaFromRequest(GetTenantID(c), GetUserID(c), escolaID, in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Historico godoc
// @Summary      Histórico de movimentações da escola
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        escolaId    path   string  true   "ID da escola"
// @Param        produto_id  query  string  false  "Filtra por produto"
// @Param        from        query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        to          query  string  false  "Data final (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Limite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200         {array}  dto.MovimentacaoResponse
// @Router       /api/escolas/{escolaId}/estoque/movimentacoes [get]
func (h *EstoqueHandler) Historico(c *fiber.Ctx) error {
	escolaID := c.Params("escolaId")
	if !podeAcessarEscola(c, escolaID) {
		return forbiddenEscola(c)
	}
	from, err := dto.ParseDate(c.Query("from"))
	if err != nil {
		return badRequest(c, "VALIDATION", "from: "+err.Error())
	}
	to, err := dto.ParseDate(c.Query("to"))
	if err != nil {
		return badRequest(c, "VALIDATION", "to: "+err.Error())
	}
	out, err := h.uc.Historico(c.UserContext(), GetTenantID(c), escolaID, c.Query("produto_id"), from, to, page(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportarCSV godoc
// @Summary      Exportar saldo da escola em CSV
// @Tags         estoque
// @Security     Bearer
// @Produce      text/csv
// @Param        escolaId  path  string  true  "ID da escola"
// @Success      200
// @Router       /api/escolas/{escolaId}/estoque/export [get]
func (h *EstoqueHandler) ExportarCSV(c *fiber.Ctx) error {
	escolaID := c.Params("escolaId")
	if !podeAcessarEscola(c, escolaID) {
		return forbiddenEscola(c)
	}
	data, filename, err := h.uc.ExportarCSV(c.UserContext(), GetTenantID(c), escolaID)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "text/csv; charset=utf-8", filename, data)
}

// sendFile envia bytes como anexo.
func sendFile(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
