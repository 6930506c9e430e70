package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/sincronizacao"
)

// maxOperacoesSync limite de operações por requisição de sincronização.
const maxOperacoesSync = 500

// SyncHandler recebe a fila offline dos apps.
type SyncHandler struct {
	uc *sincronizacao.UseCase
}

// NewSyncHandler constrói o handler.
func NewSyncHandler(uc *sincronizacao.UseCase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// Replay godoc
// @Summary      Reenviar operações feitas offline
// @Description  Aplica na ordem; cada operação volta como ok, erro ou duplicada. Uma falha não interrompe as demais.
// @Tags         sync
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SyncRequest  true  "Operações pendentes"
// @Success      200   {object}  dto.SyncResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sync [post]
func (h *SyncHandler) Replay(c *fiber.Ctx) error {
	var in dto.SyncRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if len(in.Operacoes) > maxOperacoesSync {
		return badRequest(c, "VALIDATION", "máximo de 500 operações por sincronização")
	}
	ator := sincronizacao.Ator{
		TenantID:  GetTenantID(c),
		UsuarioID: GetUserID(c),
		Role:      GetRole(c),
		EscolaID:  GetEscolaID(c),
	}
	return c.JSON(h.uc.Replay(c.UserContext(), ator, in.Operacoes))
}
