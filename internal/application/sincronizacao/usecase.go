// Package sincronizacao reaplica no servidor as operações que os apps enfileiraram offline.
package sincronizacao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/entregas"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/estoque"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/ports"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// IdempotenciaTTL tempo que uma operação aplicada fica registrada.
const IdempotenciaTTL = 7 * 24 * time.Hour

// EntregaService operações de entregas usadas no replay.
type EntregaService interface {
	ConfirmarEntrega(ctx context.Context, in entregas.ConfirmacaoInput) (*dto.ItemEntregaResponse, error)
}

// EstoqueService operações de estoque usadas no replay.
type EstoqueService interface {
	ConfirmarSaida(ctx context.Context, in estoque.SaidaInput) (*dto.PlanoSaidaResponse, error)
	RegistrarEntrada(ctx context.Context, in estoque.EntradaInput) (*dto.LoteResponse, error)
}

// ModuleChecker consulta se o tenant tem o módulo ativo.
type ModuleChecker interface {
	HasActiveModule(ctx context.Context, tenantID, moduleName string) (bool, error)
}

// Ator quem está sincronizando (vem do token).
type Ator struct {
	TenantID  string
	UsuarioID string
	Role      string
	EscolaID  string
}

// UseCase replay da fila offline.
type UseCase struct {
	entregas EntregaService
	estoque  EstoqueService
	modules  ModuleChecker
	cache    ports.Cache
	log      zerolog.Logger
}

// NewUseCase constrói o caso de uso. cache guarda as chaves de idempotência.
func NewUseCase(ent EntregaService, est EstoqueService, modules ModuleChecker, cache ports.Cache, log zerolog.Logger) *UseCase {
	return &UseCase{entregas: ent, estoque: est, modules: modules, cache: cache, log: log}
}

// Replay executa as operações na ordem recebida. Cada uma tem resultado próprio:
// ok, erro (com código e mensagem) ou duplicada quando o id já foi aplicado antes.
// Uma falha não interrompe as seguintes.
func (uc *UseCase) Replay(ctx context.Context, ator Ator, ops []dto.OperacaoPendente) dto.SyncResponse {
	resp := dto.SyncResponse{Resultados: make([]dto.ResultadoOperacao, 0, len(ops))}
	for _, op := range ops {
		r := uc.aplicar(ctx, ator, op)
		switch r.Status {
		case dto.SyncOK:
			resp.Aplicadas++
		case dto.SyncErro:
			resp.Falhas++
		}
		resp.Resultados = append(resp.Resultados, r)
	}
	uc.log.Info().
		Str("tenant_id", ator.TenantID).
		Str("user_id", ator.UsuarioID).
		Int("operacoes", len(ops)).
		Int("aplicadas", resp.Aplicadas).
		Int("falhas", resp.Falhas).
		Msg("sincronização offline processada")
	return resp
}

func (uc *UseCase) aplicar(ctx context.Context, ator Ator, op dto.OperacaoPendente) dto.ResultadoOperacao {
	res := dto.ResultadoOperacao{ID: op.ID, Tipo: op.Tipo}
	if op.ID == "" {
		return falha(res, fmt.Errorf("%w: operação sem id", domain.ErrInvalidInput))
	}

	key := ports.TenantKey(ator.TenantID, "sync", op.ID)
	novo, err := uc.cache.SetNX(ctx, key, []byte(dto.SyncOK), IdempotenciaTTL)
	if err != nil {
		return falha(res, fmt.Errorf("registrar idempotência: %w", err))
	}
	if !novo {
		res.Status = dto.SyncDuplicada
		return res
	}

	if err := uc.executar(ctx, ator, op); err != nil {
		// Libera o id para que o app possa tentar de novo depois de corrigir.
		if delErr := uc.cache.Delete(ctx, key); delErr != nil {
			uc.log.Warn().Err(delErr).Str("op_id", op.ID).Msg("falha ao liberar chave de idempotência")
		}
		uc.log.Warn().Err(err).Str("op_id", op.ID).Str("tipo", op.Tipo).Msg("operação offline rejeitada")
		return falha(res, err)
	}
	res.Status = dto.SyncOK
	return res
}

func (uc *UseCase) executar(ctx context.Context, ator Ator, op dto.OperacaoPendente) error {
	switch op.Tipo {
	case dto.OpConfirmarEntrega:
		if !permitido(ator.Role, entity.RoleAdmin, entity.RoleGestor, entity.RoleEntregador) {
			return domain.ErrForbidden
		}
		if err := uc.exigirModulo(ctx, ator.TenantID, entity.ModuleEntregas); err != nil {
			return err
		}
		var p dto.ConfirmarEntregaPayload
		if err := decode(op.Payload, &p); err != nil {
			return err
		}
		_, err := uc.entregas.ConfirmarEntrega(ctx, entregas.ConfirmacaoFromRequest(ator.TenantID, ator.UsuarioID, p.ItemID, p.ConfirmarEntregaRequest))
		return err

	case dto.OpSaidaEstoque:
		var p dto.SaidaEstoquePayload
		if err := decode(op.Payload, &p); err != nil {
			return err
		}
		if err := uc.autorizarEstoque(ctx, ator, p.EscolaID); err != nil {
			return err
		}
		_, err := uc.estoque.ConfirmarSaida(ctx, estoque.SaidaFromRequest(ator.TenantID, ator.UsuarioID, p.EscolaID, p.SaidaRequest))
		return err

	case dto.OpEntradaEstoque:
		var p dto.EntradaEstoquePayload
		if err := decode(op.Payload, &p); err != nil {
			return err
		}
		if err := uc.autorizarEstoque(ctx, ator, p.EscolaID); err != nil {
			return err
		}
		in, err := estoque.EntradaFromRequest(ator.TenantID, ator.UsuarioID, p.EscolaID, p.RegistrarEntradaRequest)
		if err != nil {
			return err
		}
		_, err = uc.estoque.RegistrarEntrada(ctx, in)
		return err
	}
	return fmt.Errorf("%w: tipo de operação %q", domain.ErrInvalidInput, op.Tipo)
}

func (uc *UseCase) autorizarEstoque(ctx context.Context, ator Ator, escolaID string) error {
	if !permitido(ator.Role, entity.RoleAdmin, entity.RoleGestor, entity.RoleEscola) {
		return domain.ErrForbidden
	}
	if !entity.PodeAcessarEscola(ator.Role, ator.EscolaID, escolaID) {
		return domain.ErrForbidden
	}
	return uc.exigirModulo(ctx, ator.TenantID, entity.ModuleEstoque)
}

func (uc *UseCase) exigirModulo(ctx context.Context, tenantID, module string) error {
	if uc.modules == nil {
		return nil
	}
	ok, err := uc.modules.HasActiveModule(ctx, tenantID, module)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: módulo %s inativo", domain.ErrForbidden, module)
	}
	return nil
}

func decode(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: payload vazio", domain.ErrInvalidInput)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: payload inválido: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func permitido(role string, roles ...string) bool {
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

func falha(res dto.ResultadoOperacao, err error) dto.ResultadoOperacao {
	res.Status = dto.SyncErro
	res.Codigo = domain.Code(err)
	res.Mensagem = err.Error()
	return res
}
