package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

// ModuleService verifica quais módulos o tenant tem ativos.
// É o único ponto da aplicação que conhece a regra de ativação de módulos.
type ModuleService struct {
	tenantRepo repository.TenantRepository
}

// NewModuleService constrói o serviço de módulos.
func NewModuleService(tenantRepo repository.TenantRepository) *ModuleService {
	return &ModuleService{tenantRepo: tenantRepo}
}

// HasActiveModule informa se o tenant tem o módulo ativo e não vencido.
// Devolve false (sem erro) se o módulo não foi contratado.
// Devolve erro apenas em falhas de infraestrutura (banco fora, timeout).
func (s *ModuleService) HasActiveModule(ctx context.Context, tenantID, moduleName string) (bool, error) {
	if tenantID == "" || moduleName == "" {
		return false, fmt.Errorf("module: tenantID e moduleName são obrigatórios")
	}
	return s.tenantRepo.HasActiveModule(ctx, tenantID, moduleName)
}

// SetModule ativa ou desativa um módulo do tenant.
func (s *ModuleService) SetModule(ctx context.Context, tenantID string, in dto.SetModuleRequest) error {
	switch in.Module {
	case entity.ModuleEstoque, entity.ModuleEntregas, entity.ModuleFaturamento, entity.ModuleDemandas:
	default:
		return fmt.Errorf("%w: módulo %q", domain.ErrInvalidInput, in.Module)
	}
	expires, err := dto.ParseDate(in.ExpiresAt)
	if err != nil {
		return fmt.Errorf("%w: expires_at", domain.ErrInvalidInput)
	}
	t, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	return s.tenantRepo.SetModule(ctx, &entity.TenantModule{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ModuleName:  in.Module,
		IsActive:    in.Active,
		ActivatedAt: time.Now(),
		ExpiresAt:   expires,
	})
}
