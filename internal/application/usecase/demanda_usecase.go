package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

// DemandaUseCase registro e acompanhamento de demandas (ofícios) das escolas.
type DemandaUseCase struct {
	repo       repository.DemandaRepository
	escolaRepo repository.EscolaRepository
	now        func() time.Time
}

// NewDemandaUseCase constrói o caso de uso.
func NewDemandaUseCase(repo repository.DemandaRepository, escolaRepo repository.EscolaRepository) *DemandaUseCase {
	return &DemandaUseCase{repo: repo, escolaRepo: escolaRepo, now: time.Now}
}

// Create registra a demanda como pendente.
func (uc *DemandaUseCase) Create(ctx context.Context, tenantID, usuarioID string, in dto.CreateDemandaRequest) (*dto.DemandaResponse, error) {
	if strings.TrimSpace(in.NumeroOficio) == "" || strings.TrimSpace(in.Objeto) == "" {
		return nil, domain.ErrInvalidInput
	}
	e, err := uc.escolaRepo.GetByID(ctx, tenantID, in.EscolaID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: escola %s", domain.ErrNotFound, in.EscolaID)
	}
	now := uc.now()
	solicitacao := now
	if d, err := dto.ParseDate(in.DataSolicitacao); err != nil {
		return nil, fmt.Errorf("%w: data_solicitacao", domain.ErrInvalidInput)
	} else if d != nil {
		solicitacao = *d
	}
	dm := &entity.Demanda{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		EscolaID:        in.EscolaID,
		NumeroOficio:    strings.TrimSpace(in.NumeroOficio),
		Objeto:          strings.TrimSpace(in.Objeto),
		Descricao:       in.Descricao,
		DataSolicitacao: solicitacao,
		Status:          entity.DemandaPendente,
		Observacoes:     in.Observacoes,
		CriadoPor:       usuarioID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, dm); err != nil {
		return nil, err
	}
	return uc.toResponse(dm), nil
}

// GetByID obtém uma demanda.
func (uc *DemandaUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.DemandaResponse, error) {
	dm, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if dm == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(dm), nil
}

// List lista demandas filtrando por escola e status.
func (uc *DemandaUseCase) List(ctx context.Context, tenantID string, filtro repository.DemandaFiltro) ([]dto.DemandaResponse, error) {
	if filtro.Status != "" && !entity.ValidDemandaStatus(filtro.Status) {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, filtro.Status)
	}
	list, err := uc.repo.List(ctx, tenantID, filtro)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DemandaResponse, 0, len(list))
	for _, dm := range list {
		out = append(out, *uc.toResponse(dm))
	}
	return out, nil
}

// UpdateStatus muda o status. Atendido e não atendido exigem data de resposta, que não pode
// ser anterior à solicitação; voltar para pendente ou enviado limpa a resposta.
func (uc *DemandaUseCase) UpdateStatus(ctx context.Context, tenantID, id string, in dto.UpdateDemandaStatusRequest) (*dto.DemandaResponse, error) {
	if !entity.ValidDemandaStatus(in.Status) {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, in.Status)
	}
	resposta, err := dto.ParseDate(in.DataResposta)
	if err != nil {
		return nil, fmt.Errorf("%w: data_resposta", domain.ErrInvalidInput)
	}
	dm, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if dm == nil {
		return nil, domain.ErrNotFound
	}
	switch in.Status {
	case entity.DemandaAtendido, entity.DemandaNaoAtendido:
		if resposta == nil {
			return nil, fmt.Errorf("%w: data de resposta obrigatória para %s", domain.ErrInvalidInput, in.Status)
		}
		if resposta.Before(entity.Dia(dm.DataSolicitacao)) {
			return nil, fmt.Errorf("%w: resposta anterior à solicitação", domain.ErrInvalidInput)
		}
		dm.DataResposta = resposta
	default:
		dm.DataResposta = nil
	}
	dm.Status = in.Status
	if in.Observacoes != "" {
		dm.Observacoes = in.Observacoes
	}
	dm.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, dm); err != nil {
		return nil, err
	}
	return uc.toResponse(dm), nil
}

// Delete remove uma demanda.
func (uc *DemandaUseCase) Delete(ctx context.Context, tenantID, id string) error {
	dm, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if dm == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, tenantID, id)
}

// toResponse calcula dias em aberto até a resposta (ou até hoje).
func (uc *DemandaUseCase) toResponse(dm *entity.Demanda) *dto.DemandaResponse {
	fim := uc.now()
	if dm.DataResposta != nil {
		fim = *dm.DataResposta
	}
	dias := int(entity.Dia(fim).Sub(entity.Dia(dm.DataSolicitacao)).Hours() / 24)
	if dias < 0 {
		dias = 0
	}
	return &dto.DemandaResponse{
		ID:              dm.ID,
		EscolaID:        dm.EscolaID,
		NumeroOficio:    dm.NumeroOficio,
		Objeto:          dm.Objeto,
		Descricao:       dm.Descricao,
		DataSolicitacao: dto.FormatDate(&dm.DataSolicitacao),
		DataResposta:    dto.FormatDate(dm.DataResposta),
		DiasEmAberto:    dias,
		Status:          dm.Status,
		Observacoes:     dm.Observacoes,
		CreatedAt:       dm.CreatedAt,
	}
}
