// Package entregas contém os casos de uso do app de entregas e da gestão de rotas.
package entregas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/ports"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

// Deps dependências do caso de uso.
type Deps struct {
	TenantRepo  repository.TenantRepository
	RotaRepo    repository.RotaRepository
	ItemRepo    repository.ItemEntregaRepository
	EscolaRepo  repository.EscolaRepository
	ProdutoRepo repository.ProdutoRepository
	Cache       ports.Cache
	PDF         ports.RomaneioPDFGenerator
	Logger      zerolog.Logger
	CacheTTL    time.Duration
}

// UseCase casos de uso de entregas.
type UseCase struct {
	tenantRepo  repository.TenantRepository
	rotaRepo    repository.RotaRepository
	itemRepo    repository.ItemEntregaRepository
	escolaRepo  repository.EscolaRepository
	produtoRepo repository.ProdutoRepository
	cache       ports.Cache
	pdf         ports.RomaneioPDFGenerator
	log         zerolog.Logger
	ttl         time.Duration
	now         func() time.Time
}

// NewUseCase constrói o caso de uso.
func NewUseCase(d Deps) *UseCase {
	ttl := d.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &UseCase{
		tenantRepo:  d.TenantRepo,
		rotaRepo:    d.RotaRepo,
		itemRepo:    d.ItemRepo,
		escolaRepo:  d.EscolaRepo,
		produtoRepo: d.ProdutoRepo,
		cache:       d.Cache,
		pdf:         d.PDF,
		log:         d.Logger,
		ttl:         ttl,
		now:         time.Now,
	}
}

// ListarRotas rotas ativas e inativas do tenant.
func (uc *UseCase) ListarRotas(ctx context.Context, tenantID string) ([]dto.RotaResponse, error) {
	key := ports.TenantKey(tenantID, "entregas", "rotas")
	var out []dto.RotaResponse
	if uc.lerCache(ctx, key, &out) {
		return out, nil
	}
	rotas, err := uc.rotaRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out = make([]dto.RotaResponse, 0, len(rotas))
	for _, r := range rotas {
		out = append(out, toRotaResponse(r))
	}
	uc.gravarCache(ctx, key, out)
	return out, nil
}

// EscolasDaRota escolas da rota em ordem de visita, com o progresso das entregas.
func (uc *UseCase) EscolasDaRota(ctx context.Context, tenantID, rotaID string) ([]dto.EscolaEntregaResponse, error) {
	key := ports.TenantKey(tenantID, "entregas", "rota", rotaID, "escolas")
	var out []dto.EscolaEntregaResponse
	if uc.lerCache(ctx, key, &out) {
		return out, nil
	}
	if _, err := uc.rota(ctx, tenantID, rotaID); err != nil {
		return nil, err
	}
	escolas, err := uc.rotaRepo.ListEscolas(ctx, tenantID, rotaID)
	if err != nil {
		return nil, err
	}
	out = make([]dto.EscolaEntregaResponse, 0, len(escolas))
	for _, e := range escolas {
		out = append(out, dto.EscolaEntregaResponse{
			EscolaID:       e.EscolaID,
			EscolaNome:     e.EscolaNome,
			Endereco:       e.Endereco,
			Ordem:          e.Ordem,
			TotalItens:     e.TotalItens,
			ItensEntregues: e.ItensEntregues,
			Concluida:      e.TotalItens > 0 && e.ItensEntregues >= e.TotalItens,
		})
	}
	uc.gravarCache(ctx, key, out)
	return out, nil
}

// ItensDaEscola itens programados para a escola; rotaID vazio traz todas as rotas.
func (uc *UseCase) ItensDaEscola(ctx context.Context, tenantID, escolaID, rotaID string) ([]dto.ItemEntregaResponse, error) {
	itens, err := uc.itemRepo.ListByEscola(ctx, tenantID, escolaID, rotaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemEntregaResponse, 0, len(itens))
	for _, it := range itens {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// ConfirmacaoInput confirmação de entrega de um item.
type ConfirmacaoInput struct {
	TenantID           string
	UsuarioID          string
	ItemID             string
	QuantidadeEntregue decimal.Decimal
	NomeRecebedor      string
	Observacao         string
}

// ConfirmacaoFromRequest adapta o body HTTP.
func ConfirmacaoFromRequest(tenantID, usuarioID, itemID string, in dto.ConfirmarEntregaRequest) ConfirmacaoInput {
	return ConfirmacaoInput{
		TenantID:           tenantID,
		UsuarioID:          usuarioID,
		ItemID:             itemID,
		QuantidadeEntregue: in.QuantidadeEntregue,
		NomeRecebedor:      strings.TrimSpace(in.NomeRecebedor),
		Observacao:         in.Observacao,
	}
}

// ConfirmarEntrega registra a entrega. Quantidade igual à programada fecha o item como entregue;
// menor deixa parcial (pode ser confirmado de novo). Item já entregue devolve ErrEntregaJaConfirmada.
func (uc *UseCase) ConfirmarEntrega(ctx context.Context, in ConfirmacaoInput) (*dto.ItemEntregaResponse, error) {
	if !in.QuantidadeEntregue.IsPositive() {
		return nil, domain.ErrQuantidadeInvalida
	}
	if in.NomeRecebedor == "" {
		return nil, fmt.Errorf("%w: nome do recebedor é obrigatório", domain.ErrInvalidInput)
	}
	item, err := uc.item(ctx, in.TenantID, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Status == entity.EntregaEntregue {
		return nil, domain.ErrEntregaJaConfirmada
	}
	if in.QuantidadeEntregue.GreaterThan(item.QuantidadeProgramada) {
		return nil, fmt.Errorf("%w: quantidade entregue %s maior que a programada %s",
			domain.ErrInvalidInput, in.QuantidadeEntregue, item.QuantidadeProgramada)
	}

	anterior := item.Status
	now := uc.now()
	item.QuantidadeEntregue = in.QuantidadeEntregue
	item.Status = entity.EntregaParcial
	if in.QuantidadeEntregue.Equal(item.QuantidadeProgramada) {
		item.Status = entity.EntregaEntregue
	}
	item.EntregueEm = &now
	item.EntreguePor = in.UsuarioID
	item.NomeRecebedor = in.NomeRecebedor
	item.Observacao = in.Observacao
	item.UpdatedAt = now
	if err := uc.itemRepo.UpdateConfirmacao(ctx, item, anterior); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			if atual, getErr := uc.item(ctx, in.TenantID, in.ItemID); getErr == nil && atual.Status == entity.EntregaEntregue {
				return nil, domain.ErrEntregaJaConfirmada
			}
		}
		return nil, err
	}
	uc.invalidar(ctx, in.TenantID)

	uc.log.Info().
		Str("tenant_id", in.TenantID).
		Str("item_id", item.ID).
		Str("escola_id", item.EscolaID).
		Str("status", item.Status).
		Msg("entrega confirmada")

	resp := toItemResponse(item)
	return &resp, nil
}

// CancelarEntrega volta o item para pendente e limpa os dados da confirmação.
func (uc *UseCase) CancelarEntrega(ctx context.Context, tenantID, itemID string) (*dto.ItemEntregaResponse, error) {
	item, err := uc.item(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status == entity.EntregaPendente {
		return nil, fmt.Errorf("%w: item ainda não foi entregue", domain.ErrStatusInvalido)
	}
	anterior := item.Status
	item.Status = entity.EntregaPendente
	item.QuantidadeEntregue = decimal.Zero
	item.EntregueEm = nil
	item.EntreguePor = ""
	item.NomeRecebedor = ""
	item.Observacao = ""
	item.UpdatedAt = uc.now()
	if err := uc.itemRepo.UpdateConfirmacao(ctx, item, anterior); err != nil {
		return nil, err
	}
	uc.invalidar(ctx, tenantID)
	resp := toItemResponse(item)
	return &resp, nil
}

// CriarRota cadastra uma rota.
func (uc *UseCase) CriarRota(ctx context.Context, tenantID string, in dto.RotaRequest) (*dto.RotaResponse, error) {
	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	rota := &entity.RotaEntrega{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Nome:      nome,
		Cor:       in.Cor,
		Descricao: in.Descricao,
		Ativo:     in.Ativo == nil || *in.Ativo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.rotaRepo.Create(ctx, rota); err != nil {
		return nil, err
	}
	uc.invalidar(ctx, tenantID)
	resp := toRotaResponse(rota)
	return &resp, nil
}

// AtualizarRota altera nome, cor, descrição e ativo.
func (uc *UseCase) AtualizarRota(ctx context.Context, tenantID, rotaID string, in dto.RotaRequest) (*dto.RotaResponse, error) {
	rota, err := uc.rota(ctx, tenantID, rotaID)
	if err != nil {
		return nil, err
	}
	if nome := strings.TrimSpace(in.Nome); nome != "" {
		rota.Nome = nome
	}
	rota.Cor = in.Cor
	rota.Descricao = in.Descricao
	if in.Ativo != nil {
		rota.Ativo = *in.Ativo
	}
	rota.UpdatedAt = uc.now()
	if err := uc.rotaRepo.Update(ctx, rota); err != nil {
		return nil, err
	}
	uc.invalidar(ctx, tenantID)
	resp := toRotaResponse(rota)
	return &resp, nil
}

// DefinirEscolas substitui as escolas da rota; a ordem do slice é a ordem de visita.
func (uc *UseCase) DefinirEscolas(ctx context.Context, tenantID, rotaID string, escolaIDs []string) error {
	if _, err := uc.rota(ctx, tenantID, rotaID); err != nil {
		return err
	}
	vistos := make(map[string]bool, len(escolaIDs))
	for _, id := range escolaIDs {
		if vistos[id] {
			return fmt.Errorf("%w: escola %s repetida", domain.ErrInvalidInput, id)
		}
		vistos[id] = true
		e, err := uc.escolaRepo.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if e == nil {
			return fmt.Errorf("%w: escola %s", domain.ErrNotFound, id)
		}
	}
	if err := uc.rotaRepo.SetEscolas(ctx, tenantID, rotaID, escolaIDs); err != nil {
		return err
	}
	uc.invalidar(ctx, tenantID)
	return nil
}

// ProgramarItens cria os itens a entregar para uma escola que pertence à rota.
func (uc *UseCase) ProgramarItens(ctx context.Context, tenantID string, in dto.ProgramarItensRequest) ([]dto.ItemEntregaResponse, error) {
	if len(in.Itens) == 0 {
		return nil, fmt.Errorf("%w: nenhum item informado", domain.ErrInvalidInput)
	}
	prevista, err := dto.ParseDate(in.DataPrevista)
	if err != nil {
		return nil, fmt.Errorf("%w: data_prevista", domain.ErrInvalidInput)
	}
	if _, err := uc.rota(ctx, tenantID, in.RotaID); err != nil {
		return nil, err
	}
	escolas, err := uc.rotaRepo.ListEscolas(ctx, tenantID, in.RotaID)
	if err != nil {
		return nil, err
	}
	naRota := false
	for _, e := range escolas {
		if e.EscolaID == in.EscolaID {
			naRota = true
			break
		}
	}
	if !naRota {
		return nil, fmt.Errorf("%w: escola não pertence à rota", domain.ErrInvalidInput)
	}

	// Tudo é validado antes de gravar: um item ruim rejeita o pedido inteiro.
	now := uc.now()
	itens := make([]*entity.ItemEntrega, 0, len(in.Itens))
	for _, it := range in.Itens {
		if !it.Quantidade.IsPositive() {
			return nil, domain.ErrQuantidadeInvalida
		}
		p, err := uc.produtoRepo.GetByID(ctx, tenantID, it.ProdutoID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: produto %s", domain.ErrNotFound, it.ProdutoID)
		}
		itens = append(itens, &entity.ItemEntrega{
			ID:                   uuid.New().String(),
			TenantID:             tenantID,
			RotaID:               in.RotaID,
			EscolaID:             in.EscolaID,
			ProdutoID:            p.ID,
			ProdutoNome:          p.Nome,
			Unidade:              p.Unidade,
			QuantidadeProgramada: it.Quantidade,
			QuantidadeEntregue:   decimal.Zero,
			Status:               entity.EntregaPendente,
			DataPrevista:         prevista,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
	}
	if err := uc.itemRepo.CreateMany(ctx, itens); err != nil {
		return nil, err
	}
	uc.invalidar(ctx, tenantID)

	out := make([]dto.ItemEntregaResponse, 0, len(itens))
	for _, it := range itens {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// RomaneioPDF gera o romaneio de carga da rota: escolas na ordem e itens pendentes ou parciais.
func (uc *UseCase) RomaneioPDF(ctx context.Context, tenantID, rotaID string) ([]byte, string, error) {
	rota, err := uc.rota(ctx, tenantID, rotaID)
	if err != nil {
		return nil, "", err
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, "", err
	}
	if tenant == nil {
		return nil, "", domain.ErrNotFound
	}
	escolas, err := uc.rotaRepo.ListEscolas(ctx, tenantID, rotaID)
	if err != nil {
		return nil, "", err
	}
	itens, err := uc.itemRepo.ListByRota(ctx, tenantID, rotaID)
	if err != nil {
		return nil, "", err
	}
	porEscola := make(map[string][]*entity.ItemEntrega)
	for _, it := range itens {
		if it.Status == entity.EntregaEntregue {
			continue
		}
		porEscola[it.EscolaID] = append(porEscola[it.EscolaID], it)
	}
	data := ports.RomaneioData{Tenant: tenant, Rota: rota}
	for _, e := range escolas {
		data.Escolas = append(data.Escolas, ports.RomaneioEscola{Escola: e, Itens: porEscola[e.EscolaID]})
	}
	pdf, err := uc.pdf.GenerateRomaneio(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("romaneio: gerar pdf: %w", err)
	}
	return pdf, "romaneio-" + uc.now().Format("20060102") + ".pdf", nil
}

func (uc *UseCase) rota(ctx context.Context, tenantID, rotaID string) (*entity.RotaEntrega, error) {
	r, err := uc.rotaRepo.GetByID(ctx, tenantID, rotaID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (uc *UseCase) item(ctx context.Context, tenantID, itemID string) (*entity.ItemEntrega, error) {
	it, err := uc.itemRepo.GetByID(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	return it, nil
}

func (uc *UseCase) lerCache(ctx context.Context, key string, dst any) bool {
	if uc.cache == nil {
		return false
	}
	found, err := ports.GetJSON(ctx, uc.cache, key, dst)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("cache de entregas indisponível")
		return false
	}
	return found
}

func (uc *UseCase) gravarCache(ctx context.Context, key string, v any) {
	if uc.cache == nil {
		return
	}
	if err := ports.SetJSON(ctx, uc.cache, key, v, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("falha ao gravar cache de entregas")
	}
}

// invalidar descarta rotas e escolas em cache do tenant; os contadores mudam a cada confirmação.
func (uc *UseCase) invalidar(ctx context.Context, tenantID string) {
	if uc.cache == nil {
		return
	}
	prefix := ports.TenantKey(tenantID, "entregas", "")
	if err := uc.cache.DeletePrefix(ctx, prefix); err != nil {
		uc.log.Warn().Err(err).Str("prefix", prefix).Msg("falha ao invalidar cache de entregas")
	}
}

func toRotaResponse(r *entity.RotaEntrega) dto.RotaResponse {
	return dto.RotaResponse{ID: r.ID, Nome: r.Nome, Cor: r.Cor, Descricao: r.Descricao, Ativo: r.Ativo}
}

func toItemResponse(it *entity.ItemEntrega) dto.ItemEntregaResponse {
	return dto.ItemEntregaResponse{
		ID:                   it.ID,
		RotaID:               it.RotaID,
		EscolaID:             it.EscolaID,
		ProdutoID:            it.ProdutoID,
		ProdutoNome:          it.ProdutoNome,
		Unidade:              it.Unidade,
		QuantidadeProgramada: it.QuantidadeProgramada,
		QuantidadeEntregue:   it.QuantidadeEntregue,
		Status:               it.Status,
		DataPrevista:         dto.FormatDate(it.DataPrevista),
		EntregueEm:           it.EntregueEm,
		NomeRecebedor:        it.NomeRecebedor,
		Observacao:           it.Observacao,
	}
}
