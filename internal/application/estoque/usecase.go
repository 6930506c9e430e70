// Package estoque contém os casos de uso do estoque escolar: consulta de saldo e lotes,
// entrada de lotes, saída inteligente (FEFO) e histórico de movimentações.
package estoque

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/ports"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	domestoque "github.com/ewenunessn/gestaoescolar-sub007/internal/domain/estoque"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
	"github.com/ewenunessn/gestaoescolar-sub007/pkg/texto"
)

// Config parâmetros do estoque escolar.
type Config struct {
	DiasAlertaValidade int
	CacheTTL           time.Duration
}

// Deps dependências do caso de uso.
type Deps struct {
	TxRunner    TxRunner
	EscolaRepo  repository.EscolaRepository
	ProdutoRepo repository.ProdutoRepository
	LoteRepo    repository.LoteRepository
	MovRepo     repository.MovimentacaoRepository
	ItensRepo   repository.EstoqueEscolaRepository
	Cache       ports.Cache
	CSV         ports.EstoqueCSVExporter
	Logger      zerolog.Logger
}

// UseCase casos de uso do estoque escolar.
type UseCase struct {
	tx          TxRunner
	escolaRepo  repository.EscolaRepository
	produtoRepo repository.ProdutoRepository
	loteRepo    repository.LoteRepository
	movRepo     repository.MovimentacaoRepository
	itensRepo   repository.EstoqueEscolaRepository
	cache       ports.Cache
	csv         ports.EstoqueCSVExporter
	cfg         Config
	log         zerolog.Logger
	now         func() time.Time
}

// NewUseCase constrói o caso de uso.
func NewUseCase(d Deps, cfg Config) *UseCase {
	if cfg.DiasAlertaValidade <= 0 {
		cfg.DiasAlertaValidade = 30
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &UseCase{
		tx:          d.TxRunner,
		escolaRepo:  d.EscolaRepo,
		produtoRepo: d.ProdutoRepo,
		loteRepo:    d.LoteRepo,
		movRepo:     d.MovRepo,
		itensRepo:   d.ItensRepo,
		cache:       d.Cache,
		csv:         d.CSV,
		cfg:         cfg,
		log:         d.Logger,
		now:         time.Now,
	}
}

// FiltroItens filtros da listagem de itens.
type FiltroItens struct {
	Busca           string
	SomenteComSaldo bool
}

// ListarItens devolve o saldo por produto da escola. A busca ignora acentos e caixa.
func (uc *UseCase) ListarItens(ctx context.Context, tenantID, escolaID string, filtro FiltroItens) ([]dto.ItemEstoqueResponse, error) {
	itens, err := uc.itensDaEscola(ctx, tenantID, escolaID)
	if err != nil {
		return nil, err
	}
	ref := uc.now()
	out := make([]dto.ItemEstoqueResponse, 0, len(itens))
	for _, it := range itens {
		if filtro.SomenteComSaldo && !it.Quantidade.IsPositive() {
			continue
		}
		if !texto.Contem(it.ProdutoNome, filtro.Busca) && !texto.Contem(it.Categoria, filtro.Busca) {
			continue
		}
		out = append(out, dto.ItemEstoqueResponse{
			ProdutoID:       it.ProdutoID,
			ProdutoNome:     it.ProdutoNome,
			Categoria:       it.Categoria,
			Unidade:         it.Unidade,
			Quantidade:      it.Quantidade,
			ProximaValidade: dto.FormatDate(it.ProximaValidade),
			AlertaValidade:  it.Quantidade.IsPositive() && domestoque.VenceAte(it.ProximaValidade, ref, uc.cfg.DiasAlertaValidade),
			TotalLotes:      it.TotalLotes,
			UpdatedAt:       it.UpdatedAt,
		})
	}
	return out, nil
}

// itensDaEscola lê o saldo consolidado, passando pelo cache da escola.
func (uc *UseCase) itensDaEscola(ctx context.Context, tenantID, escolaID string) ([]*entity.ItemEstoqueEscola, error) {
	if _, err := uc.escola(ctx, tenantID, escolaID); err != nil {
		return nil, err
	}
	key := ports.TenantKey(tenantID, "estoque", escolaID, "itens")
	var itens []*entity.ItemEstoqueEscola
	if uc.cache != nil {
		found, err := ports.GetJSON(ctx, uc.cache, key, &itens)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("cache de estoque indisponível")
		}
		if found {
			return itens, nil
		}
	}
	itens, err := uc.itensRepo.ListItens(ctx, tenantID, escolaID)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := ports.SetJSON(ctx, uc.cache, key, itens, uc.cfg.CacheTTL); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("falha ao gravar cache de estoque")
		}
	}
	return itens, nil
}

// ListarLotes devolve os lotes com saldo do produto na escola, na ordem de consumo FEFO.
func (uc *UseCase) ListarLotes(ctx context.Context, tenantID, escolaID, produtoID string) ([]dto.LoteResponse, error) {
	if _, err := uc.escola(ctx, tenantID, escolaID); err != nil {
		return nil, err
	}
	lotes, err := uc.loteRepo.ListByEscolaProduto(ctx, tenantID, escolaID, produtoID)
	if err != nil {
		return nil, err
	}
	domestoque.OrdenarFEFO(lotes)
	ref := uc.now()
	out := make([]dto.LoteResponse, 0, len(lotes))
	for _, l := range lotes {
		out = append(out, toLoteResponse(l, ref))
	}
	return out, nil
}

// Historico lista as movimentações da escola, mais recentes primeiro.
func (uc *UseCase) Historico(ctx context.Context, tenantID, escolaID, produtoID string, from, to *time.Time, page dto.PageRequest) ([]dto.MovimentacaoResponse, error) {
	if _, err := uc.escola(ctx, tenantID, escolaID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	movs, err := uc.movRepo.ListByEscola(ctx, tenantID, escolaID, produtoID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentacaoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimentacaoResponse{
			ID:                  m.ID,
			TransacaoID:         m.TransacaoID,
			ProdutoID:           m.ProdutoID,
			LoteID:              m.LoteID,
			Tipo:                m.Tipo,
			Quantidade:          m.Quantidade,
			QuantidadeAnterior:  m.QuantidadeAnterior,
			QuantidadePosterior: m.QuantidadePosterior,
			Motivo:              m.Motivo,
			UsuarioID:           m.UsuarioID,
			CreatedAt:           m.CreatedAt,
		})
	}
	return out, nil
}

// ExportarCSV devolve o saldo da escola em CSV e o nome sugerido do arquivo.
func (uc *UseCase) ExportarCSV(ctx context.Context, tenantID, escolaID string) ([]byte, string, error) {
	itens, err := uc.itensDaEscola(ctx, tenantID, escolaID)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.csv.ExportEstoque(ctx, itens)
	if err != nil {
		return nil, "", err
	}
	return data, "estoque-" + escolaID + "-" + uc.now().Format("20060102") + ".csv", nil
}

func (uc *UseCase) escola(ctx context.Context, tenantID, escolaID string) (*entity.Escola, error) {
	if escolaID == "" {
		return nil, domain.ErrInvalidInput
	}
	e, err := uc.escolaRepo.GetByID(ctx, tenantID, escolaID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (uc *UseCase) produto(ctx context.Context, tenantID, produtoID string) (*entity.Produto, error) {
	if produtoID == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.produtoRepo.GetByID(ctx, tenantID, produtoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// invalidarEscola remove do cache as listas da escola após alteração de saldo.
func (uc *UseCase) invalidarEscola(ctx context.Context, tenantID, escolaID string) {
	if uc.cache == nil {
		return
	}
	prefix := ports.TenantKey(tenantID, "estoque", escolaID, "")
	if err := uc.cache.DeletePrefix(ctx, prefix); err != nil {
		uc.log.Warn().Err(err).Str("prefix", prefix).Msg("falha ao invalidar cache de estoque")
	}
}

func toLoteResponse(l *entity.LoteEstoque, ref time.Time) dto.LoteResponse {
	return dto.LoteResponse{
		ID:                l.ID,
		ProdutoID:         l.ProdutoID,
		Codigo:            l.Codigo,
		QuantidadeInicial: l.QuantidadeInicial,
		QuantidadeAtual:   l.QuantidadeAtual,
		DataFabricacao:    dto.FormatDate(l.DataFabricacao),
		DataValidade:      dto.FormatDate(l.DataValidade),
		Status:            l.Status,
		Vencido:           l.Vencido(ref),
		CreatedAt:         l.CreatedAt,
	}
}
