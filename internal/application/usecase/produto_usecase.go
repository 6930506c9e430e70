package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
	"github.com/ewenunessn/gestaoescolar-sub007/pkg/texto"
)

// maxProdutosBusca limite de produtos carregados para a busca sem acento.
const maxProdutosBusca = 2000

// ProdutoUseCase casos de uso CRUD de produtos. Saldo é tratado pelo estoque.
type ProdutoUseCase struct {
	repo repository.ProdutoRepository
}

// NewProdutoUseCase constrói o caso de uso.
func NewProdutoUseCase(repo repository.ProdutoRepository) *ProdutoUseCase {
	return &ProdutoUseCase{repo: repo}
}

// Create cadastra um produto ativo.
func (uc *ProdutoUseCase) Create(ctx context.Context, tenantID string, in dto.ProdutoRequest) (*dto.ProdutoResponse, error) {
	nome := strings.TrimSpace(in.Nome)
	unidade := strings.TrimSpace(in.Unidade)
	if nome == "" || unidade == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Produto{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Nome:      nome,
		Unidade:   unidade,
		Categoria: strings.TrimSpace(in.Categoria),
		Perecivel: in.Perecivel,
		Ativo:     in.Ativo == nil || *in.Ativo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProdutoResponse(p), nil
}

// GetByID obtém um produto do tenant.
func (uc *ProdutoUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.ProdutoResponse, error) {
	p, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProdutoResponse(p), nil
}

// Update altera os dados do produto.
func (uc *ProdutoUseCase) Update(ctx context.Context, tenantID, id string, in dto.ProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if nome := strings.TrimSpace(in.Nome); nome != "" {
		p.Nome = nome
	}
	if u := strings.TrimSpace(in.Unidade); u != "" {
		p.Unidade = u
	}
	p.Categoria = strings.TrimSpace(in.Categoria)
	p.Perecivel = in.Perecivel
	if in.Ativo != nil {
		p.Ativo = *in.Ativo
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProdutoResponse(p), nil
}

// List lista produtos. Com busca, filtra nome e categoria ignorando acentos e caixa
// ("feijao" encontra "Feijão") e pagina o resultado filtrado.
func (uc *ProdutoUseCase) List(ctx context.Context, tenantID, busca string, limit, offset int) (*dto.ProdutoListResponse, error) {
	var list []*entity.Produto
	var err error
	if strings.TrimSpace(busca) == "" {
		list, err = uc.repo.ListByTenant(ctx, tenantID, limit, offset)
		if err != nil {
			return nil, err
		}
	} else {
		todos, err := uc.repo.ListByTenant(ctx, tenantID, maxProdutosBusca, 0)
		if err != nil {
			return nil, err
		}
		filtrados := make([]*entity.Produto, 0, len(todos))
		for _, p := range todos {
			if texto.Contem(p.Nome, busca) || texto.Contem(p.Categoria, busca) {
				filtrados = append(filtrados, p)
			}
		}
		if offset < len(filtrados) {
			list = filtrados[offset:]
		}
		if len(list) > limit {
			list = list[:limit]
		}
	}
	items := make([]dto.ProdutoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProdutoResponse(p))
	}
	return &dto.ProdutoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toProdutoResponse(p *entity.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:        p.ID,
		Nome:      p.Nome,
		Unidade:   p.Unidade,
		Categoria: p.Categoria,
		Perecivel: p.Perecivel,
		Ativo:     p.Ativo,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
