package estoque

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/ports"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

type fakeEscolas map[string]*entity.Escola

func (f fakeEscolas) Create(_ context.Context, e *entity.Escola) error { f[e.ID] = e; return nil }
func (f fakeEscolas) Update(_ context.Context, e *entity.Escola) error { f[e.ID] = e; return nil }
func (f fakeEscolas) GetByID(_ context.Context, tenantID, id string) (*entity.Escola, error) {
	if e, ok := f[id]; ok && e.TenantID == tenantID {
		return e, nil
	}
	return nil, nil
}
func (f fakeEscolas) ListByTenant(context.Context, string, int, int) ([]*entity.Escola, error) {
	return nil, nil
}

type fakeProdutos map[string]*entity.Produto

func (f fakeProdutos) Create(_ context.Context, p *entity.Produto) error { f[p.ID] = p; return nil }
func (f fakeProdutos) Update(_ context.Context, p *entity.Produto) error { f[p.ID] = p; return nil }
func (f fakeProdutos) GetByID(_ context.Context, tenantID, id string) (*entity.Produto, error) {
	if p, ok := f[id]; ok && p.TenantID == tenantID {
		return p, nil
	}
	return nil, nil
}
func (f fakeProdutos) ListByTenant(context.Context, string, int, int) ([]*entity.Produto, error) {
	return nil, nil
}

// fakeLotes guarda cópias para que a transação só publique alterações no commit.
type fakeLotes struct {
	lotes   map[string]entity.LoteEstoque
	ordem   []string
	updates int
}

func newFakeLotes(lotes ...entity.LoteEstoque) *fakeLotes {
	f := &fakeLotes{lotes: map[string]entity.LoteEstoque{}}
	for _, l := range lotes {
		f.lotes[l.ID] = l
		f.ordem = append(f.ordem, l.ID)
	}
	return f
}

func (f *fakeLotes) clone() *fakeLotes {
	c := &fakeLotes{lotes: map[string]entity.LoteEstoque{}, ordem: append([]string(nil), f.ordem...)}
	for k, v := range f.lotes {
		c.lotes[k] = v
	}
	return c
}

func (f *fakeLotes) Create(_ context.Context, l *entity.LoteEstoque) error {
	f.lotes[l.ID] = *l
	f.ordem = append(f.ordem, l.ID)
	return nil
}

func (f *fakeLotes) GetByID(_ context.Context, tenantID, id string) (*entity.LoteEstoque, error) {
	l, ok := f.lotes[id]
	if !ok || l.TenantID != tenantID {
		return nil, nil
	}
	return &l, nil
}

func (f *fakeLotes) ListByEscolaProduto(_ context.Context, tenantID, escolaID, produtoID string) ([]*entity.LoteEstoque, error) {
	var out []*entity.LoteEstoque
	for _, id := range f.ordem {
		l := f.lotes[id]
		if l.TenantID == tenantID && l.EscolaID == escolaID && l.ProdutoID == produtoID && l.Status != entity.LoteStatusEsgotado {
			cp := l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLotes) ListForUpdate(ctx context.Context, tenantID, escolaID, produtoID string) ([]*entity.LoteEstoque, error) {
	return f.ListByEscolaProduto(ctx, tenantID, escolaID, produtoID)
}

func (f *fakeLotes) UpdateSaldo(_ context.Context, l *entity.LoteEstoque) error {
	f.lotes[l.ID] = *l
	f.updates++
	return nil
}

type fakeMovs struct {
	movs []*entity.MovimentacaoEstoque
}

func (f *fakeMovs) Create(_ context.Context, m *entity.MovimentacaoEstoque) error {
	f.movs = append(f.movs, m)
	return nil
}

func (f *fakeMovs) ListByEscola(_ context.Context, tenantID, escolaID, produtoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimentacaoEstoque, error) {
	var out []*entity.MovimentacaoEstoque
	for i := len(f.movs) - 1; i >= 0; i-- {
		m := f.movs[i]
		if m.TenantID != tenantID || m.EscolaID != escolaID {
			continue
		}
		if produtoID != "" && m.ProdutoID != produtoID {
			continue
		}
		out = append(out, m)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeTx aplica fn sobre cópias e só as publica se fn não falhar (rollback implícito).
type fakeTx struct {
	lotes *fakeLotes
	movs  *fakeMovs
	runs  int
}

func (f *fakeTx) Run(_ context.Context, fn func(repository.LoteRepository, repository.MovimentacaoRepository) error) error {
	f.runs++
	lotes := f.lotes.clone()
	movs := &fakeMovs{}
	if err := fn(lotes, movs); err != nil {
		return err
	}
	f.lotes.lotes = lotes.lotes
	f.lotes.ordem = lotes.ordem
	f.lotes.updates += lotes.updates
	f.movs.movs = append(f.movs.movs, movs.movs...)
	return nil
}

// fakeItens consolida os lotes ativos por produto, como a view do banco.
type fakeItens struct {
	lotes    *fakeLotes
	produtos fakeProdutos
	calls    int
}

func (f *fakeItens) ListItens(_ context.Context, tenantID, escolaID string) ([]*entity.ItemEstoqueEscola, error) {
	f.calls++
	por := map[string]*entity.ItemEstoqueEscola{}
	for _, id := range f.lotes.ordem {
		l := f.lotes.lotes[id]
		if l.TenantID != tenantID || l.EscolaID != escolaID || l.Status != entity.LoteStatusAtivo {
			continue
		}
		it, ok := por[l.ProdutoID]
		if !ok {
			p := f.produtos[l.ProdutoID]
			it = &entity.ItemEstoqueEscola{TenantID: tenantID, EscolaID: escolaID, ProdutoID: l.ProdutoID, ProdutoNome: p.Nome, Categoria: p.Categoria, Unidade: p.Unidade}
			por[l.ProdutoID] = it
		}
		it.Quantidade = it.Quantidade.Add(l.QuantidadeAtual)
		it.TotalLotes++
		if l.DataValidade != nil && (it.ProximaValidade == nil || l.DataValidade.Before(*it.ProximaValidade)) {
			v := *l.DataValidade
			it.ProximaValidade = &v
		}
	}
	out := make([]*entity.ItemEstoqueEscola, 0, len(por))
	for _, it := range por {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProdutoNome < out[j].ProdutoNome })
	return out, nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *fakeCache) SetNX(_ context.Context, key string, value []byte, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = value
	return true, nil
}

type fakeCSV struct{ itens int }

func (f *fakeCSV) ExportEstoque(_ context.Context, itens []*entity.ItemEstoqueEscola) ([]byte, error) {
	f.itens = len(itens)
	return []byte("produto_id,quantidade\n"), nil
}
