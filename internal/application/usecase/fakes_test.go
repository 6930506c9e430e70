package usecase

import (
	"context"
	"sort"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

type fakeTenants struct {
	byID    map[string]*entity.Tenant
	modules []*entity.TenantModule
}

func newFakeTenants() *fakeTenants { return &fakeTenants{byID: map[string]*entity.Tenant{}} }

func (f *fakeTenants) Create(_ context.Context, t *entity.Tenant) error {
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return f.byID[id], nil
}

func (f *fakeTenants) GetBySlug(_ context.Context, slug string) (*entity.Tenant, error) {
	for _, t := range f.byID {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTenants) Update(_ context.Context, t *entity.Tenant) error {
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTenants) List(context.Context, int, int) ([]*entity.Tenant, error) {
	out := make([]*entity.Tenant, 0, len(f.byID))
	for _, t := range f.byID {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTenants) HasActiveModule(_ context.Context, tenantID, module string) (bool, error) {
	for _, m := range f.modules {
		if m.TenantID == tenantID && m.ModuleName == module {
			return m.IsActive, nil
		}
	}
	return false, nil
}

func (f *fakeTenants) SetModule(_ context.Context, m *entity.TenantModule) error {
	f.modules = append(f.modules, m)
	return nil
}

type fakeEscolas map[string]*entity.Escola

func (f fakeEscolas) Create(_ context.Context, e *entity.Escola) error {
	f[e.ID] = e
	return nil
}

func (f fakeEscolas) GetByID(_ context.Context, tenantID, id string) (*entity.Escola, error) {
	e := f[id]
	if e == nil || e.TenantID != tenantID {
		return nil, nil
	}
	return e, nil
}

func (f fakeEscolas) Update(_ context.Context, e *entity.Escola) error {
	f[e.ID] = e
	return nil
}

func (f fakeEscolas) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Escola, error) {
	var out []*entity.Escola
	for _, e := range f {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeProdutos map[string]*entity.Produto

func (f fakeProdutos) Create(_ context.Context, p *entity.Produto) error {
	f[p.ID] = p
	return nil
}

func (f fakeProdutos) GetByID(_ context.Context, tenantID, id string) (*entity.Produto, error) {
	p := f[id]
	if p == nil || p.TenantID != tenantID {
		return nil, nil
	}
	return p, nil
}

func (f fakeProdutos) Update(_ context.Context, p *entity.Produto) error {
	f[p.ID] = p
	return nil
}

func (f fakeProdutos) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Produto, error) {
	var out []*entity.Produto
	for _, p := range f {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeContratos struct {
	byID map[string]*entity.Contrato
}

func newFakeContratos() *fakeContratos { return &fakeContratos{byID: map[string]*entity.Contrato{}} }

func (f *fakeContratos) Create(_ context.Context, c *entity.Contrato) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeContratos) GetByID(_ context.Context, tenantID, id string) (*entity.Contrato, error) {
	c := f.byID[id]
	if c == nil || c.TenantID != tenantID {
		return nil, nil
	}
	return c, nil
}

func (f *fakeContratos) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Contrato, error) {
	var out []*entity.Contrato
	for _, c := range f.byID {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContratos) GetProduto(_ context.Context, tenantID, id string) (*entity.ContratoProduto, error) {
	for _, c := range f.byID {
		if c.TenantID != tenantID {
			continue
		}
		for i := range c.Produtos {
			if c.Produtos[i].ID == id {
				cp := c.Produtos[i]
				return &cp, nil
			}
		}
	}
	return nil, nil
}

type fakeModalidades map[string]*entity.Modalidade

func (f fakeModalidades) Create(_ context.Context, m *entity.Modalidade) error {
	f[m.ID] = m
	return nil
}

func (f fakeModalidades) Update(_ context.Context, m *entity.Modalidade) error {
	f[m.ID] = m
	return nil
}

func (f fakeModalidades) GetByID(_ context.Context, tenantID, id string) (*entity.Modalidade, error) {
	m := f[id]
	if m == nil || m.TenantID != tenantID {
		return nil, nil
	}
	return m, nil
}

func (f fakeModalidades) ListByTenant(_ context.Context, tenantID string) ([]entity.Modalidade, error) {
	var out []entity.Modalidade
	for _, m := range f {
		if m.TenantID == tenantID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakePedidos map[string]*entity.Pedido

func (f fakePedidos) Create(_ context.Context, p *entity.Pedido) error {
	f[p.ID] = p
	return nil
}

func (f fakePedidos) GetByID(_ context.Context, tenantID, id string) (*entity.Pedido, error) {
	p := f[id]
	if p == nil || p.TenantID != tenantID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f fakePedidos) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Pedido, error) {
	return f.GetByID(ctx, tenantID, id)
}

func (f fakePedidos) UpdateStatus(_ context.Context, _, id, status string) error {
	f[id].Status = status
	return nil
}

func (f fakePedidos) ListByTenant(_ context.Context, tenantID, status string, _, _ int) ([]*entity.Pedido, error) {
	var out []*entity.Pedido
	for _, p := range f {
		if p.TenantID == tenantID && (status == "" || p.Status == status) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeDemandas map[string]*entity.Demanda

func (f fakeDemandas) Create(_ context.Context, d *entity.Demanda) error {
	f[d.ID] = d
	return nil
}

func (f fakeDemandas) GetByID(_ context.Context, tenantID, id string) (*entity.Demanda, error) {
	d := f[id]
	if d == nil || d.TenantID != tenantID {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f fakeDemandas) Update(_ context.Context, d *entity.Demanda) error {
	f[d.ID] = d
	return nil
}

func (f fakeDemandas) List(_ context.Context, tenantID string, filtro repository.DemandaFiltro) ([]*entity.Demanda, error) {
	var out []*entity.Demanda
	for _, d := range f {
		if d.TenantID != tenantID {
			continue
		}
		if filtro.EscolaID != "" && d.EscolaID != filtro.EscolaID {
			continue
		}
		if filtro.Status != "" && d.Status != filtro.Status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f fakeDemandas) Delete(_ context.Context, _, id string) error {
	delete(f, id)
	return nil
}
