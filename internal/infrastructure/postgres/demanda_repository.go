package postgres

import (
	"context"
	"fmt"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.DemandaRepository = (*DemandaRepo)(nil)

// DemandaRepo implementação de DemandaRepository sobre PostgreSQL.
type DemandaRepo struct {
	q Querier
}

// NewDemandaRepository constrói o adaptador.
func NewDemandaRepository(q Querier) *DemandaRepo {
	return &DemandaRepo{q: q}
}

const demandaColumns = `id, tenant_id, escola_id, numero_oficio, objeto, descricao, data_solicitacao, data_resposta,
	status, observacoes, COALESCE(criado_por::text, ''), created_at, updated_at`

func scanDemanda(row interface{ Scan(...any) error }) (*entity.Demanda, error) {
	var d entity.Demanda
	if err := row.Scan(&d.ID, &d.TenantID, &d.EscolaID, &d.NumeroOficio, &d.Objeto, &d.Descricao,
		&d.DataSolicitacao, &d.DataResposta, &d.Status, &d.Observacoes, &d.CriadoPor, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DemandaRepo) Create(ctx context.Context, d *entity.Demanda) error {
	query := `
		INSERT INTO demandas (id, tenant_id, escola_id, numero_oficio, objeto, descricao, data_solicitacao,
			data_resposta, status, observacoes, criado_por, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query, d.ID, d.TenantID, d.EscolaID, d.NumeroOficio, d.Objeto, d.Descricao,
		d.DataSolicitacao, d.DataResposta, d.Status, d.Observacoes, nullUUID(d.CriadoPor), d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert demanda: %w", err)
	}
	return nil
}

func (r *DemandaRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Demanda, error) {
	d, err := scanDemanda(r.q.QueryRow(ctx, `SELECT `+demandaColumns+` FROM demandas WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get demanda: %w", err)
	}
	return d, nil
}

func (r *DemandaRepo) Update(ctx context.Context, d *entity.Demanda) error {
	query := `
		UPDATE demandas SET status = $3, data_resposta = $4, observacoes = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, d.TenantID, d.ID, d.Status, d.DataResposta, d.Observacoes, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update demanda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List mais antigas primeiro; escola e status vazios não filtram.
func (r *DemandaRepo) List(ctx context.Context, tenantID string, f repository.DemandaFiltro) ([]*entity.Demanda, error) {
	limit, offset := limitOffset(f.Limit, f.Offset)
	query := `
		SELECT ` + demandaColumns + ` FROM demandas
		WHERE tenant_id = $1 AND ($2 = '' OR escola_id::text = $2) AND ($3 = '' OR status = $3)
		ORDER BY data_solicitacao, created_at
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, tenantID, f.EscolaID, f.Status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list demandas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Demanda
	for rows.Next() {
		d, err := scanDemanda(rows)
		if err != nil {
			return nil, fmt.Errorf("scan demanda: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DemandaRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM demandas WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete demanda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
