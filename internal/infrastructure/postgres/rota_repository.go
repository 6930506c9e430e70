package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
)

var _ repository.RotaRepository = (*RotaRepo)(nil)

// beginner é satisfeito por *pgxpool.Pool e por pgx.Tx (savepoint).
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RotaRepo implementação de RotaRepository sobre PostgreSQL.
type RotaRepo struct {
	q Querier
}

// NewRotaRepository constrói o adaptador de rotas.
func NewRotaRepository(q Querier) *RotaRepo {
	return &RotaRepo{q: q}
}

const rotaColumns = `id, tenant_id, nome, cor, descricao, ativo, created_at, updated_at`

func scanRota(row interface{ Scan(...any) error }) (*entity.RotaEntrega, error) {
	var r entity.RotaEntrega
	if err := row.Scan(&r.ID, &r.TenantID, &r.Nome, &r.Cor, &r.Descricao, &r.Ativo, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *RotaRepo) Create(ctx context.Context, rota *entity.RotaEntrega) error {
	query := `INSERT INTO rotas_entrega (` + rotaColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, rota.ID, rota.TenantID, rota.Nome, rota.Cor, rota.Descricao, rota.Ativo,
		rota.CreatedAt, rota.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert rota: %w", err)
	}
	return nil
}

func (r *RotaRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.RotaEntrega, error) {
	rota, err := scanRota(r.q.QueryRow(ctx, `SELECT `+rotaColumns+` FROM rotas_entrega WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rota: %w", err)
	}
	return rota, nil
}

func (r *RotaRepo) Update(ctx context.Context, rota *entity.RotaEntrega) error {
	query := `
		UPDATE rotas_entrega SET nome = $3, cor = $4, descricao = $5, ativo = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, rota.TenantID, rota.ID, rota.Nome, rota.Cor, rota.Descricao, rota.Ativo, rota.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update rota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RotaRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.RotaEntrega, error) {
	rows, err := r.q.Query(ctx, `SELECT `+rotaColumns+` FROM rotas_entrega WHERE tenant_id = $1 ORDER BY nome`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list rotas: %w", err)
	}
	defer rows.Close()
	var list []*entity.RotaEntrega
	for rows.Next() {
		rota, err := scanRota(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rota: %w", err)
		}
		list = append(list, rota)
	}
	return list, rows.Err()
}

func (r *RotaRepo) ListEscolas(ctx context.Context, tenantID, rotaID string) ([]*entity.EscolaEntrega, error) {
	query := `
		SELECT re.rota_id, e.id, e.nome, e.endereco, re.ordem,
			COUNT(i.id),
			COUNT(i.id) FILTER (WHERE i.status = 'entregue')
		FROM rota_escolas re
		JOIN escolas e ON e.id = re.escola_id
		LEFT JOIN itens_entrega i ON i.rota_id = re.rota_id AND i.escola_id = re.escola_id AND i.tenant_id = re.tenant_id
		WHERE re.tenant_id = $1 AND re.rota_id = $2
		GROUP BY re.rota_id, e.id, e.nome, e.endereco, re.ordem
		ORDER BY re.ordem`
	rows, err := r.q.Query(ctx, query, tenantID, rotaID)
	if err != nil {
		return nil, fmt.Errorf("list escolas da rota: %w", err)
	}
	defer rows.Close()
	var list []*entity.EscolaEntrega
	for rows.Next() {
		var e entity.EscolaEntrega
		if err := rows.Scan(&e.RotaID, &e.EscolaID, &e.EscolaNome, &e.Endereco, &e.Ordem, &e.TotalItens, &e.ItensEntregues); err != nil {
			return nil, fmt.Errorf("scan escola da rota: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SetEscolas apaga e regrava a associação numa transação (savepoint quando já dentro de uma).
func (r *RotaRepo) SetEscolas(ctx context.Context, tenantID, rotaID string, escolaIDs []string) error {
	b, ok := r.q.(beginner)
	if !ok {
		return r.setEscolas(ctx, r.q, tenantID, rotaID, escolaIDs)
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := r.setEscolas(ctx, tx, tenantID, rotaID, escolaIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RotaRepo) setEscolas(ctx context.Context, q Querier, tenantID, rotaID string, escolaIDs []string) error {
	if _, err := q.Exec(ctx, `DELETE FROM rota_escolas WHERE tenant_id = $1 AND rota_id = $2`, tenantID, rotaID); err != nil {
		return fmt.Errorf("limpar escolas da rota: %w", err)
	}
	if len(escolaIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO rota_escolas (rota_id, escola_id, tenant_id, ordem)
		SELECT $2, t.escola_id::uuid, $1, t.ordem
		FROM unnest($3::text[]) WITH ORDINALITY AS t(escola_id, ordem)`
	if _, err := q.Exec(ctx, query, tenantID, rotaID, escolaIDs); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: escola inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("gravar escolas da rota: %w", err)
	}
	return nil
}
