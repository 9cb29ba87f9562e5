package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
)

var _ repository.SKURepository = (*SKURepo)(nil)

// SKURepo lectura del catálogo de SKUs sobre PostgreSQL. El CRUD del
// catálogo vive en otro subsistema; aquí solo se consulta.
type SKURepo struct {
	q Querier
}

// NewSKURepository construye el adaptador. Pasar pool o tx (Querier).
func NewSKURepository(q Querier) *SKURepo {
	return &SKURepo{q: q}
}

// GetByID obtiene un SKU por ID.
func (r *SKURepo) GetByID(id string) (*entity.SKU, error) {
	query := `SELECT id, code, name, active, created_at, updated_at FROM skus WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get sku")
}

// GetByCode obtiene un SKU por código.
func (r *SKURepo) GetByCode(code string) (*entity.SKU, error) {
	query := `SELECT id, code, name, active, created_at, updated_at FROM skus WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get sku by code")
}

// ListActive lista los SKUs activos por código.
func (r *SKURepo) ListActive() ([]*entity.SKU, error) {
	query := `SELECT id, code, name, active, created_at, updated_at FROM skus WHERE active ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	defer rows.Close()
	var list []*entity.SKU
	for rows.Next() {
		var s entity.SKU
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SKURepo) scanOne(row pgx.Row, op string) (*entity.SKU, error) {
	var s entity.SKU
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
