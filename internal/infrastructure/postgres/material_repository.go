package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stokespro/cake-crm-sub002/internal/domain"
	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, name, name_normalized, sku_code, type, current_stock, low_stock_threshold, created_at, updated_at`

// Create persiste un material nuevo.
func (r *MaterialRepo) Create(material *entity.Material) error {
	query := `
		INSERT INTO materials (id, name, name_normalized, sku_code, type, current_stock, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	skuCode := (*string)(nil)
	if material.SKUCode != "" {
		skuCode = &material.SKUCode
	}
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.NormalizedName, skuCode, material.Type,
		material.CurrentStock, material.LowStockThreshold, material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get material")
}

// GetByNormalizedName obtiene un material por nombre normalizado (detección de duplicados).
func (r *MaterialRepo) GetByNormalizedName(normalizedName string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE name_normalized = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, normalizedName), "get material by name")
}

// GetForUpdate obtiene el material y bloquea la fila (SELECT FOR UPDATE).
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get material for update")
}

// Update actualiza los campos no-stock de un material.
func (r *MaterialRepo) Update(material *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, name_normalized = $3, sku_code = $4, type = $5, low_stock_threshold = $6, updated_at = $7
		WHERE id = $1`
	skuCode := (*string)(nil)
	if material.SKUCode != "" {
		skuCode = &material.SKUCode
	}
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.NormalizedName, skuCode,
		material.Type, material.LowStockThreshold, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo el contador (usado por el ledger dentro de tx).
// El timestamp viene del caller: la fila del material y la transacción de
// auditoría de la misma operación llevan la misma marca.
func (r *MaterialRepo) UpdateStock(id string, newStock int64, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE materials SET current_stock = $2, updated_at = $3 WHERE id = $1`,
		id, newStock, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material stock: %w", err)
	}
	return nil
}

// List lista todos los materiales por nombre.
func (r *MaterialRepo) List() ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete elimina un material por ID. El historial se borra antes, en la misma tx.
func (r *MaterialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) scanOne(row pgx.Row, op string) (*entity.Material, error) {
	m, err := scanMaterial(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	var skuCode *string
	err := row.Scan(
		&m.ID, &m.Name, &m.NormalizedName, &skuCode, &m.Type,
		&m.CurrentStock, &m.LowStockThreshold, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if skuCode != nil {
		m.SKUCode = *skuCode
	}
	return &m, nil
}
