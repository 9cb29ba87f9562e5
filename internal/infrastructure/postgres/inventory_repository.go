package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de los baldes staged/filled/cased sobre
// PostgreSQL (usable con pool o tx). La fila por SKU es implícita: Get de
// un SKU sin fila devuelve baldes en cero y Upsert la crea.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene los baldes de un SKU.
func (r *InventoryRepo) Get(skuID string) (*entity.Inventory, error) {
	query := `
		SELECT sku_id, staged, filled, cased, updated_at
		FROM inventory WHERE sku_id = $1`
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, skuID).Scan(
		&inv.SKUID, &inv.Staged, &inv.Filled, &inv.Cased, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventory{SKUID: skuID}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// GetForUpdate obtiene los baldes y bloquea la fila (SELECT FOR UPDATE).
// Materializa primero la fila implícita: sobre una fila inexistente el
// SELECT FOR UPDATE no bloquea nada, y dos escritores concurrentes del
// primer movimiento de un SKU se pisarían el Upsert entre sí.
func (r *InventoryRepo) GetForUpdate(skuID string) (*entity.Inventory, error) {
	insert := `
		INSERT INTO inventory (sku_id, staged, filled, cased, updated_at)
		VALUES ($1, 0, 0, 0, now())
		ON CONFLICT (sku_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, skuID); err != nil {
		return nil, fmt.Errorf("init inventory row: %w", err)
	}
	query := `
		SELECT sku_id, staged, filled, cased, updated_at
		FROM inventory WHERE sku_id = $1
		FOR UPDATE`
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, skuID).Scan(
		&inv.SKUID, &inv.Staged, &inv.Filled, &inv.Cased, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &inv, nil
}

// Upsert inserta o actualiza los baldes de un SKU.
func (r *InventoryRepo) Upsert(inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (sku_id, staged, filled, cased, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (sku_id)
		DO UPDATE SET staged = EXCLUDED.staged, filled = EXCLUDED.filled, cased = EXCLUDED.cased, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, inv.SKUID, inv.Staged, inv.Filled, inv.Cased)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// ListAll devuelve los baldes de todos los SKUs con fila de inventario.
func (r *InventoryRepo) ListAll() ([]*entity.Inventory, error) {
	query := `SELECT sku_id, staged, filled, cased, updated_at FROM inventory`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.SKUID, &inv.Staged, &inv.Filled, &inv.Cased, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
