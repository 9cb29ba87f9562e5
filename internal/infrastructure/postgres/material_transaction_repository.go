package postgres

import (
	"context"
	"fmt"

	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
)

var _ repository.MaterialTransactionRepository = (*MaterialTransactionRepo)(nil)

// MaterialTransactionRepo implementación del historial del ledger sobre
// PostgreSQL (usable con pool o tx). Las filas son inmutables.
type MaterialTransactionRepo struct {
	q Querier
}

// NewMaterialTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialTransactionRepository(q Querier) *MaterialTransactionRepo {
	return &MaterialTransactionRepo{q: q}
}

// Create persiste una transacción del ledger.
func (r *MaterialTransactionRepo) Create(tx *entity.MaterialTransaction) error {
	query := `
		INSERT INTO material_transactions (id, material_id, quantity, type, sku_code, user_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	skuCode := (*string)(nil)
	if tx.SKUCode != "" {
		skuCode = &tx.SKUCode
	}
	userID := (*string)(nil)
	if tx.UserID != "" {
		userID = &tx.UserID
	}
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.MaterialID, tx.Quantity, tx.Type, skuCode, userID, tx.Notes, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create material transaction: %w", err)
	}
	return nil
}

// List devuelve las transacciones más recientes primero, enriquecidas con
// nombre de material y de actor. materialID vacío = todas.
func (r *MaterialTransactionRepo) List(materialID string, limit int) ([]*entity.MaterialTransaction, error) {
	query := `
		SELECT t.id, t.material_id, t.quantity, t.type, t.sku_code, t.user_id, t.notes, t.created_at,
		       m.name, COALESCE(u.name, '')
		FROM material_transactions t
		JOIN materials m ON m.id = t.material_id
		LEFT JOIN users u ON u.id = t.user_id`
	args := []any{}
	if materialID != "" {
		query += ` WHERE t.material_id = $1`
		args = append(args, materialID)
	}
	query += fmt.Sprintf(` ORDER BY t.created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list material transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaterialTransaction
	for rows.Next() {
		var t entity.MaterialTransaction
		var skuCode, userID *string
		if err := rows.Scan(&t.ID, &t.MaterialID, &t.Quantity, &t.Type, &skuCode, &userID,
			&t.Notes, &t.CreatedAt, &t.MaterialName, &t.UserName); err != nil {
			return nil, fmt.Errorf("scan material transaction: %w", err)
		}
		if skuCode != nil {
			t.SKUCode = *skuCode
		}
		if userID != nil {
			t.UserID = *userID
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// DeleteByMaterial elimina todo el historial de un material (cascada previa
// al borrado del material padre, misma tx).
func (r *MaterialTransactionRepo) DeleteByMaterial(materialID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM material_transactions WHERE material_id = $1`, materialID)
	if err != nil {
		return fmt.Errorf("delete material transactions: %w", err)
	}
	return nil
}
