package repository

import "github.com/stokespro/cake-crm-sub002/internal/domain/entity"

// MaterialTransactionRepository define el puerto del historial del ledger.
// Las filas son inmutables: solo Create, List y el borrado en cascada.
type MaterialTransactionRepository interface {
	Create(tx *entity.MaterialTransaction) error
	// List devuelve las más recientes primero, enriquecidas con nombre de
	// material y de actor. materialID vacío = todas.
	List(materialID string, limit int) ([]*entity.MaterialTransaction, error)
	// DeleteByMaterial elimina el historial completo de un material
	// (cascada previa al borrado del material padre).
	DeleteByMaterial(materialID string) error
}
