package repository

import "github.com/stokespro/cake-crm-sub002/internal/domain/entity"

// InventoryRepository define el puerto para los baldes staged/filled/cased.
// La fila es implícita: Get de un SKU sin fila devuelve baldes en cero y
// Upsert la crea. Usado dentro de transacciones del pipeline.
type InventoryRepository interface {
	Get(skuID string) (*entity.Inventory, error)
	Upsert(inv *entity.Inventory) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(skuID string) (*entity.Inventory, error)
	// ListAll devuelve los niveles de todos los SKUs activos (proyección).
	ListAll() ([]*entity.Inventory, error)
}
