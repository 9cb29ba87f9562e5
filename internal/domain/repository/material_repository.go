package repository

import (
	"time"

	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
// GetForUpdate se usa dentro de transacciones del ledger para bloquear la
// fila del contador antes de leer-modificar-escribir.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetByNormalizedName(normalizedName string) (*entity.Material, error)
	Update(material *entity.Material) error
	// UpdateStock fija el contador y updated_at; el timestamp lo pone el
	// caller para que la fila y su transacción de auditoría coincidan.
	UpdateStock(id string, newStock int64, updatedAt time.Time) error
	List() ([]*entity.Material, error)
	Delete(id string) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Material, error)
}
