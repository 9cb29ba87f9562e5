package entity

import "time"

// Material materia prima o insumo de empaque (cajas, etiquetas, bases).
// CurrentStock solo se modifica vía el ledger de materiales; nunca directo.
type Material struct {
	ID                string
	Name              string
	NormalizedName    string // minúsculas sin acentos, para detección de duplicados
	SKUCode           string // opcional, código interno del proveedor
	Type              string // categoría: packaging, ingredient, label...
	CurrentStock      int64
	LowStockThreshold int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el stock actual está en o por debajo del umbral.
func (m *Material) IsLowStock() bool {
	return m.CurrentStock <= m.LowStockThreshold
}
