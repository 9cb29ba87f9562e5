package entity

import "time"

// SKU producto terminado del catálogo. El CRUD del catálogo vive en otro
// subsistema; aquí se lee para enlazar inventario, tareas y demanda.
type SKU struct {
	ID        string
	Code      string // ej. "X001"
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
