package entity

import "time"

// Columnas del tablero de empaque. TO_FILL es el estado de entrada;
// DONE es terminal pero reversible a TO_CASE.
const (
	ColumnToFill = "TO_FILL"
	ColumnToCase = "TO_CASE"
	ColumnDone   = "DONE"
)

// Tipos de tarea según la próxima operación pendiente.
const (
	TaskTypeFill = "FILL"
	TaskTypeCase = "CASE"
)

// PackagingTask unidad de trabajo de empaque en curso: un SKU y una
// cantidad que avanza TO_FILL → TO_CASE → DONE moviendo stock entre
// exactamente dos baldes por transición. No se elimina en operación normal.
type PackagingTask struct {
	ID            string
	SKUID         string
	Quantity      int64
	CurrentColumn string // TO_FILL, TO_CASE, DONE
	TaskType      string // FILL, CASE
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Campos de presentación (JOIN).
	SKUCode string
	SKUName string
}

// IsDone indica si la tarea llegó a la columna terminal.
func (t *PackagingTask) IsDone() bool {
	return t.CurrentColumn == ColumnDone
}

// ValidColumn verifica pertenencia al enum de columnas.
func ValidColumn(c string) bool {
	return c == ColumnToFill || c == ColumnToCase || c == ColumnDone
}
