package entity

import "time"

// Tipos de transacción del ledger de materiales.
const (
	TransactionInitial    = "initial"    // carga inicial al crear el material
	TransactionRestock    = "restock"    // entrada de stock
	TransactionUsage      = "usage"      // consumo (delta negativo)
	TransactionAdjustment = "adjustment" // ajuste manual (delta con signo)
)

// MaterialTransaction registro inmutable del ledger: cada cambio de
// CurrentStock genera exactamente una fila con el delta firmado.
// Nunca se actualiza ni se borra individualmente; solo en cascada al
// eliminar el material padre.
type MaterialTransaction struct {
	ID         string
	MaterialID string
	Quantity   int64  // delta firmado: +restock/initial, -usage, ± adjustment
	Type       string // initial, restock, usage, adjustment
	SKUCode    string // opcional: SKU que consumió el material
	UserID     string // opcional: actor que originó el movimiento
	Notes      string
	CreatedAt  time.Time

	// Campos de presentación (JOIN), no persistidos en material_transactions.
	MaterialName string
	UserName     string
}
