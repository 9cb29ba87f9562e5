package entity

import "time"

// Inventory los tres baldes secuenciales de producto terminado por SKU.
// Staged+Filled+Cased representa todas las unidades físicas sin despachar.
// Solo las transiciones del pipeline (y el override manual) lo modifican.
type Inventory struct {
	SKUID     string
	Staged    int64
	Filled    int64
	Cased     int64
	UpdatedAt time.Time
}

// Total unidades sin despachar en los tres baldes.
func (i *Inventory) Total() int64 {
	return i.Staged + i.Filled + i.Cased
}
