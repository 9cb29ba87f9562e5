package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido relevantes para la agregación de demanda.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order pedido de un dispensario. Propiedad del subsistema CRM; aquí es
// entrada de solo lectura para la agregación de demanda y las proyecciones.
type Order struct {
	ID           string
	DispensaryID string
	Status       string
	DeliveryDate time.Time
	Notes        string
	CreatedAt    time.Time

	// Campos de presentación (JOIN).
	DispensaryName string
	Items          []OrderItem
}

// OrderItem línea de pedido: cantidad solicitada de un SKU a un precio.
type OrderItem struct {
	ID        string
	OrderID   string
	SKUID     string
	SKUCode   string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Total importe de la línea (cantidad × precio unitario).
func (i OrderItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Total importe del pedido sumando todas las líneas.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Total())
	}
	return total
}
