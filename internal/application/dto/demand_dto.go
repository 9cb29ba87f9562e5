package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemandEntry demanda agregada de un SKU sobre pedidos abiertos.
type DemandEntry struct {
	Total    int64 `json:"total"`
	Urgent   int64 `json:"urgent"`   // entrega hoy o vencida
	Tomorrow int64 `json:"tomorrow"` // entrega mañana
}

// DemandSummary mapa código de SKU → demanda agregada.
type DemandSummary map[string]DemandEntry

// OrderItemDTO línea de pedido en la proyección de pedidos confirmados.
type OrderItemDTO struct {
	SKUCode   string          `json:"sku_code"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// ConfirmedOrderDTO pedido confirmado con dispensario y líneas.
type ConfirmedOrderDTO struct {
	ID             string          `json:"id"`
	DispensaryName string          `json:"dispensary_name"`
	DeliveryDate   time.Time       `json:"delivery_date"`
	Status         string          `json:"status"`
	Items          []OrderItemDTO  `json:"items"`
	Total          decimal.Decimal `json:"total"`
}
