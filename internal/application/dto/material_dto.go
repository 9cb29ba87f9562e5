package dto

import "time"

// CreateMaterialRequest body para POST /api/materials.
type CreateMaterialRequest struct {
	Name              string `json:"name"`
	SKUCode           string `json:"sku_code,omitempty"`
	Type              string `json:"type"`
	InitialStock      int64  `json:"initial_stock,omitempty"`
	LowStockThreshold int64  `json:"low_stock_threshold,omitempty"`
}

// UpdateMaterialRequest body para PUT /api/materials/:id. Solo campos
// no-stock: el contador se modifica únicamente vía restock/use/adjust.
type UpdateMaterialRequest struct {
	Name              *string `json:"name,omitempty"`
	SKUCode           *string `json:"sku_code,omitempty"`
	Type              *string `json:"type,omitempty"`
	LowStockThreshold *int64  `json:"low_stock_threshold,omitempty"`
}

// RestockRequest body para POST /api/materials/:id/restock.
type RestockRequest struct {
	Quantity int64  `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// UseRequest body para POST /api/materials/:id/use.
type UseRequest struct {
	Quantity int64  `json:"quantity"`
	SKUCode  string `json:"sku_code,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// AdjustRequest body para POST /api/materials/:id/adjust. NewStock es el
// valor absoluto objetivo, no un delta.
type AdjustRequest struct {
	NewStock int64  `json:"new_stock"`
	Notes    string `json:"notes,omitempty"`
}

// MaterialResponse representación de un material.
type MaterialResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	SKUCode           string    `json:"sku_code,omitempty"`
	Type              string    `json:"type"`
	CurrentStock      int64     `json:"current_stock"`
	LowStockThreshold int64     `json:"low_stock_threshold"`
	LowStock          bool      `json:"low_stock"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TransactionResponse una fila del historial del ledger, enriquecida.
type TransactionResponse struct {
	ID           string    `json:"id"`
	MaterialID   string    `json:"material_id"`
	MaterialName string    `json:"material_name"`
	Quantity     int64     `json:"quantity"` // delta firmado
	Type         string    `json:"type"`
	SKUCode      string    `json:"sku_code,omitempty"`
	UserName     string    `json:"user_name,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
