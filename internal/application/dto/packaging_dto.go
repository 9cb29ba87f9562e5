package dto

import "time"

// ScheduleTaskRequest body para POST /api/packaging/tasks.
type ScheduleTaskRequest struct {
	SKUID    string `json:"sku_id"`
	Quantity int64  `json:"quantity"`
}

// AddStagedRequest body para POST /api/packaging/staged.
type AddStagedRequest struct {
	SKUID    string `json:"sku_id"`
	Quantity int64  `json:"quantity"`
}

// OverrideInventoryRequest body para PUT /api/packaging/inventory/:skuID.
// Valores absolutos, no deltas; los campos omitidos no se tocan.
// Camino de corrección manual sin validación de suficiencia.
type OverrideInventoryRequest struct {
	Staged *int64 `json:"staged,omitempty"`
	Filled *int64 `json:"filled,omitempty"`
	Cased  *int64 `json:"cased,omitempty"`
}

// InventoryResponse los tres baldes de un SKU.
type InventoryResponse struct {
	SKUID     string    `json:"sku_id"`
	SKUCode   string    `json:"sku_code,omitempty"`
	SKUName   string    `json:"sku_name,omitempty"`
	Staged    int64     `json:"staged"`
	Filled    int64     `json:"filled"`
	Cased     int64     `json:"cased"`
	Total     int64     `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskResponse una tarea del tablero de empaque.
type TaskResponse struct {
	ID            string     `json:"id"`
	SKUID         string     `json:"sku_id"`
	SKUCode       string     `json:"sku_code,omitempty"`
	SKUName       string     `json:"sku_name,omitempty"`
	Quantity      int64      `json:"quantity"`
	CurrentColumn string     `json:"current_column"`
	TaskType      string     `json:"task_type"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
