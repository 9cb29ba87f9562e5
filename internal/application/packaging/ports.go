package packaging

import (
	"context"

	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
)

// PipelineTxRunner ejecuta una función dentro de una transacción de BD con
// los repositorios del pipeline atados a esa tx. El movimiento de baldes y
// la actualización de la tarea se confirman como una sola unidad.
type PipelineTxRunner interface {
	RunPipeline(ctx context.Context, fn func(
		inventoryRepo repository.InventoryRepository,
		taskRepo repository.PackagingTaskRepository,
	) error) error
}
