package packaging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stokespro/cake-crm-sub002/internal/application/dto"
	"github.com/stokespro/cake-crm-sub002/internal/domain"
	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
	"github.com/stokespro/cake-crm-sub002/pkg/logger"
)

// PipelineUseCase opera el tablero de empaque: tres baldes por SKU
// (staged, filled, cased) y una tarea por unidad de trabajo en curso.
// Cada avance o reversa mueve la cantidad de la tarea entre exactamente
// dos baldes y cambia la columna, en una sola transacción SQL.
//
// Los avances validan suficiencia; las reversas y el override manual NO:
// son caminos de corrección del operador y pueden dejar baldes negativos
// a propósito.
type PipelineUseCase struct {
	txRunner      PipelineTxRunner
	inventoryRepo repository.InventoryRepository
	taskRepo      repository.PackagingTaskRepository
	skuRepo       repository.SKURepository
	log           *logger.Logger
}

// NewPipelineUseCase construye el caso de uso.
func NewPipelineUseCase(
	txRunner PipelineTxRunner,
	inventoryRepo repository.InventoryRepository,
	taskRepo repository.PackagingTaskRepository,
	skuRepo repository.SKURepository,
	log *logger.Logger,
) *PipelineUseCase {
	return &PipelineUseCase{
		txRunner:      txRunner,
		inventoryRepo: inventoryRepo,
		taskRepo:      taskRepo,
		skuRepo:       skuRepo,
		log:           log,
	}
}

// ScheduleTask crea una tarea en TO_FILL para stock ya puesto en staged.
// No mueve ningún balde: el paso de programación solo registra el trabajo.
func (uc *PipelineUseCase) ScheduleTask(ctx context.Context, in dto.ScheduleTaskRequest) (*dto.TaskResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	sku, err := uc.skuRepo.GetByID(in.SKUID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	task := &entity.PackagingTask{
		ID:            uuid.New().String(),
		SKUID:         in.SKUID,
		Quantity:      in.Quantity,
		CurrentColumn: entity.ColumnToFill,
		TaskType:      entity.TaskTypeFill,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.taskRepo.Create(task); err != nil {
		return nil, err
	}
	task.SKUCode = sku.Code
	task.SKUName = sku.Name
	return toTaskResponse(task), nil
}

// AdvanceTask avanza una tarea a la siguiente columna moviendo su cantidad
// entre los dos baldes implicados:
//
//	TO_FILL → TO_CASE: staged -= qty, filled += qty (guarda: staged >= qty)
//	TO_CASE → DONE:    filled -= qty, cased  += qty (guarda: filled >= qty)
//
// Si la guarda falla, no se muta nada. DONE no avanza.
func (uc *PipelineUseCase) AdvanceTask(ctx context.Context, taskID string) (*dto.TaskResponse, error) {
	var result *entity.PackagingTask
	err := uc.txRunner.RunPipeline(ctx, func(
		inventoryRepo repository.InventoryRepository,
		taskRepo repository.PackagingTaskRepository,
	) error {
		task, err := taskRepo.GetForUpdate(taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return domain.ErrNotFound
		}
		inv, err := inventoryRepo.GetForUpdate(task.SKUID)
		if err != nil {
			return err
		}
		now := time.Now()
		switch task.CurrentColumn {
		case entity.ColumnToFill:
			if inv.Staged < task.Quantity {
				return domain.ErrInsufficientStock
			}
			inv.Staged -= task.Quantity
			inv.Filled += task.Quantity
			task.CurrentColumn = entity.ColumnToCase
			task.TaskType = entity.TaskTypeCase
		case entity.ColumnToCase:
			if inv.Filled < task.Quantity {
				return domain.ErrInsufficientStock
			}
			inv.Filled -= task.Quantity
			inv.Cased += task.Quantity
			task.CurrentColumn = entity.ColumnDone
			task.CompletedAt = &now
		default:
			return domain.ErrInvalidInput
		}
		inv.UpdatedAt = now
		task.UpdatedAt = now
		if err := inventoryRepo.Upsert(inv); err != nil {
			return err
		}
		if err := taskRepo.Update(task); err != nil {
			return err
		}
		result = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTaskResponse(result), nil
}

// RevertTask devuelve una tarea a la columna anterior, deshaciendo el
// movimiento de baldes:
//
//	TO_CASE → TO_FILL: filled -= qty, staged += qty
//	DONE    → TO_CASE: cased  -= qty, filled += qty (limpia completed_at)
//
// Sin guarda de suficiencia: es una corrección de operador y puede dejar
// un balde negativo. TO_FILL no retrocede.
func (uc *PipelineUseCase) RevertTask(ctx context.Context, taskID string) (*dto.TaskResponse, error) {
	var result *entity.PackagingTask
	err := uc.txRunner.RunPipeline(ctx, func(
		inventoryRepo repository.InventoryRepository,
		taskRepo repository.PackagingTaskRepository,
	) error {
		task, err := taskRepo.GetForUpdate(taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return domain.ErrNotFound
		}
		inv, err := inventoryRepo.GetForUpdate(task.SKUID)
		if err != nil {
			return err
		}
		now := time.Now()
		switch task.CurrentColumn {
		case entity.ColumnToCase:
			inv.Filled -= task.Quantity
			inv.Staged += task.Quantity
			task.CurrentColumn = entity.ColumnToFill
			task.TaskType = entity.TaskTypeFill
		case entity.ColumnDone:
			inv.Cased -= task.Quantity
			inv.Filled += task.Quantity
			task.CurrentColumn = entity.ColumnToCase
			task.TaskType = entity.TaskTypeCase
			task.CompletedAt = nil
		default:
			return domain.ErrInvalidInput
		}
		inv.UpdatedAt = now
		task.UpdatedAt = now
		if err := inventoryRepo.Upsert(inv); err != nil {
			return err
		}
		if err := taskRepo.Update(task); err != nil {
			return err
		}
		result = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTaskResponse(result), nil
}

// AddStaged suma stock recién producido al balde staged de un SKU.
// No crea tarea: la programación es un paso aparte (ScheduleTask).
func (uc *PipelineUseCase) AddStaged(ctx context.Context, in dto.AddStagedRequest) (*dto.InventoryResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	sku, err := uc.skuRepo.GetByID(in.SKUID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, domain.ErrNotFound
	}
	var result *entity.Inventory
	err = uc.txRunner.RunPipeline(ctx, func(
		inventoryRepo repository.InventoryRepository,
		taskRepo repository.PackagingTaskRepository,
	) error {
		inv, err := inventoryRepo.GetForUpdate(in.SKUID)
		if err != nil {
			return err
		}
		inv.Staged += in.Quantity
		inv.UpdatedAt = time.Now()
		if err := inventoryRepo.Upsert(inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInventoryResponse(result, sku), nil
}

// OverrideInventory fija valores ABSOLUTOS en los baldes indicados, sin
// validación de suficiencia ni de coherencia con las tareas: es el camino
// de corrección manual del operador y se registra como manual_adjustment.
func (uc *PipelineUseCase) OverrideInventory(ctx context.Context, skuID, actorID string, in dto.OverrideInventoryRequest) (*dto.InventoryResponse, error) {
	if in.Staged == nil && in.Filled == nil && in.Cased == nil {
		return nil, domain.ErrInvalidInput
	}
	sku, err := uc.skuRepo.GetByID(skuID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, domain.ErrNotFound
	}
	var result *entity.Inventory
	err = uc.txRunner.RunPipeline(ctx, func(
		inventoryRepo repository.InventoryRepository,
		taskRepo repository.PackagingTaskRepository,
	) error {
		inv, err := inventoryRepo.GetForUpdate(skuID)
		if err != nil {
			return err
		}
		if in.Staged != nil {
			inv.Staged = *in.Staged
		}
		if in.Filled != nil {
			inv.Filled = *in.Filled
		}
		if in.Cased != nil {
			inv.Cased = *in.Cased
		}
		inv.UpdatedAt = time.Now()
		if err := inventoryRepo.Upsert(inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Una sola entrada de log por override, con los valores finales.
	uc.log.Warn().
		Str("event", "manual_adjustment").
		Str("sku_id", skuID).
		Str("sku_code", sku.Code).
		Str("user_id", actorID).
		Int64("staged", result.Staged).
		Int64("filled", result.Filled).
		Int64("cased", result.Cased).
		Msg("inventario ajustado manualmente")
	return toInventoryResponse(result, sku), nil
}

// GetInventory devuelve los baldes actuales de un SKU.
func (uc *PipelineUseCase) GetInventory(skuID string) (*dto.InventoryResponse, error) {
	sku, err := uc.skuRepo.GetByID(skuID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.inventoryRepo.Get(skuID)
	if err != nil {
		return nil, err
	}
	return toInventoryResponse(inv, sku), nil
}

func toTaskResponse(t *entity.PackagingTask) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	return &dto.TaskResponse{
		ID:            t.ID,
		SKUID:         t.SKUID,
		SKUCode:       t.SKUCode,
		SKUName:       t.SKUName,
		Quantity:      t.Quantity,
		CurrentColumn: t.CurrentColumn,
		TaskType:      t.TaskType,
		CompletedAt:   t.CompletedAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func toInventoryResponse(inv *entity.Inventory, sku *entity.SKU) *dto.InventoryResponse {
	if inv == nil {
		return nil
	}
	resp := &dto.InventoryResponse{
		SKUID:     inv.SKUID,
		Staged:    inv.Staged,
		Filled:    inv.Filled,
		Cased:     inv.Cased,
		Total:     inv.Total(),
		UpdatedAt: inv.UpdatedAt,
	}
	if sku != nil {
		resp.SKUCode = sku.Code
		resp.SKUName = sku.Name
	}
	return resp
}
