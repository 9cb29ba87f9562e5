package demand

import (
	"time"

	"github.com/stokespro/cake-crm-sub002/internal/application/dto"
	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
)

// DemandUseCase proyecciones de solo lectura: demanda agregada sobre
// pedidos abiertos y vistas de inventario, tareas y pedidos confirmados.
// No muta nada y no cachea: cada llamada recalcula contra la BD.
type DemandUseCase struct {
	orderRepo     repository.OrderRepository
	inventoryRepo repository.InventoryRepository
	taskRepo      repository.PackagingTaskRepository
	skuRepo       repository.SKURepository
}

// NewDemandUseCase construye el caso de uso.
func NewDemandUseCase(
	orderRepo repository.OrderRepository,
	inventoryRepo repository.InventoryRepository,
	taskRepo repository.PackagingTaskRepository,
	skuRepo repository.SKURepository,
) *DemandUseCase {
	return &DemandUseCase{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		taskRepo:      taskRepo,
		skuRepo:       skuRepo,
	}
}

// GetDemandSummary acumula la cantidad solicitada por SKU sobre los pedidos
// en estado pending/confirmed y la clasifica por urgencia con comparación
// solo-fecha: urgent = entrega hoy o vencida, tomorrow = entrega mañana.
func (uc *DemandUseCase) GetDemandSummary() (dto.DemandSummary, error) {
	orders, err := uc.orderRepo.ListOpenWithItems()
	if err != nil {
		return nil, err
	}
	today := dateOnly(time.Now())
	tomorrow := today.AddDate(0, 0, 1)

	summary := make(dto.DemandSummary)
	for _, order := range orders {
		delivery := dateOnly(order.DeliveryDate)
		for _, item := range order.Items {
			entry := summary[item.SKUCode]
			entry.Total += item.Quantity
			if !delivery.After(today) {
				entry.Urgent += item.Quantity
			} else if delivery.Equal(tomorrow) {
				entry.Tomorrow += item.Quantity
			}
			summary[item.SKUCode] = entry
		}
	}
	return summary, nil
}

// GetInventoryLevels devuelve los baldes de todos los SKUs activos; los SKUs
// sin fila de inventario aparecen con baldes en cero.
func (uc *DemandUseCase) GetInventoryLevels() ([]dto.InventoryResponse, error) {
	skus, err := uc.skuRepo.ListActive()
	if err != nil {
		return nil, err
	}
	levels, err := uc.inventoryRepo.ListAll()
	if err != nil {
		return nil, err
	}
	bySKU := make(map[string]*entity.Inventory, len(levels))
	for _, inv := range levels {
		bySKU[inv.SKUID] = inv
	}

	items := make([]dto.InventoryResponse, 0, len(skus))
	for _, sku := range skus {
		inv := bySKU[sku.ID]
		if inv == nil {
			inv = &entity.Inventory{SKUID: sku.ID}
		}
		items = append(items, dto.InventoryResponse{
			SKUID:     sku.ID,
			SKUCode:   sku.Code,
			SKUName:   sku.Name,
			Staged:    inv.Staged,
			Filled:    inv.Filled,
			Cased:     inv.Cased,
			Total:     inv.Total(),
			UpdatedAt: inv.UpdatedAt,
		})
	}
	return items, nil
}

// GetPackagingTasks devuelve las tareas del tablero, opcionalmente
// filtradas por columna, enriquecidas con código y nombre de SKU.
func (uc *DemandUseCase) GetPackagingTasks(column string) ([]dto.TaskResponse, error) {
	tasks, err := uc.taskRepo.List(column)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, dto.TaskResponse{
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
		})
	}
	return items, nil
}

// GetConfirmedOrders devuelve los pedidos confirmados con dispensario,
// líneas e importes, ordenados por fecha de entrega.
func (uc *DemandUseCase) GetConfirmedOrders() ([]dto.ConfirmedOrderDTO, error) {
	orders, err := uc.orderRepo.ListConfirmedWithDispensary()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ConfirmedOrderDTO, 0, len(orders))
	for _, o := range orders {
		lines := make([]dto.OrderItemDTO, 0, len(o.Items))
		for _, it := range o.Items {
			lines = append(lines, dto.OrderItemDTO{
				SKUCode:   it.SKUCode,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Total:     it.Total(),
			})
		}
		items = append(items, dto.ConfirmedOrderDTO{
			ID:             o.ID,
			DispensaryName: o.DispensaryName,
			DeliveryDate:   o.DeliveryDate,
			Status:         o.Status,
			Items:          lines,
			Total:          o.Total(),
		})
	}
	return items, nil
}

// dateOnly trunca a medianoche local para comparaciones solo-fecha.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
