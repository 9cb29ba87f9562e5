package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/stokespro/cake-crm-sub002/internal/application/demand"
	"github.com/stokespro/cake-crm-sub002/internal/application/dto"
	"github.com/stokespro/cake-crm-sub002/internal/application/packaging"
)

// DemandHandler maneja las proyecciones de solo lectura y la hoja de
// producción (protegido).
type DemandHandler struct {
	uc    *demand.DemandUseCase
	sheet *packaging.ProductionSheetUseCase
}

// NewDemandHandler construye el handler.
func NewDemandHandler(uc *demand.DemandUseCase, sheet *packaging.ProductionSheetUseCase) *DemandHandler {
	return &DemandHandler{uc: uc, sheet: sheet}
}

// GetDemandSummary godoc
// @Summary      Demanda agregada por SKU sobre pedidos abiertos
// @Description  total, urgent (entrega hoy o vencida) y tomorrow por código
//
//	de SKU, recalculado en cada llamada.
//
// @Tags         demand
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DemandSummary
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/demand/summary [get]
func (h *DemandHandler) GetDemandSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetDemandSummary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(summary)
}

// GetInventoryLevels godoc
// @Summary      Baldes de todos los SKUs activos
// @Tags         demand
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InventoryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/demand/inventory [get]
func (h *DemandHandler) GetInventoryLevels(c *fiber.Ctx) error {
	levels, err := h.uc.GetInventoryLevels()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(levels)
}

// GetPackagingTasks godoc
// @Summary      Tareas del tablero de empaque
// @Tags         demand
// @Security     Bearer
// @Produce      json
// @Param        column  query  string  false  "Filtrar por columna: TO_FILL, TO_CASE, DONE"
// @Success      200  {array}   dto.TaskResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/demand/tasks [get]
func (h *DemandHandler) GetPackagingTasks(c *fiber.Ctx) error {
	tasks, err := h.uc.GetPackagingTasks(c.Query("column"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(tasks)
}

// GetConfirmedOrders godoc
// @Summary      Pedidos confirmados con dispensario e importes
// @Tags         demand
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ConfirmedOrderDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/demand/orders [get]
func (h *DemandHandler) GetConfirmedOrders(c *fiber.Ctx) error {
	orders, err := h.uc.GetConfirmedOrders()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(orders)
}

// DownloadProductionSheet godoc
// @Summary      Hoja de producción del día (PDF)
// @Description  Tareas abiertas del tablero más la demanda agregada, lista
//
//	para imprimir en el piso de empaque.
//
// @Tags         demand
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/packaging/production-sheet [get]
func (h *DemandHandler) DownloadProductionSheet(c *fiber.Ctx) error {
	pdf, filename, err := h.sheet.DownloadProductionSheet(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
