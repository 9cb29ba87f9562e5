package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stokespro/cake-crm-sub002/internal/application/dto"
	"github.com/stokespro/cake-crm-sub002/internal/application/packaging"
	"github.com/stokespro/cake-crm-sub002/internal/domain"
)

// PackagingHandler maneja las peticiones HTTP del tablero de empaque (protegido).
type PackagingHandler struct {
	uc *packaging.PipelineUseCase
}

// NewPackagingHandler construye el handler.
func NewPackagingHandler(uc *packaging.PipelineUseCase) *PackagingHandler {
	return &PackagingHandler{uc: uc}
}

// ScheduleTask godoc
// @Summary      Programar tarea de llenado en TO_FILL
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScheduleTaskRequest  true  "sku_id, quantity"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/packaging/tasks [post]
func (h *PackagingHandler) ScheduleTask(c *fiber.Ctx) error {
	var in dto.ScheduleTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	task, err := h.uc.ScheduleTask(c.Context(), in)
	if err != nil {
		return packagingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// AdvanceTask godoc
// @Summary      Avanzar tarea a la siguiente columna
// @Description  TO_FILL→TO_CASE mueve staged→filled; TO_CASE→DONE mueve
//
//	filled→cased. Falla con 409 si el balde de origen no alcanza.
//
// @Tags         packaging
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/packaging/tasks/{id}/advance [post]
func (h *PackagingHandler) AdvanceTask(c *fiber.Ctx) error {
	task, err := h.uc.AdvanceTask(c.Context(), c.Params("id"))
	if err != nil {
		return packagingError(c, err)
	}
	return c.JSON(task)
}

// RevertTask godoc
// @Summary      Devolver tarea a la columna anterior
// @Description  Deshace el movimiento de baldes sin validar suficiencia
//
//	(corrección de operador; puede dejar baldes negativos).
//
// @Tags         packaging
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packaging/tasks/{id}/revert [post]
func (h *PackagingHandler) RevertTask(c *fiber.Ctx) error {
	task, err := h.uc.RevertTask(c.Context(), c.Params("id"))
	if err != nil {
		return packagingError(c, err)
	}
	return c.JSON(task)
}

// AddStaged godoc
// @Summary      Sumar stock recién producido al balde staged
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStagedRequest  true  "sku_id, quantity"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/packaging/staged [post]
func (h *PackagingHandler) AddStaged(c *fiber.Ctx) error {
	var in dto.AddStagedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.AddStaged(c.Context(), in)
	if err != nil {
		return packagingError(c, err)
	}
	return c.JSON(inv)
}

// OverrideInventory godoc
// @Summary      Fijar baldes a valores absolutos (corrección manual)
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        skuID  path  string                        true  "SKU ID"
// @Param        body   body  dto.OverrideInventoryRequest  true  "staged, filled, cased (absolutos; omitidos no se tocan)"
// @Success      200    {object}  dto.InventoryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/packaging/inventory/{skuID} [put]
func (h *PackagingHandler) OverrideInventory(c *fiber.Ctx) error {
	var in dto.OverrideInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.OverrideInventory(c.Context(), c.Params("skuID"), GetUserID(c), in)
	if err != nil {
		return packagingError(c, err)
	}
	return c.JSON(inv)
}

// GetInventory godoc
// @Summary      Baldes actuales de un SKU
// @Tags         packaging
// @Security     Bearer
// @Produce      json
// @Param        skuID  path  string  true  "SKU ID"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packaging/inventory/{skuID} [get]
func (h *PackagingHandler) GetInventory(c *fiber.Ctx) error {
	inv, err := h.uc.GetInventory(c.Params("skuID"))
	if err != nil {
		return packagingError(c, err)
	}
	return c.JSON(inv)
}

// packagingError mapea errores de dominio del tablero a códigos HTTP.
func packagingError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tarea o SKU no encontrado"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "operación inválida para el estado actual"})
	case domain.ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser positiva"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en el balde de origen"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
