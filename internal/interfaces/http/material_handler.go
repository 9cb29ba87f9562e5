package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stokespro/cake-crm-sub002/internal/application/dto"
	"github.com/stokespro/cake-crm-sub002/internal/application/ledger"
	"github.com/stokespro/cake-crm-sub002/internal/domain"
)

// MaterialHandler maneja las peticiones HTTP del ledger de materiales (protegido).
type MaterialHandler struct {
	uc *ledger.LedgerUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *ledger.LedgerUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Create godoc
// @Summary      Crear material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "name, type, initial_stock, low_stock_threshold"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return materialError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(material)
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.MaterialResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Material ID"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	material, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return materialError(c, err)
	}
	return c.JSON(material)
}

// Update godoc
// @Summary      Editar material (campos no-stock)
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Material ID"
// @Param        body  body  dto.UpdateMaterialRequest  true  "name, sku_code, type, low_stock_threshold"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return materialError(c, err)
	}
	return c.JSON(material)
}

// Delete godoc
// @Summary      Eliminar material y su historial
// @Tags         materials
// @Security     Bearer
// @Param        id  path  string  true  "Material ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return materialError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restock godoc
// @Summary      Reponer stock de un material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Material ID"
// @Param        body  body  dto.RestockRequest  true  "quantity, notes"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/restock [post]
func (h *MaterialHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.uc.Restock(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return materialError(c, err)
	}
	return c.JSON(material)
}

// Use godoc
// @Summary      Consumir stock de un material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "Material ID"
// @Param        body  body  dto.UseRequest  true  "quantity, sku_code, notes"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/use [post]
func (h *MaterialHandler) Use(c *fiber.Ctx) error {
	var in dto.UseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.uc.Use(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return materialError(c, err)
	}
	return c.JSON(material)
}

// Adjust godoc
// @Summary      Fijar stock absoluto de un material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "Material ID"
// @Param        body  body  dto.AdjustRequest  true  "new_stock, notes"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/adjust [post]
func (h *MaterialHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.uc.Adjust(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return materialError(c, err)
	}
	return c.JSON(material)
}

// ListTransactions godoc
// @Summary      Historial del ledger (hasta 100 filas, recientes primero)
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        material_id  query  string  false  "Filtrar por material"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/materials/transactions [get]
func (h *MaterialHandler) ListTransactions(c *fiber.Ctx) error {
	list, err := h.uc.ListTransactions(c.Query("material_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// materialError mapea errores de dominio del ledger a códigos HTTP.
func materialError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
	case domain.ErrDuplicate:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un material con ese nombre"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser positiva"})
	case domain.ErrInvalidValue:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_VALUE", Message: "el valor no puede ser negativo"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
