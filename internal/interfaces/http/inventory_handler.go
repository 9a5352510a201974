package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/application/inventory"
)

// InventoryHandler CRUD del catálogo de la tienda (protegido).
type InventoryHandler struct {
	uc *inventory.CatalogUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.CatalogUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar catálogo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InventoryItemResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Obtener artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del artículo"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	item, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// Create godoc
// @Summary      Crear artículo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "name, unit, quantity_on_hand, cost_price, selling_price"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := BindAndValidate(c, &in); err != nil {
		return err
	}
	item, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update godoc
// @Summary      Actualizar artículo
// @Description  Solo se modifican los campos presentes.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del artículo"
// @Param        body  body  dto.UpdateInventoryItemRequest  true  "campos a modificar"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryItemRequest
	if err := BindAndValidate(c, &in); err != nil {
		return err
	}
	item, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// Restock godoc
// @Summary      Registrar mercadería recibida
// @Description  Suma al stock; con unit_cost recalcula el costo por promedio ponderado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del artículo"
// @Param        body  body  dto.RestockRequest  true  "quantity, unit_cost"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := BindAndValidate(c, &in); err != nil {
		return err
	}
	item, err := h.uc.Restock(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
