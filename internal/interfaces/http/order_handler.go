package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/application/ordering"
)

// OrderHandler toma de pedidos: parseo de texto libre y carrito de la caja (protegido).
type OrderHandler struct {
	uc *ordering.OrderEntryUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *ordering.OrderEntryUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Parse godoc
// @Summary      Interpretar una línea de pedido
// @Description  Vista previa contra el catálogo ("2kg rice", "okati doodh"); no modifica ningún carrito.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ParseOrderRequest  true  "texto libre"
// @Success      200   {object}  dto.ParseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/parse [post]
func (h *OrderHandler) Parse(c *fiber.Ctx) error {
	var in dto.ParseOrderRequest
	if err := BindAndValidate(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Parse(c.Context(), GetUserID(c), in.Text)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// OpenCart godoc
// @Summary      Abrir carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.CartResponse
// @Router       /api/carts [post]
func (h *OrderHandler) OpenCart(c *fiber.Ctx) error {
	out, err := h.uc.OpenCart(c.Context(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCart godoc
// @Summary      Ver carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{id} [get]
func (h *OrderHandler) GetCart(c *fiber.Ctx) error {
	out, err := h.uc.GetCart(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar línea por texto
// @Description  Rechaza sin modificar el carrito si el artículo no existe, está agotado o no alcanza el stock.
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del carrito"
// @Param        body  body  dto.ParseOrderRequest  true  "texto libre"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items [post]
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	var in dto.ParseOrderRequest
	if err := BindAndValidate(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AddItem(c.Context(), GetUserID(c), c.Params("id"), in.Text)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddCustomLine godoc
// @Summary      Agregar línea libre
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del carrito"
// @Param        body  body  dto.CustomLineRequest  true  "name, quantity, unit, price"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/custom-lines [post]
func (h *OrderHandler) AddCustomLine(c *fiber.Ctx) error {
	var in dto.CustomLineRequest
	if err := BindAndValidate(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AddCustomLine(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateQuantity godoc
// @Summary      Cambiar cantidad de una línea
// @Description  Cantidad <= 0 elimina la línea.
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "ID del carrito"
// @Param        entryId  path  string                     true  "ID de la línea"
// @Param        body     body  dto.UpdateQuantityRequest  true  "quantity"
// @Success      200      {object}  dto.CartResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      422      {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items/{entryId} [patch]
func (h *OrderHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateQuantityRequest
	if err := BindAndValidate(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateQuantity(c.Context(), GetUserID(c), c.Params("id"), c.Params("entryId"), in.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar línea
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id       path  string  true  "ID del carrito"
// @Param        entryId  path  string  true  "ID de la línea"
// @Success      200      {object}  dto.CartResponse
// @Router       /api/carts/{id}/items/{entryId} [delete]
func (h *OrderHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Context(), GetUserID(c), c.Params("id"), c.Params("entryId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Checkout godoc
// @Summary      Confirmar la cuenta
// @Description  Descuenta inventario y numera la cuenta en una sola transacción. Ante error el carrito queda intacto.
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del carrito"
// @Success      201  {object}  dto.CheckoutResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/checkout [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	out, err := h.uc.Checkout(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
