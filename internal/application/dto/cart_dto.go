package dto

import "github.com/shopspring/decimal"

// ParseOrderRequest body para POST /api/orders/parse y POST /api/carts/:id/items.
type ParseOrderRequest struct {
	Text string `json:"text" validate:"required,min=1,max=200"`
}

// ParseOrderResponse vista previa del parser sin tocar el carrito.
type ParseOrderResponse struct {
	Matched     bool            `json:"matched"`
	Exact       bool            `json:"exact,omitempty"`
	Assisted    bool            `json:"assisted,omitempty"` // resuelto por el asistente LLM
	Phrase      string          `json:"phrase"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	InventoryID string          `json:"inventory_id,omitempty"`
	ItemName    string          `json:"item_name,omitempty"`
}

// CustomLineRequest body para POST /api/carts/:id/custom-lines.
type CustomLineRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit" validate:"omitempty,max=20"`
	Price    decimal.Decimal `json:"price"`
}

// UpdateQuantityRequest body para PATCH /api/carts/:id/items/:entryId. Cantidad <= 0 elimina la línea.
type UpdateQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// CartEntryResponse línea del carrito.
type CartEntryResponse struct {
	ID             string          `json:"id"`
	InventoryID    *string         `json:"inventory_id"`
	ItemName       string          `json:"item_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	AvailableStock decimal.Decimal `json:"available_stock"`
	Amount         decimal.Decimal `json:"amount"`
}

// CartResponse carrito con totales.
type CartResponse struct {
	ID          string              `json:"id"`
	Entries     []CartEntryResponse `json:"entries"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	TotalCost   decimal.Decimal     `json:"total_cost"`
}

// CheckoutResponse cuenta confirmada y el carrito nuevo que la reemplaza en la sesión.
type CheckoutResponse struct {
	Bill     BillReceipt  `json:"bill"`
	NextCart CartResponse `json:"next_cart"`
}
