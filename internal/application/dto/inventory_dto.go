package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest body para POST /api/inventory.
type CreateInventoryItemRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Unit           string          `json:"unit" validate:"required,max=20"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
}

// UpdateInventoryItemRequest body para PUT /api/inventory/:id. Campos nil no se modifican.
type UpdateInventoryItemRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Unit           *string          `json:"unit,omitempty" validate:"omitempty,min=1,max=20"`
	QuantityOnHand *decimal.Decimal `json:"quantity_on_hand,omitempty"`
	CostPrice      *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice   *decimal.Decimal `json:"selling_price,omitempty"`
}

// InventoryItemResponse artículo del catálogo en respuestas.
type InventoryItemResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Unit           string          `json:"unit"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// RestockRequest body para POST /api/inventory/:id/restock. Sin unit_cost el costo no cambia.
type RestockRequest struct {
	Quantity decimal.Decimal  `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}
