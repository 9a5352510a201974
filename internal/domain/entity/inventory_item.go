package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un artículo del catálogo de la tienda.
// QuantityOnHand nunca baja de cero: solo se descuenta con el descuento condicionado de la cuenta.
type InventoryItem struct {
	ID             string
	OwnerID        string
	Name           string // nombre canónico usado para el matching
	Unit           string // unidad en la que se lleva el stock (kg, l, pcs, ...)
	QuantityOnHand decimal.Decimal
	CostPrice      decimal.Decimal
	SellingPrice   decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InStock indica si queda alguna cantidad disponible.
func (i *InventoryItem) InStock() bool {
	return i.QuantityOnHand.GreaterThan(decimal.Zero)
}
