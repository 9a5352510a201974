package entity

import "github.com/shopspring/decimal"

// BillItem es una línea de la cuenta. Todos los campos son copias del carrito al confirmar,
// nunca se recalculan desde el inventario vivo.
type BillItem struct {
	ID           string
	BillID       string
	InventoryID  *string // nil = línea libre sin artículo de inventario
	ItemName     string
	Quantity     decimal.Decimal
	Unit         string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
}

// Amount importe de venta de la línea.
func (i *BillItem) Amount() decimal.Decimal {
	return i.SellingPrice.Mul(i.Quantity)
}

// Cost costo de la línea.
func (i *BillItem) Cost() decimal.Decimal {
	return i.CostPrice.Mul(i.Quantity)
}
