package entity

import "github.com/shopspring/decimal"

// ItemSales agregado de ventas por nombre de artículo (más vendidos).
type ItemSales struct {
	ItemName string
	Quantity decimal.Decimal
	Revenue  decimal.Decimal
}
