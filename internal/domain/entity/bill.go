package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill representa la cabecera de una cuenta confirmada.
// Se crea siempre junto a sus BillItem, en la misma transacción.
type Bill struct {
	ID          string
	OwnerID     string
	CartID      string // carrito de origen; único para no facturar dos veces el mismo carrito
	BillNumber  int64  // consecutivo por dueño
	TotalAmount decimal.Decimal
	TotalCost   decimal.Decimal
	CreatedAt   time.Time
}

// Profit margen bruto de la cuenta.
func (b *Bill) Profit() decimal.Decimal {
	return b.TotalAmount.Sub(b.TotalCost)
}
