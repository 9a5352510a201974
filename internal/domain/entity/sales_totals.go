package entity

import "github.com/shopspring/decimal"

// SalesTotals agregado de cuentas en un período (ingresos y costo).
type SalesTotals struct {
	BillCount int64
	Revenue   decimal.Decimal
	Cost      decimal.Decimal
}

// Profit margen bruto del período.
func (t SalesTotals) Profit() decimal.Decimal {
	return t.Revenue.Sub(t.Cost)
}

// MarginPercent margen sobre ingresos en porcentaje, redondeado a 1 decimal.
// ok=false si no hubo ingresos.
func (t SalesTotals) MarginPercent() (decimal.Decimal, bool) {
	if !t.Revenue.IsPositive() {
		return decimal.Zero, false
	}
	return t.Profit().Mul(decimal.NewFromInt(100)).DivRound(t.Revenue, 1), true
}
