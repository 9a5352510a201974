package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySessionResponse jornada de caja.
type DailySessionResponse struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    *time.Time      `json:"end_time"`
	TotalSales decimal.Decimal `json:"total_sales"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Profit     decimal.Decimal `json:"profit"`
	BillCount  int64           `json:"bill_count"`
}

// SalesTotalsDTO ventas acumuladas de un período.
type SalesTotalsDTO struct {
	BillCount int64           `json:"bill_count"`
	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
}

// TodayResponse jornada activa (nil si no hay) con las cuentas hechas desde su apertura.
type TodayResponse struct {
	Session *DailySessionResponse `json:"session"`
	Bills   []BillSummary         `json:"bills"`
	Totals  SalesTotalsDTO        `json:"totals"`
}
