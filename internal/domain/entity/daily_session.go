package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la jornada de caja.
const (
	DailySessionActive = "active"
	DailySessionClosed = "closed"
)

// DailySession jornada de caja: se abre al empezar el día y al cerrarse guarda lo vendido
// entre StartTime y EndTime. Un dueño tiene como máximo una jornada activa.
type DailySession struct {
	ID         string
	OwnerID    string
	Status     string
	StartTime  time.Time
	EndTime    *time.Time
	TotalSales decimal.Decimal
	TotalCost  decimal.Decimal
	BillCount  int64
}

// IsActive indica si la jornada sigue abierta.
func (s *DailySession) IsActive() bool { return s.Status == DailySessionActive }

// Profit margen bruto de la jornada.
func (s *DailySession) Profit() decimal.Decimal {
	return s.TotalSales.Sub(s.TotalCost)
}
