// Package daily contiene los casos de uso de la jornada de caja: apertura, resumen en curso,
// cierre con totales e historial de jornadas cerradas.
package daily

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/kirana-pos/internal/application/billing"
	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

const pastDaysLimit = 7 // jornadas cerradas en el historial

// DailyOpsUseCase jornada de caja del dueño.
//
// Los totales del cierre se calculan en el servidor a partir de las cuentas confirmadas entre
// la apertura y el cierre; el cliente no los envía.
type DailyOpsUseCase struct {
	sessions repository.DailySessionRepository
	bills    repository.BillRepository
	now      func() time.Time
}

// NewDailyOpsUseCase construye el caso de uso.
func NewDailyOpsUseCase(sessions repository.DailySessionRepository, bills repository.BillRepository) *DailyOpsUseCase {
	return &DailyOpsUseCase{
		sessions: sessions,
		bills:    bills,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// StartDay abre la jornada. Con una ya abierta → domain.ErrDayAlreadyStarted.
func (uc *DailyOpsUseCase) StartDay(ctx context.Context, ownerID string) (*dto.DailySessionResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	s := &entity.DailySession{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Status:     entity.DailySessionActive,
		StartTime:  uc.now(),
		TotalSales: decimal.Zero,
		TotalCost:  decimal.Zero,
	}
	if err := uc.sessions.Create(ctx, s); err != nil {
		return nil, err
	}
	out := ToDailySessionResponse(s)
	return &out, nil
}

// Today jornada activa con sus cuentas y totales acumulados. Sin jornada abierta devuelve
// Session nil y listas vacías.
func (uc *DailyOpsUseCase) Today(ctx context.Context, ownerID string) (*dto.TodayResponse, error) {
	active, err := uc.sessions.GetActive(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("jornada: leer activa: %w", err)
	}
	out := &dto.TodayResponse{
		Bills:  []dto.BillSummary{},
		Totals: toTotalsDTO(entity.SalesTotals{Revenue: decimal.Zero, Cost: decimal.Zero}),
	}
	if active == nil {
		return out, nil
	}

	now := uc.now()
	var (
		bills  []*entity.Bill
		totals entity.SalesTotals
	)
	// ── Dos consultas en paralelo ─────────────────────────────────────────────
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bills, err = uc.bills.ListBetween(gctx, ownerID, active.StartTime, now)
		if err != nil {
			return fmt.Errorf("jornada: cuentas del día: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totals, err = uc.bills.SalesBetween(gctx, ownerID, active.StartTime, now)
		if err != nil {
			return fmt.Errorf("jornada: totales del día: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	session := ToDailySessionResponse(active)
	out.Session = &session
	for _, b := range bills {
		out.Bills = append(out.Bills, billing.ToBillSummary(b))
	}
	out.Totals = toTotalsDTO(totals)
	return out, nil
}

// EndDay cierra la jornada activa guardando lo vendido desde la apertura.
// Sin jornada abierta (o si otra petición la cerró antes) → domain.ErrNoActiveDay.
func (uc *DailyOpsUseCase) EndDay(ctx context.Context, ownerID string) (*dto.DailySessionResponse, error) {
	active, err := uc.sessions.GetActive(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("jornada: leer activa: %w", err)
	}
	if active == nil {
		return nil, domain.ErrNoActiveDay
	}

	end := uc.now()
	totals, err := uc.bills.SalesBetween(ctx, ownerID, active.StartTime, end)
	if err != nil {
		return nil, fmt.Errorf("jornada: totales del cierre: %w", err)
	}
	active.Status = entity.DailySessionClosed
	active.EndTime = &end
	active.TotalSales = totals.Revenue
	active.TotalCost = totals.Cost
	active.BillCount = totals.BillCount

	ok, err := uc.sessions.Close(ctx, active)
	if err != nil {
		return nil, fmt.Errorf("jornada: cerrar: %w", err)
	}
	if !ok {
		return nil, domain.ErrNoActiveDay
	}
	out := ToDailySessionResponse(active)
	return &out, nil
}

// PastDays últimas jornadas cerradas, más recientes primero.
func (uc *DailyOpsUseCase) PastDays(ctx context.Context, ownerID string) ([]dto.DailySessionResponse, error) {
	list, err := uc.sessions.ListClosed(ctx, ownerID, pastDaysLimit)
	if err != nil {
		return nil, fmt.Errorf("jornada: historial: %w", err)
	}
	out := make([]dto.DailySessionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToDailySessionResponse(s))
	}
	return out, nil
}

// ToDailySessionResponse mapea la entidad al DTO.
func ToDailySessionResponse(s *entity.DailySession) dto.DailySessionResponse {
	return dto.DailySessionResponse{
		ID:         s.ID,
		Status:     s.Status,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		TotalSales: s.TotalSales,
		TotalCost:  s.TotalCost,
		Profit:     s.Profit(),
		BillCount:  s.BillCount,
	}
}

func toTotalsDTO(t entity.SalesTotals) dto.SalesTotalsDTO {
	return dto.SalesTotalsDTO{
		BillCount: t.BillCount,
		Revenue:   t.Revenue,
		Cost:      t.Cost,
		Profit:    t.Profit(),
	}
}
