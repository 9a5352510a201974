// Package alerts genera los avisos del tendero a partir del catálogo y de las ventas recientes.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

// Tipos de aviso.
const (
	TypeLowStock  = "low_stock"
	TypeLowMargin = "low_profit"
	TypeLoss      = "loss"
)

// Severidades.
const (
	SeverityWarning  = "warning"
	SeverityAlert    = "alert"
	SeverityCritical = "critical"
)

// Config umbrales de los avisos. Un umbral de stock 0 avisa solo por artículos agotados.
type Config struct {
	LowStockThreshold decimal.Decimal // stock <= umbral → aviso
	MarginWindow      time.Duration   // período de ventas evaluado
	MinMarginPercent  decimal.Decimal // margen % por debajo → aviso
}

// DefaultConfig stock 5, ventana de 30 días, margen mínimo 10 %.
func DefaultConfig() Config {
	return Config{
		LowStockThreshold: decimal.NewFromInt(5),
		MarginWindow:      30 * 24 * time.Hour,
		MinMarginPercent:  decimal.NewFromInt(10),
	}
}

// AlertsUseCase avisos de stock y rentabilidad.
type AlertsUseCase struct {
	inventoryRepo repository.InventoryRepository
	billRepo      repository.BillRepository
	cfg           Config
	now           func() time.Time
}

// NewAlertsUseCase construye el caso de uso.
func NewAlertsUseCase(inventoryRepo repository.InventoryRepository, billRepo repository.BillRepository, cfg Config) *AlertsUseCase {
	if cfg.MarginWindow <= 0 {
		cfg.MarginWindow = DefaultConfig().MarginWindow
	}
	return &AlertsUseCase{
		inventoryRepo: inventoryRepo,
		billRepo:      billRepo,
		cfg:           cfg,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// List avisos vigentes: primero los de rentabilidad, luego stock bajo en orden de catálogo.
//
// Rentabilidad sobre las cuentas de la ventana: margen negativo → pérdida (critical);
// margen % bajo el mínimo → margen bajo (alert). Sin ventas no hay aviso.
func (uc *AlertsUseCase) List(ctx context.Context, ownerID string) ([]dto.AlertResponse, error) {
	now := uc.now()
	var (
		catalog []*entity.InventoryItem
		totals  entity.SalesTotals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = uc.inventoryRepo.ListByOwner(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("avisos: catálogo: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totals, err = uc.billRepo.SalesBetween(gctx, ownerID, now.Add(-uc.cfg.MarginWindow), now)
		if err != nil {
			return fmt.Errorf("avisos: ventas: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := []dto.AlertResponse{}
	if a, ok := uc.marginAlert(totals); ok {
		out = append(out, a)
	}
	for _, item := range catalog {
		if item.QuantityOnHand.GreaterThan(uc.cfg.LowStockThreshold) {
			continue
		}
		id := item.ID
		out = append(out, dto.AlertResponse{
			Type:        TypeLowStock,
			Severity:    SeverityWarning,
			Message:     fmt.Sprintf("Stock bajo: %s (quedan %s %s)", item.Name, item.QuantityOnHand.String(), item.Unit),
			InventoryID: &id,
		})
	}
	return out, nil
}

func (uc *AlertsUseCase) marginAlert(t entity.SalesTotals) (dto.AlertResponse, bool) {
	pct, ok := t.MarginPercent()
	if !ok {
		return dto.AlertResponse{}, false
	}
	days := int(uc.cfg.MarginWindow.Hours() / 24)
	switch {
	case t.Profit().IsNegative():
		return dto.AlertResponse{
			Type:     TypeLoss,
			Severity: SeverityCritical,
			Message: fmt.Sprintf("Pérdida: en los últimos %d días el costo supera las ventas por %s",
				days, t.Profit().Neg().StringFixed(2)),
		}, true
	case pct.LessThan(uc.cfg.MinMarginPercent):
		return dto.AlertResponse{
			Type:     TypeLowMargin,
			Severity: SeverityAlert,
			Message:  fmt.Sprintf("Margen bajo: %s%% en los últimos %d días", pct.StringFixed(1), days),
		}, true
	}
	return dto.AlertResponse{}, false
}
