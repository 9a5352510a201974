package alerts_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kirana-pos/internal/application/alerts"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/infrastructure/sqlite"
)

const owner = "tendero-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	inv   *sqlite.InventoryRepo
	bills *sqlite.BillRepo
	uc    *alerts.AlertsUseCase
}

func newFixture(t *testing.T, cfg alerts.Config) *fixture {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "alerts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	inv := sqlite.NewInventoryRepository(db)
	bills := sqlite.NewBillRepository(db)
	return &fixture{inv: inv, bills: bills, uc: alerts.NewAlertsUseCase(inv, bills, cfg)}
}

func (f *fixture) stock(t *testing.T, name, unit, qty string) *entity.InventoryItem {
	t.Helper()
	now := time.Now().UTC()
	item := &entity.InventoryItem{
		ID: uuid.NewString(), OwnerID: owner, Name: name, Unit: unit,
		QuantityOnHand: d(qty), CostPrice: d("10"), SellingPrice: d("12"),
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.inv.Create(context.Background(), item))
	return item
}

func (f *fixture) sell(t *testing.T, amount, cost string, at time.Time) {
	t.Helper()
	ctx := context.Background()
	n, err := f.bills.NextBillNumber(ctx, owner)
	require.NoError(t, err)
	require.NoError(t, f.bills.Create(ctx, &entity.Bill{
		ID: uuid.NewString(), OwnerID: owner, CartID: uuid.NewString(), BillNumber: n,
		TotalAmount: d(amount), TotalCost: d(cost), CreatedAt: at,
	}))
}

func TestAlerts_StockBajoConUmbral(t *testing.T) {
	f := newFixture(t, alerts.DefaultConfig())
	dal := f.stock(t, "Dal", "kg", "5")
	f.stock(t, "Rice", "kg", "5.5")
	salt := f.stock(t, "Salt", "pcs", "0")

	out, err := f.uc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, out, 2, "sin ventas no hay aviso de margen")

	assert.Equal(t, alerts.TypeLowStock, out[0].Type)
	assert.Equal(t, alerts.SeverityWarning, out[0].Severity)
	require.NotNil(t, out[0].InventoryID)
	assert.Equal(t, dal.ID, *out[0].InventoryID)
	assert.Equal(t, "Stock bajo: Dal (quedan 5 kg)", out[0].Message)

	require.NotNil(t, out[1].InventoryID)
	assert.Equal(t, salt.ID, *out[1].InventoryID)
}

func TestAlerts_UmbralConfigurable(t *testing.T) {
	cfg := alerts.DefaultConfig()
	cfg.LowStockThreshold = d("10")
	f := newFixture(t, cfg)
	f.stock(t, "Rice", "kg", "9")

	out, err := f.uc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, alerts.TypeLowStock, out[0].Type)
}

func TestAlerts_MargenBajo(t *testing.T) {
	f := newFixture(t, alerts.DefaultConfig())
	f.sell(t, "100", "95", time.Now().UTC())

	out, err := f.uc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, alerts.TypeLowMargin, out[0].Type)
	assert.Equal(t, alerts.SeverityAlert, out[0].Severity)
	assert.Equal(t, "Margen bajo: 5.0% en los últimos 30 días", out[0].Message)
	assert.Nil(t, out[0].InventoryID)
}

// Un margen negativo también está bajo el mínimo: se informa como pérdida, no como margen bajo.
func TestAlerts_PerdidaTienePrioridad(t *testing.T) {
	f := newFixture(t, alerts.DefaultConfig())
	f.sell(t, "100", "130", time.Now().UTC())

	out, err := f.uc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, alerts.TypeLoss, out[0].Type)
	assert.Equal(t, alerts.SeverityCritical, out[0].Severity)
	assert.Contains(t, out[0].Message, "30.00")
}

func TestAlerts_MargenSanoYVentasViejasNoAvisan(t *testing.T) {
	f := newFixture(t, alerts.DefaultConfig())
	f.sell(t, "100", "60", time.Now().UTC())
	f.sell(t, "100", "200", time.Now().UTC().Add(-45*24*time.Hour)) // fuera de la ventana

	out, err := f.uc.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, out)
}
