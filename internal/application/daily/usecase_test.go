package daily_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kirana-pos/internal/application/daily"
	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/infrastructure/sqlite"
)

const owner = "tendero-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	bills *sqlite.BillRepo
	uc    *daily.DailyOpsUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	bills := sqlite.NewBillRepository(db)
	return &fixture{bills: bills, uc: daily.NewDailyOpsUseCase(sqlite.NewDailySessionRepository(db), bills)}
}

// sell registra una cuenta confirmada ahora.
func (f *fixture) sell(t *testing.T, ownerID, amount, cost string) {
	t.Helper()
	ctx := context.Background()
	n, err := f.bills.NextBillNumber(ctx, ownerID)
	require.NoError(t, err)
	require.NoError(t, f.bills.Create(ctx, &entity.Bill{
		ID: uuid.NewString(), OwnerID: ownerID, CartID: uuid.NewString(), BillNumber: n,
		TotalAmount: d(amount), TotalCost: d(cost), CreatedAt: time.Now().UTC(),
	}))
}

func TestJornada_AbrirResumenYCerrar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.sell(t, owner, "999", "1") // antes de abrir: no cuenta
	time.Sleep(2 * time.Millisecond)

	day, err := f.uc.StartDay(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, entity.DailySessionActive, day.Status)
	assert.Nil(t, day.EndTime)

	f.sell(t, owner, "100", "70")
	f.sell(t, owner, "50.50", "30")
	f.sell(t, "otro-tendero", "500", "100")

	today, err := f.uc.Today(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, today.Session)
	assert.Equal(t, day.ID, today.Session.ID)
	require.Len(t, today.Bills, 2)
	assert.Equal(t, int64(2), today.Bills[0].BillNumber)
	assert.Equal(t, int64(2), today.Totals.BillCount)
	assert.True(t, d("150.50").Equal(today.Totals.Revenue), today.Totals.Revenue.String())
	assert.True(t, d("50.50").Equal(today.Totals.Profit), today.Totals.Profit.String())

	closed, err := f.uc.EndDay(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, entity.DailySessionClosed, closed.Status)
	require.NotNil(t, closed.EndTime)
	assert.True(t, d("150.50").Equal(closed.TotalSales))
	assert.True(t, d("100").Equal(closed.TotalCost))
	assert.Equal(t, int64(2), closed.BillCount)

	past, err := f.uc.PastDays(ctx, owner)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, day.ID, past[0].ID)
	assert.True(t, d("50.50").Equal(past[0].Profit))

	// cerrada, el resumen queda vacío
	today, err = f.uc.Today(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, today.Session)
	assert.Empty(t, today.Bills)
	assert.True(t, today.Totals.Revenue.IsZero())
}

func TestJornada_NoSeAbreDosVeces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.StartDay(ctx, owner)
	require.NoError(t, err)
	_, err = f.uc.StartDay(ctx, owner)
	assert.ErrorIs(t, err, domain.ErrDayAlreadyStarted)

	// otro dueño abre la suya sin conflicto
	_, err = f.uc.StartDay(ctx, "otro-tendero")
	assert.NoError(t, err)
}

func TestJornada_CerrarSinJornadaAbierta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.EndDay(ctx, owner)
	assert.ErrorIs(t, err, domain.ErrNoActiveDay)

	_, err = f.uc.StartDay(ctx, owner)
	require.NoError(t, err)
	_, err = f.uc.EndDay(ctx, owner)
	require.NoError(t, err)
	_, err = f.uc.EndDay(ctx, owner)
	assert.ErrorIs(t, err, domain.ErrNoActiveDay)
}

func TestJornada_HistorialLimitadoASiete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 9; i++ {
		_, err := f.uc.StartDay(ctx, owner)
		require.NoError(t, err)
		_, err = f.uc.EndDay(ctx, owner)
		require.NoError(t, err)
	}
	past, err := f.uc.PastDays(ctx, owner)
	require.NoError(t, err)
	require.Len(t, past, 7)
	assert.True(t, !past[0].EndTime.Before(*past[6].EndTime), "más recientes primero")
}

func TestJornada_SinDueno(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.StartDay(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
