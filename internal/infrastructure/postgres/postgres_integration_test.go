package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/kirana-pos/internal/application/billing"
	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/cart"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/orderparse"
	"github.com/jhoicas/kirana-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/kirana-pos/pkg/config"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Requiere TEST_DATABASE_URL apuntando a una base desechable.
func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 8})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func newOwner(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{
		ID: uuid.NewString(), Email: uuid.NewString() + "@test.local", PasswordHash: "x",
		ShopName: "Tienda de prueba", Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewUserRepository(pool).Create(context.Background(), u))
	return u.ID
}

func stock(t *testing.T, pool *pgxpool.Pool, owner, name, qty string) *entity.InventoryItem {
	t.Helper()
	now := time.Now().UTC()
	item := &entity.InventoryItem{
		ID: uuid.NewString(), OwnerID: owner, Name: name, Unit: "kg",
		QuantityOnHand: d(qty), CostPrice: d("40"), SellingPrice: d("50"), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewInventoryRepository(pool).Create(context.Background(), item))
	return item
}

func cartWith(t *testing.T, item *entity.InventoryItem, qty string) cart.Cart {
	t.Helper()
	c, err := cart.AddItem(cart.New(), orderparse.Matched{Item: *item, Text: item.Name, Quantity: d(qty), Unit: item.Unit})
	require.NoError(t, err)
	return c
}

func TestPostgres_CommitDescuentaYNumera(t *testing.T) {
	pool := newPool(t)
	owner := newOwner(t, pool)
	rice := stock(t, pool, owner, "rice", "10")
	uc := billing.NewCommitBillUseCase(postgres.NewTxRunner(pool), nil, nil)
	ctx := context.Background()

	first, err := uc.Commit(ctx, owner, cartWith(t, rice, "2"))
	require.NoError(t, err)
	second, err := uc.Commit(ctx, owner, cartWith(t, rice, "3"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.BillNumber)
	assert.Equal(t, int64(2), second.BillNumber)

	got, err := postgres.NewInventoryRepository(pool).GetByID(ctx, owner, rice.ID)
	require.NoError(t, err)
	assert.True(t, d("5").Equal(got.QuantityOnHand))

	items, err := postgres.NewBillRepository(pool).GetItems(ctx, first.BillID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, d("2").Equal(items[0].Quantity))
}

func TestPostgres_MismoCarritoDosVeces(t *testing.T) {
	pool := newPool(t)
	owner := newOwner(t, pool)
	rice := stock(t, pool, owner, "rice", "10")
	uc := billing.NewCommitBillUseCase(postgres.NewTxRunner(pool), nil, nil)
	ctx := context.Background()
	c := cartWith(t, rice, "2")

	_, err := uc.Commit(ctx, owner, c)
	require.NoError(t, err)
	_, err = uc.Commit(ctx, owner, c)
	assert.ErrorIs(t, err, domain.ErrAlreadyCommitted)

	got, err := postgres.NewInventoryRepository(pool).GetByID(ctx, owner, rice.ID)
	require.NoError(t, err)
	assert.True(t, d("8").Equal(got.QuantityOnHand))
}

func TestPostgres_CommitsConcurrentesSoloUnoGana(t *testing.T) {
	pool := newPool(t)
	owner := newOwner(t, pool)
	rice := stock(t, pool, owner, "rice", "5")
	uc := billing.NewCommitBillUseCase(postgres.NewTxRunner(pool), nil, nil)
	ctx := context.Background()

	carts := []cart.Cart{cartWith(t, rice, "4"), cartWith(t, rice, "4")}
	errs := make([]error, len(carts))
	var g errgroup.Group
	for i, c := range carts {
		g.Go(func() error {
			_, errs[i] = uc.Commit(ctx, owner, c)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	ok, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrCommitConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)

	got, err := postgres.NewInventoryRepository(pool).GetByID(ctx, owner, rice.ID)
	require.NoError(t, err)
	assert.True(t, d("1").Equal(got.QuantityOnHand))
}

func TestPostgres_TopSellers(t *testing.T) {
	pool := newPool(t)
	owner := newOwner(t, pool)
	rice := stock(t, pool, owner, "rice", "10")
	sugar := stock(t, pool, owner, "sugar", "10")
	uc := billing.NewCommitBillUseCase(postgres.NewTxRunner(pool), nil, nil)
	ctx := context.Background()

	_, err := uc.Commit(ctx, owner, cartWith(t, rice, "1"))
	require.NoError(t, err)
	_, err = uc.Commit(ctx, owner, cartWith(t, sugar, "3"))
	require.NoError(t, err)

	top, err := postgres.NewBillRepository(pool).TopSellers(ctx, owner, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "sugar", top[0].ItemName)
}

func TestPostgres_JornadaYVentasDelPeriodo(t *testing.T) {
	pool := newPool(t)
	owner := newOwner(t, pool)
	rice := stock(t, pool, owner, "rice", "10")
	sessions := postgres.NewDailySessionRepository(pool)
	bills := postgres.NewBillRepository(pool)
	ctx := context.Background()

	start := time.Now().UTC().Add(-time.Second)
	day := &entity.DailySession{
		ID: uuid.NewString(), OwnerID: owner, Status: entity.DailySessionActive,
		StartTime: start, TotalSales: decimal.Zero, TotalCost: decimal.Zero,
	}
	require.NoError(t, sessions.Create(ctx, day))
	dup := *day
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, sessions.Create(ctx, &dup), domain.ErrDayAlreadyStarted)

	uc := billing.NewCommitBillUseCase(postgres.NewTxRunner(pool), nil, nil)
	_, err := uc.Commit(ctx, owner, cartWith(t, rice, "2"))
	require.NoError(t, err)
	end := time.Now().UTC().Add(time.Second)

	totals, err := bills.SalesBetween(ctx, owner, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.BillCount)
	assert.True(t, d("100").Equal(totals.Revenue))
	assert.True(t, d("80").Equal(totals.Cost))

	list, err := bills.ListBetween(ctx, owner, start, end)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	day.Status = entity.DailySessionClosed
	day.EndTime = &end
	day.TotalSales, day.TotalCost, day.BillCount = totals.Revenue, totals.Cost, totals.BillCount
	ok, err := sessions.Close(ctx, day)
	require.NoError(t, err)
	assert.True(t, ok)

	closed, err := sessions.ListClosed(ctx, owner, 7)
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.True(t, d("100").Equal(closed[0].TotalSales))

	active, err := sessions.GetActive(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, active)
}
