package inventory_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/application/inventory"
	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/infrastructure/sqlite"
)

const owner = "tendero-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCase(t *testing.T) *inventory.CatalogUseCase {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return inventory.NewCatalogUseCase(sqlite.NewInventoryRepository(db), sqlite.NewTxRunner(db))
}

func create(t *testing.T, uc *inventory.CatalogUseCase, name, unit string) *dto.InventoryItemResponse {
	t.Helper()
	item, err := uc.Create(context.Background(), owner, dto.CreateInventoryItemRequest{
		Name: name, Unit: unit, QuantityOnHand: d("10"), CostPrice: d("40"), SellingPrice: d("50"),
	})
	require.NoError(t, err)
	return item
}

func TestCreate_NormalizaUnidad(t *testing.T) {
	uc := newUseCase(t)
	item := create(t, uc, "  Rice ", "Kilos")
	assert.Equal(t, "Rice", item.Name)
	assert.Equal(t, "kg", item.Unit)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := newUseCase(t)
	cases := []struct {
		name string
		in   dto.CreateInventoryItemRequest
	}{
		{"sin nombre", dto.CreateInventoryItemRequest{Name: " ", Unit: "kg"}},
		{"sin unidad", dto.CreateInventoryItemRequest{Name: "rice"}},
		{"stock negativo", dto.CreateInventoryItemRequest{Name: "rice", Unit: "kg", QuantityOnHand: d("-1")}},
		{"precio negativo", dto.CreateInventoryItemRequest{Name: "rice", Unit: "kg", SellingPrice: d("-5")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), owner, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreate_NombreDuplicado(t *testing.T) {
	uc := newUseCase(t)
	create(t, uc, "Rice", "kg")
	_, err := uc.Create(context.Background(), owner, dto.CreateInventoryItemRequest{Name: "rice", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestList_OrdenadoPorNombreYPorDueno(t *testing.T) {
	uc := newUseCase(t)
	create(t, uc, "sugar", "kg")
	create(t, uc, "milk", "l")
	_, err := uc.Create(context.Background(), "otro", dto.CreateInventoryItemRequest{Name: "dal", Unit: "kg"})
	require.NoError(t, err)

	list, err := uc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "milk", list[0].Name)
	assert.Equal(t, "sugar", list[1].Name)
}

func TestUpdate_Parcial(t *testing.T) {
	uc := newUseCase(t)
	item := create(t, uc, "rice", "kg")
	qty := d("25.5")

	got, err := uc.Update(context.Background(), owner, item.ID, dto.UpdateInventoryItemRequest{QuantityOnHand: &qty})
	require.NoError(t, err)
	assert.True(t, qty.Equal(got.QuantityOnHand))
	assert.Equal(t, "rice", got.Name)
	assert.True(t, d("50").Equal(got.SellingPrice))
}

func TestUpdate_OtroDuenoNoEncuentra(t *testing.T) {
	uc := newUseCase(t)
	item := create(t, uc, "rice", "kg")
	name := "arroz"
	_, err := uc.Update(context.Background(), "otro", item.ID, dto.UpdateInventoryItemRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestock_SumaStockYPromediaCosto(t *testing.T) {
	uc := newUseCase(t)
	item := create(t, uc, "rice", "kg") // 10 kg a 40
	cost := d("50")

	got, err := uc.Restock(context.Background(), owner, item.ID, dto.RestockRequest{Quantity: d("10"), UnitCost: &cost})
	require.NoError(t, err)
	assert.True(t, d("20").Equal(got.QuantityOnHand))
	assert.True(t, d("45").Equal(got.CostPrice))

	got, err = uc.Restock(context.Background(), owner, item.ID, dto.RestockRequest{Quantity: d("5")})
	require.NoError(t, err)
	assert.True(t, d("25").Equal(got.QuantityOnHand))
	assert.True(t, d("45").Equal(got.CostPrice), "sin costo unitario el costo no cambia")
}

func TestRestock_CantidadInvalida(t *testing.T) {
	uc := newUseCase(t)
	item := create(t, uc, "rice", "kg")
	_, err := uc.Restock(context.Background(), owner, item.ID, dto.RestockRequest{Quantity: d("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Restock(context.Background(), owner, "no-existe", dto.RestockRequest{Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	uc := newUseCase(t)
	item := create(t, uc, "rice", "kg")
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, owner, item.ID))
	_, err := uc.Get(ctx, owner, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, owner, item.ID), domain.ErrNotFound)
}
