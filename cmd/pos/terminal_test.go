package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kirana-pos/internal/application/billing"
	"github.com/jhoicas/kirana-pos/internal/application/ordering"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/infrastructure/sqlite"
)

const shopID = "tienda-terminal"

func newTestTerminal(t *testing.T) (*terminal, *bytes.Buffer, *sqlite.InventoryRepo, *bool) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "pos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	inv := sqlite.NewInventoryRepository(db)
	now := time.Now().UTC()
	require.NoError(t, inv.Create(ctx, &entity.InventoryItem{
		ID: uuid.NewString(), OwnerID: shopID, Name: "rice", Unit: "kg",
		QuantityOnHand: decimal.NewFromInt(5), CostPrice: decimal.NewFromInt(40), SellingPrice: decimal.NewFromInt(50),
		CreatedAt: now, UpdatedAt: now,
	}))

	uc := ordering.NewOrderEntryUseCase(inv, nil, billing.NewCommitBillUseCase(sqlite.NewTxRunner(db), nil, nil), nil, nil, nil, ordering.Config{})
	out := &bytes.Buffer{}
	quit := false
	term, err := newTerminal(ctx, uc, shopID, out, func() { quit = true })
	require.NoError(t, err)
	return term, out, inv, &quit
}

func TestTerminal_AgregaYCobra(t *testing.T) {
	term, out, _, _ := newTestTerminal(t)
	ctx := context.Background()
	firstCart := term.cart.ID

	term.handle(ctx, "2kg rice")
	assert.Contains(t, out.String(), "rice")
	assert.Contains(t, out.String(), "100.00")

	out.Reset()
	term.handle(ctx, ":cobrar")
	assert.Contains(t, out.String(), "cuenta #1 confirmada")
	assert.NotEqual(t, firstCart, term.cart.ID)
	assert.Empty(t, term.cart.Entries)
}

func TestTerminal_StockInsuficienteNoCambiaCarrito(t *testing.T) {
	term, out, _, _ := newTestTerminal(t)
	ctx := context.Background()

	term.handle(ctx, "3kg rice")
	out.Reset()
	term.handle(ctx, "3kg rice")
	assert.Contains(t, out.String(), "no alcanza rice")
	require.Len(t, term.cart.Entries, 1)
	assert.True(t, decimal.NewFromInt(3).Equal(term.cart.Entries[0].Quantity))
}

func TestTerminal_CantidadYQuitarPorNumeroDeLinea(t *testing.T) {
	term, out, _, _ := newTestTerminal(t)
	ctx := context.Background()

	term.handle(ctx, "1kg rice")
	term.handle(ctx, ":cant 1 4")
	require.Len(t, term.cart.Entries, 1)
	assert.True(t, decimal.NewFromInt(4).Equal(term.cart.Entries[0].Quantity))

	out.Reset()
	term.handle(ctx, ":quitar 7")
	assert.Contains(t, out.String(), "línea inexistente")

	term.handle(ctx, ":quitar 1")
	assert.Empty(t, term.cart.Entries)
}

func TestTerminal_ArticuloDesconocidoYSalir(t *testing.T) {
	term, out, _, quit := newTestTerminal(t)
	ctx := context.Background()

	term.handle(ctx, "2kg saffron")
	assert.Contains(t, out.String(), "no encontré")

	term.handle(ctx, ":salir")
	assert.True(t, *quit)
}

func TestTerminal_CobrarCarritoVacio(t *testing.T) {
	term, out, _, _ := newTestTerminal(t)
	term.handle(context.Background(), ":cobrar")
	assert.Contains(t, out.String(), "vacío")
}
