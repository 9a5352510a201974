package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/application/ordering"
	"github.com/jhoicas/kirana-pos/internal/domain"
)

const helpText = `comandos:
  <texto>         agrega al carrito ("2kg rice", "okati doodh")
  :total          muestra el carrito
  :cant N Q       fija la cantidad de la línea N
  :quitar N       quita la línea N
  :cobrar         confirma la cuenta y abre un carrito nuevo
  :salir          termina
`

// terminal atiende las líneas transcritas de una caja. No es seguro para uso concurrente:
// el Listener entrega de a una.
type terminal struct {
	uc     *ordering.OrderEntryUseCase
	owner  string
	cart   *dto.CartResponse
	out    io.Writer
	onQuit func()
}

func newTerminal(ctx context.Context, uc *ordering.OrderEntryUseCase, owner string, out io.Writer, onQuit func()) (*terminal, error) {
	c, err := uc.OpenCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &terminal{uc: uc, owner: owner, cart: c, out: out, onQuit: onQuit}, nil
}

// handle interpreta una línea: comando si empieza con ':', pedido en otro caso.
func (t *terminal) handle(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if !strings.HasPrefix(line, ":") {
		t.apply(t.uc.AddItem(ctx, t.owner, t.cart.ID, line))
		return
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		fmt.Fprint(t.out, helpText)
		return
	}
	switch cmd, args := fields[0], fields[1:]; cmd {
	case "total":
		t.printCart()
	case "cant":
		if len(args) != 2 {
			fmt.Fprintln(t.out, "uso: :cant N Q")
			return
		}
		entryID, ok := t.entryAt(args[0])
		if !ok {
			return
		}
		qty, err := decimal.NewFromString(args[1])
		if err != nil {
			fmt.Fprintf(t.out, "cantidad inválida: %s\n", args[1])
			return
		}
		t.apply(t.uc.UpdateQuantity(ctx, t.owner, t.cart.ID, entryID, qty))
	case "quitar":
		if len(args) != 1 {
			fmt.Fprintln(t.out, "uso: :quitar N")
			return
		}
		entryID, ok := t.entryAt(args[0])
		if !ok {
			return
		}
		t.apply(t.uc.RemoveItem(ctx, t.owner, t.cart.ID, entryID))
	case "cobrar":
		t.checkout(ctx)
	case "salir":
		if t.onQuit != nil {
			t.onQuit()
		}
	default:
		fmt.Fprint(t.out, helpText)
	}
}

func (t *terminal) apply(c *dto.CartResponse, err error) {
	if err != nil {
		t.printError(err)
		return
	}
	t.cart = c
	t.printCart()
}

func (t *terminal) checkout(ctx context.Context) {
	out, err := t.uc.Checkout(ctx, t.owner, t.cart.ID)
	if err != nil {
		t.printError(err)
		return
	}
	fmt.Fprintf(t.out, "cuenta #%d confirmada: total %s (ganancia %s)\n",
		out.Bill.BillNumber, out.Bill.TotalAmount.StringFixed(2), out.Bill.Profit.StringFixed(2))
	next := out.NextCart
	t.cart = &next
}

// entryAt resuelve el número de línea (1..n) mostrado en pantalla.
func (t *terminal) entryAt(s string) (string, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(t.cart.Entries) {
		fmt.Fprintf(t.out, "línea inexistente: %s\n", s)
		return "", false
	}
	return t.cart.Entries[n-1].ID, true
}

func (t *terminal) printCart() {
	if len(t.cart.Entries) == 0 {
		fmt.Fprintln(t.out, "carrito vacío")
		return
	}
	w := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i, e := range t.cart.Entries {
		fmt.Fprintf(w, "%d\t%s\t%s %s\t%s\t\n", i+1, e.ItemName, e.Quantity.String(), e.Unit, e.Amount.StringFixed(2))
	}
	fmt.Fprintf(w, "\tTOTAL\t\t%s\t\n", t.cart.TotalAmount.StringFixed(2))
	w.Flush()
}

func (t *terminal) printError(err error) {
	var stockErr *domain.StockError
	switch {
	case errors.As(err, &stockErr):
		fmt.Fprintf(t.out, "no alcanza %s: hay %s %s, faltan %s\n",
			stockErr.ItemName, stockErr.Available.String(), stockErr.Unit, stockErr.Shortfall().String())
	case errors.Is(err, domain.ErrItemNotFound):
		fmt.Fprintln(t.out, "no encontré ese artículo en el inventario")
	case errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrCommitConflict),
		errors.Is(err, domain.ErrEntryNotFound):
		fmt.Fprintln(t.out, err.Error())
	default:
		fmt.Fprintf(t.out, "error: %v\n", err)
	}
}
