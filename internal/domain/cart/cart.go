// Package cart mantiene el carrito de trabajo de una venta.
//
// Todas las operaciones reciben un Cart y devuelven uno nuevo; el valor recibido nunca se
// modifica. Así un rechazo (stock insuficiente, línea inexistente) deja el carrito del llamador
// exactamente como estaba.
package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/orderparse"
)

// Entry línea del carrito. Precios y stock son copias tomadas al agregar el artículo.
type Entry struct {
	ID             string
	InventoryID    *string // nil = línea libre, sin tope de stock ni descuento de inventario
	ItemName       string
	Quantity       decimal.Decimal
	Unit           string
	SellingPrice   decimal.Decimal
	CostPrice      decimal.Decimal
	AvailableStock decimal.Decimal
}

// IsCustom indica si la línea no está ligada a un artículo del inventario.
func (e Entry) IsCustom() bool { return e.InventoryID == nil }

// Amount importe de venta de la línea.
func (e Entry) Amount() decimal.Decimal { return e.SellingPrice.Mul(e.Quantity) }

// Cost costo de la línea.
func (e Entry) Cost() decimal.Decimal { return e.CostPrice.Mul(e.Quantity) }

// Cart carrito de trabajo. ID identifica al carrito durante toda su vida y sirve como
// clave de idempotencia al confirmar la cuenta.
type Cart struct {
	ID      string
	Entries []Entry
}

// Totals totales calculados desde las copias de precio del carrito.
type Totals struct {
	Amount decimal.Decimal
	Cost   decimal.Decimal
	Lines  int
}

// New crea un carrito vacío con ID nuevo.
func New() Cart {
	return Cart{ID: uuid.NewString()}
}

// IsEmpty indica si el carrito no tiene líneas.
func (c Cart) IsEmpty() bool { return len(c.Entries) == 0 }

// Totals suma importes y costos de todas las líneas.
func (c Cart) Totals() Totals {
	t := Totals{Amount: decimal.Zero, Cost: decimal.Zero, Lines: len(c.Entries)}
	for _, e := range c.Entries {
		t.Amount = t.Amount.Add(e.Amount())
		t.Cost = t.Cost.Add(e.Cost())
	}
	return t
}

// Entry busca una línea por ID.
func (c Cart) Entry(entryID string) (Entry, bool) {
	if i := c.indexOf(entryID); i >= 0 {
		return c.Entries[i], true
	}
	return Entry{}, false
}

func (c Cart) indexOf(entryID string) int {
	for i, e := range c.Entries {
		if e.ID == entryID {
			return i
		}
	}
	return -1
}

func (c Cart) indexOfInventory(inventoryID string) int {
	for i, e := range c.Entries {
		if e.InventoryID != nil && *e.InventoryID == inventoryID {
			return i
		}
	}
	return -1
}

func (c Cart) clone() Cart {
	out := Cart{ID: c.ID, Entries: make([]Entry, len(c.Entries))}
	copy(out.Entries, c.Entries)
	return out
}

// AddItem agrega el resultado del parser al carrito.
//
//   - Unmatched → domain.ErrItemNotFound.
//   - Artículo sin stock → domain.ErrOutOfStock.
//   - Si ya existe una línea del mismo artículo se suman cantidades; si la suma supera el
//     stock copiado en esa línea se rechaza con *domain.StockError (sin merge parcial).
//   - Línea nueva con cantidad mayor al stock → *domain.StockError.
//
// La cantidad se convierte a la unidad del catálogo cuando ambas unidades son de la misma
// dimensión (500g contra un artículo en kg se registra como 0.5 kg). Si la conversión no es
// exacta (5 pcs contra un artículo en docenas) se rechaza con domain.ErrInvalidInput.
func AddItem(c Cart, result orderparse.Result) (Cart, error) {
	var m orderparse.Matched
	switch r := result.(type) {
	case orderparse.Matched:
		m = r
	case orderparse.Unmatched:
		return c, fmt.Errorf("%w: %q", domain.ErrItemNotFound, r.Text)
	default:
		return c, fmt.Errorf("%w: resultado de parseo vacío", domain.ErrItemNotFound)
	}

	item := m.Item
	if !item.InStock() {
		return c, fmt.Errorf("%w: %s", domain.ErrOutOfStock, item.Name)
	}
	qty := m.Quantity
	if !qty.GreaterThan(decimal.Zero) {
		return c, fmt.Errorf("%w: cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if m.Unit != "" && orderparse.CanonicalUnit(m.Unit) != orderparse.CanonicalUnit(item.Unit) {
		converted, err := orderparse.ConvertQuantity(qty, m.Unit, item.Unit)
		switch {
		case err == nil:
			qty = converted
		case errors.Is(err, orderparse.ErrInexactConversion):
			return c, fmt.Errorf("%w: %s %s no se puede registrar exacto en %s",
				domain.ErrInvalidInput, m.Quantity.String(), m.Unit, item.Unit)
		}
	}

	if i := c.indexOfInventory(item.ID); i >= 0 {
		existing := c.Entries[i]
		merged := existing.Quantity.Add(qty)
		if merged.GreaterThan(existing.AvailableStock) {
			return c, &domain.StockError{
				ItemName:  existing.ItemName,
				Unit:      existing.Unit,
				Requested: merged,
				Available: existing.AvailableStock,
			}
		}
		out := c.clone()
		out.Entries[i].Quantity = merged
		return out, nil
	}

	if qty.GreaterThan(item.QuantityOnHand) {
		return c, &domain.StockError{
			ItemName:  item.Name,
			Unit:      item.Unit,
			Requested: qty,
			Available: item.QuantityOnHand,
		}
	}
	id := item.ID
	out := c.clone()
	out.Entries = append(out.Entries, Entry{
		ID:             uuid.NewString(),
		InventoryID:    &id,
		ItemName:       item.Name,
		Quantity:       qty,
		Unit:           item.Unit,
		SellingPrice:   item.SellingPrice,
		CostPrice:      item.CostPrice,
		AvailableStock: item.QuantityOnHand,
	})
	return out, nil
}

// UpdateQuantity fija la cantidad de una línea. Cantidad <= 0 elimina la línea.
// Para líneas de inventario, superar el stock copiado se rechaza con *domain.StockError.
func UpdateQuantity(c Cart, entryID string, quantity decimal.Decimal) (Cart, error) {
	i := c.indexOf(entryID)
	if i < 0 {
		return c, domain.ErrEntryNotFound
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return RemoveItem(c, entryID), nil
	}
	e := c.Entries[i]
	if !e.IsCustom() && quantity.GreaterThan(e.AvailableStock) {
		return c, &domain.StockError{
			ItemName:  e.ItemName,
			Unit:      e.Unit,
			Requested: quantity,
			Available: e.AvailableStock,
		}
	}
	out := c.clone()
	out.Entries[i].Quantity = quantity
	return out, nil
}

// RemoveItem quita la línea. Un ID desconocido no cambia nada.
func RemoveItem(c Cart, entryID string) Cart {
	i := c.indexOf(entryID)
	if i < 0 {
		return c
	}
	out := Cart{ID: c.ID, Entries: make([]Entry, 0, len(c.Entries)-1)}
	out.Entries = append(out.Entries, c.Entries[:i]...)
	out.Entries = append(out.Entries, c.Entries[i+1:]...)
	return out
}

// AddCustomLine agrega una línea libre (bolsa, servicio, artículo fuera de catálogo).
// Sin costo conocido, el costo se toma igual al precio: margen cero.
func AddCustomLine(c Cart, name string, quantity decimal.Decimal, unit string, price decimal.Decimal) (Cart, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return c, fmt.Errorf("%w: cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if price.IsNegative() {
		return c, fmt.Errorf("%w: precio no puede ser negativo", domain.ErrInvalidInput)
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = orderparse.DefaultUnit
	}
	out := c.clone()
	out.Entries = append(out.Entries, Entry{
		ID:             uuid.NewString(),
		ItemName:       name,
		Quantity:       quantity,
		Unit:           unit,
		SellingPrice:   price,
		CostPrice:      price,
		AvailableStock: decimal.Zero,
	})
	return out, nil
}

// Validate revisa las invariantes de cada línea antes de confirmar la cuenta:
// cantidad > 0 y, para líneas de inventario, cantidad <= stock copiado.
func Validate(c Cart) error {
	if c.IsEmpty() {
		return domain.ErrEmptyCart
	}
	for _, e := range c.Entries {
		if !e.Quantity.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: cantidad inválida en %s", domain.ErrInvalidInput, e.ItemName)
		}
		if !e.IsCustom() && e.Quantity.GreaterThan(e.AvailableStock) {
			return &domain.StockError{
				ItemName:  e.ItemName,
				Unit:      e.Unit,
				Requested: e.Quantity,
				Available: e.AvailableStock,
			}
		}
	}
	return nil
}
