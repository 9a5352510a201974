package orderparse

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/domain/entity"
)

// DefaultUnit unidad cuando no se reconoció ninguna y no hay artículo del catálogo.
const DefaultUnit = "pcs"

// Result es el resultado del parseo: Matched o Unmatched (variante cerrada).
// Usar type switch; no existen campos "opcionales" que leer por error.
type Result interface {
	// Phrase frase canónica (traducida) del pedido.
	Phrase() string
	isResult()
}

// Matched línea resuelta contra un artículo del catálogo.
// Item es una copia del artículo al momento del parseo (precios y stock incluidos).
type Matched struct {
	Item     entity.InventoryItem
	Text     string
	Quantity decimal.Decimal
	Unit     string
	Exact    bool // true si se resolvió por bypass exacto del texto original
}

// Unmatched línea sin artículo en el catálogo.
type Unmatched struct {
	Text     string
	Quantity decimal.Decimal
	Unit     string
}

func (m Matched) Phrase() string   { return m.Text }
func (u Unmatched) Phrase() string { return u.Text }

// InventoryID ID del artículo resuelto.
func (m Matched) InventoryID() string { return m.Item.ID }

func (Matched) isResult()   {}
func (Unmatched) isResult() {}
