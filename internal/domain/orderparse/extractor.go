package orderparse

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// quantityPattern gramática anclada: <número>(<unidad>)? <resto>.
// La unidad es la secuencia máxima de caracteres que no son espacio ni dígito pegada al número.
var quantityPattern = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)([^\s\d]*)(?:\s+(.*))?$`)

// Extraction resultado del extractor cantidad-unidad.
// Found es false cuando no hubo número válido al inicio (ParseFailure recuperable).
type Extraction struct {
	Quantity  decimal.Decimal
	Unit      string
	Remainder string
	Found     bool
}

// Extract separa cantidad, unidad y frase del texto normalizado.
// Si no hay número al inicio, o es <= 0, la cantidad es 1, la unidad vacía y todo el texto es la frase.
func Extract(normalized string) Extraction {
	fallback := Extraction{Quantity: decimal.NewFromInt(1), Remainder: normalized}
	m := quantityPattern.FindStringSubmatch(normalized)
	if m == nil {
		return fallback
	}
	qty, err := decimal.NewFromString(m[1])
	if err != nil || !qty.GreaterThan(decimal.Zero) {
		return fallback
	}
	return Extraction{
		Quantity:  qty,
		Unit:      m[2],
		Remainder: m[3],
		Found:     true,
	}
}
