package orderparse

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var unitAliases = map[string]string{
	"kg": "kg", "kgs": "kg", "kilo": "kg", "kilos": "kg", "kilogram": "kg", "kilograms": "kg",
	"g": "g", "gm": "g", "gms": "g", "gr": "g", "gram": "g", "grams": "g",
	"l": "l", "lt": "l", "ltr": "l", "litre": "l", "litres": "l", "liter": "l", "liters": "l",
	"ml": "ml",
	"pc": "pcs", "pcs": "pcs", "piece": "pcs", "pieces": "pcs",
	"pack": "pack", "packs": "pack", "packet": "pack", "packets": "pack", "pkt": "pack",
	"dozen": "dozen", "doz": "dozen",
}

type unitDimension struct {
	base   string
	factor decimal.Decimal
}

var unitDimensions = map[string]unitDimension{
	"kg":    {"g", decimal.NewFromInt(1000)},
	"g":     {"g", decimal.NewFromInt(1)},
	"l":     {"ml", decimal.NewFromInt(1000)},
	"ml":    {"ml", decimal.NewFromInt(1)},
	"dozen": {"pcs", decimal.NewFromInt(12)},
	"pcs":   {"pcs", decimal.NewFromInt(1)},
}

// CanonicalUnit lleva alias conocidos ("kilo", "ltr", "pkt") a su forma canónica.
// Unidades desconocidas se devuelven en minúsculas sin cambios.
func CanonicalUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if c, ok := unitAliases[u]; ok {
		return c
	}
	return u
}

// Errores de ConvertQuantity.
var (
	ErrIncompatibleUnits = errors.New("unidades de distinta dimensión o desconocidas")
	ErrInexactConversion = errors.New("la cantidad no se expresa exactamente en la unidad destino")
)

// ConvertQuantity convierte qty de la unidad from a la unidad to cuando ambas son de la misma
// dimensión (masa, volumen, conteo). Solo acepta conversiones exactas: 500 g son 0.5 kg, pero
// 5 pcs no tienen representación finita en docenas y devuelven ErrInexactConversion.
func ConvertQuantity(qty decimal.Decimal, from, to string) (decimal.Decimal, error) {
	f, okFrom := unitDimensions[CanonicalUnit(from)]
	t, okTo := unitDimensions[CanonicalUnit(to)]
	if !okFrom || !okTo || f.base != t.base {
		return qty, ErrIncompatibleUnits
	}
	base := qty.Mul(f.factor)
	converted := base.Div(t.factor)
	if !converted.Mul(t.factor).Equal(base) {
		return qty, ErrInexactConversion
	}
	return converted, nil
}
