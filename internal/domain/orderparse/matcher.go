package orderparse

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/domain/entity"
)

// Match resuelve la línea contra el catálogo. Prioridad, la primera que acierte gana:
//  1. bypass exacto: el texto ORIGINAL (sin puntuación, sin mayúsculas) es igual a un nombre
//     del catálogo → cantidad 1 y la unidad del artículo, ignore lo extraído;
//  2. la frase traducida está contenida en un nombre (catálogo ordenado por nombre);
//  3. Unmatched con la frase tal cual y la unidad extraída o "pcs".
func Match(raw string, ext Extraction, phrase string, catalog []*entity.InventoryItem) Result {
	sorted := sortedCatalog(catalog)

	if key := NameKey(raw); key != "" {
		for _, item := range sorted {
			if NameKey(item.Name) == key {
				return Matched{
					Item:     *item,
					Text:     phrase,
					Quantity: decimal.NewFromInt(1),
					Unit:     item.Unit,
					Exact:    true,
				}
			}
		}
	}

	if needle := strings.ToLower(strings.TrimSpace(phrase)); needle != "" {
		for _, item := range sorted {
			if strings.Contains(strings.ToLower(item.Name), needle) {
				unit := ext.Unit
				if unit == "" {
					unit = item.Unit
				}
				return Matched{
					Item:     *item,
					Text:     phrase,
					Quantity: ext.Quantity,
					Unit:     unit,
				}
			}
		}
	}

	unit := ext.Unit
	if unit == "" {
		unit = DefaultUnit
	}
	return Unmatched{Text: phrase, Quantity: ext.Quantity, Unit: unit}
}

// sortedCatalog copia ordenada por nombre (sin mayúsculas) y luego por ID, para que el
// primer acierto por contención no dependa del orden de llegada del catálogo.
func sortedCatalog(catalog []*entity.InventoryItem) []*entity.InventoryItem {
	out := make([]*entity.InventoryItem, 0, len(catalog))
	for _, it := range catalog {
		if it != nil {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}
