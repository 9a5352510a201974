// Package pdf genera el comprobante imprimible de una cuenta confirmada.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Tienda + tendero │ N° cuenta + fecha │
//	│  ───────────────────────────────────────────  │
//	│  TIENDA: Dirección / Tel                      │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Unidad | Artículo | P.Unit | Importe │
//	│  ───────────────────────────────────────────  │
//	│  TOTAL                                        │
//	│  FOOTER: QR con la referencia de la cuenta    │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/application/billing"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
)

var _ billing.ReceiptRenderer = (*ReceiptRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// currencyPrefix prefijo de importes; las fuentes estándar no tienen el signo de rupia.
const currencyPrefix = "Rs. "

// ── Renderer ──────────────────────────────────────────────────────────────────

// ReceiptRenderer implementa billing.ReceiptRenderer usando Maroto v2.
type ReceiptRenderer struct{}

// NewReceiptRenderer construye el renderer.
func NewReceiptRenderer() *ReceiptRenderer { return &ReceiptRenderer{} }

// RenderReceipt genera el PDF de la cuenta y devuelve sus bytes.
func (g *ReceiptRenderer) RenderReceipt(_ context.Context, data billing.ReceiptData) ([]byte, error) {
	if data.Bill == nil {
		return nil, fmt.Errorf("pdf: cuenta requerida")
	}
	shop := data.Shop
	if shop == nil {
		shop = &entity.User{}
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Cuenta %06d", data.Bill.BillNumber), true).
		WithAuthor(nonEmpty(shop.ShopName, "kirana-pos"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Bill, shop))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(shopRow(shop))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(data.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(data.Bill))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(data.Bill, shop))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda + tendero (izq) y N° cuenta + fecha (der).
func headerRow(bill *entity.Bill, shop *entity.User) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(shop.ShopName, "Tienda"), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(shop.ShopkeeperName, props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %06d", bill.BillNumber), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New(bill.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// shopRow: contacto de la tienda.
func shopRow(shop *entity.User) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s",
				nonEmpty(shop.Address, "-"),
				nonEmpty(shop.Phone, "-"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Cant.", 2, align.Center),
		h("Unidad", 1, align.Center),
		h("Artículo", 4, align.Left),
		h("P. unit.", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea de la cuenta.
func tableDetailRows(items []*entity.BillItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(6).Add(
			col.New(2).Add(text.New(formatQuantity(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(it.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(it.ItemName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(it.SellingPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatMoney(it.Amount()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalRow(bill *entity.Bill) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(bill.TotalAmount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRow: QR con tienda, número y total para verificar la cuenta en caja.
func footerRow(bill *entity.Bill, shop *entity.User) core.Row {
	ref := fmt.Sprintf("%s|%06d|%s|%s", shop.ID, bill.BillNumber, bill.TotalAmount.StringFixed(2), bill.ID)
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(ref, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Gracias por su compra.", props.Text{Style: fontstyle.Bold, Size: 9, Top: 6, Left: 3, Color: colorPrimary}),
			text.New("Ref. "+bill.ID, props.Text{Size: 6.5, Top: 14, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQuantity sin ceros decimales sobrantes: 2 → "2", 0.250 → "0.25".
func formatQuantity(q decimal.Decimal) string {
	return q.String()
}

// formatMoney dos decimales con separador de miles: 1234567.5 → "Rs. 1,234,567.50".
func formatMoney(v decimal.Decimal) string {
	s := v.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return currencyPrefix + sign + groupThousands(intPart) + "." + frac
}

// groupThousands inserta comas de miles en un string de dígitos.
// Ej: "25000" → "25,000", "1000000" → "1,000,000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
