// Package excel exporta el historial de cuentas a XLSX con excelize.
package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/kirana-pos/internal/application/billing"
)

var _ billing.BillExporter = (*BillExporter)(nil)

const (
	sheetBills      = "Cuentas"
	sheetTopSellers = "Más vendidos"
)

// BillExporter libro con dos hojas: cuentas (una fila por cuenta) y artículos más vendidos.
type BillExporter struct{}

// NewBillExporter construye el exportador.
func NewBillExporter() *BillExporter { return &BillExporter{} }

// ExportBills genera el libro y devuelve sus bytes.
func (e *BillExporter) ExportBills(_ context.Context, data billing.ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetBills); err != nil {
		return nil, fmt.Errorf("excel: hoja de cuentas: %w", err)
	}
	if err := writeRows(f, sheetBills, []any{"N° cuenta", "Fecha", "Total", "Costo", "Ganancia"}, billRows(data)); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(sheetBills, "A", "A", 12)
	_ = f.SetColWidth(sheetBills, "B", "B", 18)
	_ = f.SetColWidth(sheetBills, "C", "E", 14)

	if _, err := f.NewSheet(sheetTopSellers); err != nil {
		return nil, fmt.Errorf("excel: hoja de más vendidos: %w", err)
	}
	if err := writeRows(f, sheetTopSellers, []any{"Artículo", "Cantidad", "Ventas"}, topSellerRows(data)); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(sheetTopSellers, "A", "A", 30)
	_ = f.SetColWidth(sheetTopSellers, "B", "C", 14)

	if data.ShopName != "" {
		_ = f.SetDocProps(&excelize.DocProperties{Title: "Cuentas - " + data.ShopName, Creator: data.ShopName})
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func billRows(data billing.ExportData) [][]any {
	rows := make([][]any, 0, len(data.Bills))
	for _, b := range data.Bills {
		rows = append(rows, []any{
			b.BillNumber,
			b.CreatedAt.Format("2006-01-02 15:04"),
			b.TotalAmount.InexactFloat64(),
			b.TotalCost.InexactFloat64(),
			b.Profit().InexactFloat64(),
		})
	}
	return rows
}

func topSellerRows(data billing.ExportData) [][]any {
	rows := make([][]any, 0, len(data.TopSellers))
	for _, s := range data.TopSellers {
		rows = append(rows, []any{s.ItemName, s.Quantity.InexactFloat64(), s.Revenue.InexactFloat64()})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("excel: encabezado %s: %w", sheet, err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("excel: fila %d de %s: %w", i+2, sheet, err)
		}
	}
	return nil
}
