package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
)

// Columnas esperadas (la primera fila es cabecera y se ignora).
const (
	colName = iota
	colUnit
	colQuantity
	colCost
	colPrice
	numCols
)

// rowError fila del CSV que no se pudo interpretar.
type rowError struct {
	Line int
	Err  error
}

func (e rowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// readRows lee el catálogo desde r. Con latin1 el archivo se decodifica desde ISO-8859-1
// (exportaciones de planillas viejas). Las filas inválidas se devuelven aparte, sin cortar la lectura.
func readRows(r io.Reader, latin1 bool) ([]dto.CreateInventoryItemRequest, []rowError, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		items   []dto.CreateInventoryItemRequest
		badRows []rowError
	)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("leer CSV: %w", err)
		}
		if line == 1 {
			continue
		}
		item, err := parseRow(rec)
		if err != nil {
			badRows = append(badRows, rowError{Line: line, Err: err})
			continue
		}
		items = append(items, item)
	}
	return items, badRows, nil
}

func parseRow(rec []string) (dto.CreateInventoryItemRequest, error) {
	if len(rec) < numCols {
		return dto.CreateInventoryItemRequest{}, fmt.Errorf("se esperaban %d columnas, hay %d", numCols, len(rec))
	}
	name := strings.TrimSpace(rec[colName])
	if name == "" {
		return dto.CreateInventoryItemRequest{}, errors.New("nombre vacío")
	}
	var nums [3]decimal.Decimal
	for i, col := range []int{colQuantity, colCost, colPrice} {
		v, err := decimal.NewFromString(strings.TrimSpace(rec[col]))
		if err != nil {
			return dto.CreateInventoryItemRequest{}, fmt.Errorf("columna %d: número inválido %q", col+1, rec[col])
		}
		nums[i] = v
	}
	return dto.CreateInventoryItemRequest{
		Name:           name,
		Unit:           strings.TrimSpace(rec[colUnit]),
		QuantityOnHand: nums[0],
		CostPrice:      nums[1],
		SellingPrice:   nums[2],
	}, nil
}
