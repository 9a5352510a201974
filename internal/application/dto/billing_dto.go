package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillReceipt resultado de confirmar una cuenta y detalle en GET /api/bills/:id.
type BillReceipt struct {
	BillID      string             `json:"bill_id"`
	BillNumber  int64              `json:"bill_number"`
	CartID      string             `json:"cart_id"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	TotalCost   decimal.Decimal    `json:"total_cost"`
	Profit      decimal.Decimal    `json:"profit"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []BillItemResponse `json:"items"`
}

// BillItemResponse línea de la cuenta (copias de precio al confirmar).
type BillItemResponse struct {
	ID           string          `json:"id"`
	InventoryID  *string         `json:"inventory_id"`
	ItemName     string          `json:"item_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Amount       decimal.Decimal `json:"amount"`
}

// BillSummary fila del historial de cuentas.
type BillSummary struct {
	BillID      string          `json:"bill_id"`
	BillNumber  int64           `json:"bill_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Profit      decimal.Decimal `json:"profit"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BillListResponse historial paginado.
type BillListResponse struct {
	Items []BillSummary `json:"items"`
	Page  PageResponse  `json:"page"`
}
