package billing

import (
	"context"
	"time"

	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de UNA transacción con los repos de cuentas e
// inventario atados a ella. Si fn devuelve error se hace rollback de todo.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		billRepo repository.BillRepository,
		inventoryRepo repository.InventoryRepository,
	) error) error
}

// CommitMetrics observa el resultado de cada confirmación (ok, conflict, already_committed,
// invalid, failure).
type CommitMetrics interface {
	ObserveCommit(outcome string, d time.Duration)
}

// ReceiptData datos para renderizar el comprobante.
type ReceiptData struct {
	Shop  *entity.User
	Bill  *entity.Bill
	Items []*entity.BillItem
}

// ReceiptRenderer genera el comprobante imprimible (PDF) de una cuenta.
type ReceiptRenderer interface {
	RenderReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}

// ExportData datos para exportar el historial de cuentas.
type ExportData struct {
	ShopName   string
	Bills      []*entity.Bill
	TopSellers []entity.ItemSales
}

// BillExporter exporta el historial a un libro de cálculo.
type BillExporter interface {
	ExportBills(ctx context.Context, data ExportData) ([]byte, error)
}

type nopMetrics struct{}

func (nopMetrics) ObserveCommit(string, time.Duration) {}
