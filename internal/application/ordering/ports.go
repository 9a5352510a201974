package ordering

import (
	"context"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/domain/cart"
)

// BillCommitter confirma un carrito como cuenta (implementado por billing.CommitBillUseCase).
type BillCommitter interface {
	Commit(ctx context.Context, ownerID string, c cart.Cart) (*dto.BillReceipt, error)
}

// Metrics contadores de parseo y de operaciones de carrito.
type Metrics interface {
	ObserveParse(result string)
	ObserveCartOp(op, outcome string)
	SetActiveCarts(n int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveParse(string)          {}
func (nopMetrics) ObserveCartOp(string, string) {}
func (nopMetrics) SetActiveCarts(int)           {}
