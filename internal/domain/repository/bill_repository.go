package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kirana-pos/internal/domain/entity"
)

// BillRepository define el puerto de persistencia para cuentas y sus líneas.
type BillRepository interface {
	// NextBillNumber reserva el siguiente consecutivo del dueño. Dentro de una tx,
	// el número se libera si la tx hace rollback.
	NextBillNumber(ctx context.Context, ownerID string) (int64, error)
	Create(ctx context.Context, bill *entity.Bill) error
	CreateItem(ctx context.Context, item *entity.BillItem) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Bill, error)
	GetItems(ctx context.Context, billID string) ([]*entity.BillItem, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Bill, error)
	TopSellers(ctx context.Context, ownerID string, limit int) ([]entity.ItemSales, error)
	// ListBetween cuentas creadas en [from, to], en orden de número.
	ListBetween(ctx context.Context, ownerID string, from, to time.Time) ([]*entity.Bill, error)
	// SalesBetween suma ingresos y costos de las cuentas creadas en [from, to].
	SalesBetween(ctx context.Context, ownerID string, from, to time.Time) (entity.SalesTotals, error)
}
