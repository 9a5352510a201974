package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/cart"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
	"github.com/jhoicas/kirana-pos/pkg/logger"
)

// Resultados de una confirmación (etiqueta de métricas y logs).
const (
	OutcomeOK               = "ok"
	OutcomeInvalid          = "invalid"
	OutcomeConflict         = "conflict"
	OutcomeAlreadyCommitted = "already_committed"
	OutcomeFailure          = "failure"
)

// CommitBillUseCase confirma un carrito como cuenta: cabecera, líneas y descuento de inventario
// en una sola transacción. Nunca reintenta.
type CommitBillUseCase struct {
	txRunner BillingTxRunner
	metrics  CommitMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewCommitBillUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewCommitBillUseCase(txRunner BillingTxRunner, metrics CommitMetrics, log *logger.Logger) *CommitBillUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CommitBillUseCase{
		txRunner: txRunner,
		metrics:  metrics,
		log:      log.Component("billing"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Commit valida el carrito, calcula totales desde las copias de precio y persiste todo en una tx.
//
// Retorna:
//   - domain.ErrEmptyCart / domain.ErrInvalidInput / *domain.StockError si el carrito no es válido
//     (la base de datos no se toca).
//   - *domain.CommitConflictError si el descuento condicionado de alguna línea no aplicó.
//   - domain.ErrAlreadyCommitted si el carrito ya se facturó.
//   - domain.ErrTransactionFailure envolviendo la causa para cualquier otro fallo de persistencia.
func (uc *CommitBillUseCase) Commit(ctx context.Context, ownerID string, c cart.Cart) (*dto.BillReceipt, error) {
	start := time.Now()
	receipt, err := uc.commit(ctx, ownerID, c)
	outcome := commitOutcome(err)
	uc.metrics.ObserveCommit(outcome, time.Since(start))

	if err != nil {
		ev := uc.log.Warn()
		if outcome == OutcomeFailure {
			ev = uc.log.Error()
		}
		ev.Err(err).
			Str("owner_id", ownerID).
			Str("cart_id", c.ID).
			Str("outcome", outcome).
			Msg("confirmación de cuenta rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("owner_id", ownerID).
		Str("cart_id", c.ID).
		Str("bill_id", receipt.BillID).
		Int64("bill_number", receipt.BillNumber).
		Str("total", receipt.TotalAmount.String()).
		Msg("cuenta confirmada")
	return receipt, nil
}

func (uc *CommitBillUseCase) commit(ctx context.Context, ownerID string, c cart.Cart) (*dto.BillReceipt, error) {
	if ownerID == "" || c.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := cart.Validate(c); err != nil {
		return nil, err
	}

	totals := c.Totals()
	now := uc.now()
	bill := &entity.Bill{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		CartID:      c.ID,
		TotalAmount: totals.Amount,
		TotalCost:   totals.Cost,
		CreatedAt:   now,
	}
	items := make([]*entity.BillItem, 0, len(c.Entries))
	for _, e := range c.Entries {
		var invID *string
		if e.InventoryID != nil {
			id := *e.InventoryID
			invID = &id
		}
		items = append(items, &entity.BillItem{
			ID:           uuid.New().String(),
			BillID:       bill.ID,
			InventoryID:  invID,
			ItemName:     e.ItemName,
			Quantity:     e.Quantity,
			Unit:         e.Unit,
			CostPrice:    e.CostPrice,
			SellingPrice: e.SellingPrice,
		})
	}
	decrements := stockDecrements(c)

	err := uc.txRunner.RunBilling(ctx, func(billRepo repository.BillRepository, inventoryRepo repository.InventoryRepository) error {
		number, err := billRepo.NextBillNumber(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("reservar consecutivo: %w", err)
		}
		bill.BillNumber = number

		if err := billRepo.Create(ctx, bill); err != nil {
			return err
		}
		for _, item := range items {
			if err := billRepo.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("insertar línea %s: %w", item.ItemName, err)
			}
		}
		// Orden fijo por inventory_id: dos cuentas concurrentes toman los locks en el mismo orden.
		for _, d := range decrements {
			ok, err := inventoryRepo.DecrementGuarded(ctx, ownerID, d.inventoryID, d.quantity)
			if err != nil {
				return fmt.Errorf("descontar %s: %w", d.itemName, err)
			}
			if !ok {
				return &domain.CommitConflictError{
					InventoryID: d.inventoryID,
					ItemName:    d.itemName,
					Quantity:    d.quantity,
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCommitConflict) || errors.Is(err, domain.ErrAlreadyCommitted) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionFailure, err)
	}
	return ToBillReceipt(bill, items), nil
}

type stockDecrement struct {
	inventoryID string
	itemName    string
	quantity    decimal.Decimal
}

// stockDecrements agrupa las líneas de inventario por artículo y las ordena por inventory_id.
func stockDecrements(c cart.Cart) []stockDecrement {
	byID := make(map[string]*stockDecrement)
	for _, e := range c.Entries {
		if e.InventoryID == nil {
			continue
		}
		if d, ok := byID[*e.InventoryID]; ok {
			d.quantity = d.quantity.Add(e.Quantity)
			continue
		}
		byID[*e.InventoryID] = &stockDecrement{inventoryID: *e.InventoryID, itemName: e.ItemName, quantity: e.Quantity}
	}
	out := make([]stockDecrement, 0, len(byID))
	for _, d := range byID {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].inventoryID < out[j].inventoryID })
	return out
}

func commitOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrCommitConflict):
		return OutcomeConflict
	case errors.Is(err, domain.ErrAlreadyCommitted):
		return OutcomeAlreadyCommitted
	case errors.Is(err, domain.ErrTransactionFailure):
		return OutcomeFailure
	default:
		return OutcomeInvalid
	}
}

// ToBillReceipt arma la respuesta de la cuenta a partir de cabecera y líneas.
func ToBillReceipt(bill *entity.Bill, items []*entity.BillItem) *dto.BillReceipt {
	out := &dto.BillReceipt{
		BillID:      bill.ID,
		BillNumber:  bill.BillNumber,
		CartID:      bill.CartID,
		TotalAmount: bill.TotalAmount,
		TotalCost:   bill.TotalCost,
		Profit:      bill.Profit(),
		CreatedAt:   bill.CreatedAt,
		Items:       make([]dto.BillItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.BillItemResponse{
			ID:           it.ID,
			InventoryID:  it.InventoryID,
			ItemName:     it.ItemName,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			CostPrice:    it.CostPrice,
			SellingPrice: it.SellingPrice,
			Amount:       it.Amount(),
		})
	}
	return out
}
