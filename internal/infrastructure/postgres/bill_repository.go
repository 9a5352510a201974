package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementación del puerto BillRepository sobre PostgreSQL (usable con pool o tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// NextBillNumber upsert sobre bill_counters: el lock de la fila del dueño serializa los consecutivos
// hasta el fin de la tx; con rollback el número no se consume.
func (r *BillRepo) NextBillNumber(ctx context.Context, ownerID string) (int64, error) {
	query := `
		INSERT INTO bill_counters (owner_id, last_number) VALUES ($1, 1)
		ON CONFLICT (owner_id) DO UPDATE SET last_number = bill_counters.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(ctx, query, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("next bill number: %w", err)
	}
	return n, nil
}

// Create inserta la cabecera. cart_id repetido → domain.ErrAlreadyCommitted.
func (r *BillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	query := `
		INSERT INTO bills (id, owner_id, cart_id, bill_number, total_amount, total_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		bill.ID, bill.OwnerID, bill.CartID, bill.BillNumber, bill.TotalAmount, bill.TotalCost, bill.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) != "bills_owner_number_key" {
			return domain.ErrAlreadyCommitted
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de la cuenta.
func (r *BillRepo) CreateItem(ctx context.Context, item *entity.BillItem) error {
	query := `
		INSERT INTO bill_items (id, bill_id, inventory_id, item_name, quantity, unit, cost_price, selling_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.BillID, item.InventoryID, item.ItemName, item.Quantity, item.Unit,
		item.CostPrice, item.SellingPrice,
	)
	if err != nil {
		return fmt.Errorf("insert bill item: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta del dueño. (nil, nil) si no existe.
func (r *BillRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Bill, error) {
	query := `
		SELECT id, owner_id, cart_id, bill_number, total_amount, total_cost, created_at
		FROM bills WHERE id = $1 AND owner_id = $2`
	bill, err := scanBill(r.q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return bill, nil
}

// GetItems líneas de la cuenta en orden de inserción.
func (r *BillRepo) GetItems(ctx context.Context, billID string) ([]*entity.BillItem, error) {
	query := `
		SELECT id, bill_id, inventory_id, item_name, quantity, unit, cost_price, selling_price
		FROM bill_items WHERE bill_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("get bill items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BillItem
	for rows.Next() {
		var it entity.BillItem
		if err := rows.Scan(
			&it.ID, &it.BillID, &it.InventoryID, &it.ItemName, &it.Quantity, &it.Unit,
			&it.CostPrice, &it.SellingPrice,
		); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByOwner historial paginado, más recientes primero.
func (r *BillRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Bill, error) {
	query := `
		SELECT id, owner_id, cart_id, bill_number, total_amount, total_cost, created_at
		FROM bills WHERE owner_id = $1 ORDER BY bill_number DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, bill)
	}
	return list, rows.Err()
}

// TopSellers artículos más vendidos por cantidad e importe.
func (r *BillRepo) TopSellers(ctx context.Context, ownerID string, limit int) ([]entity.ItemSales, error) {
	query := `
		SELECT bi.item_name, SUM(bi.quantity), SUM(bi.quantity * bi.selling_price)
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.owner_id = $1
		GROUP BY bi.item_name
		ORDER BY SUM(bi.quantity * bi.selling_price) DESC, bi.item_name
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("top sellers: %w", err)
	}
	defer rows.Close()
	var list []entity.ItemSales
	for rows.Next() {
		var s entity.ItemSales
		if err := rows.Scan(&s.ItemName, &s.Quantity, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan top seller: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListBetween cuentas del período en orden de número.
func (r *BillRepo) ListBetween(ctx context.Context, ownerID string, from, to time.Time) ([]*entity.Bill, error) {
	query := `
		SELECT id, owner_id, cart_id, bill_number, total_amount, total_cost, created_at
		FROM bills WHERE owner_id = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY bill_number`
	rows, err := r.q.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bills between: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, bill)
	}
	return list, rows.Err()
}

// SalesBetween ingresos y costo del período. COALESCE devuelve cero si no hubo ventas.
func (r *BillRepo) SalesBetween(ctx context.Context, ownerID string, from, to time.Time) (entity.SalesTotals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0), COALESCE(SUM(total_cost), 0)
		FROM bills WHERE owner_id = $1 AND created_at BETWEEN $2 AND $3`
	var t entity.SalesTotals
	if err := r.q.QueryRow(ctx, query, ownerID, from, to).Scan(&t.BillCount, &t.Revenue, &t.Cost); err != nil {
		return entity.SalesTotals{}, fmt.Errorf("sales between: %w", err)
	}
	return t, nil
}

func scanBill(row pgx.Row) (*entity.Bill, error) {
	var b entity.Bill
	if err := row.Scan(&b.ID, &b.OwnerID, &b.CartID, &b.BillNumber, &b.TotalAmount, &b.TotalCost, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
