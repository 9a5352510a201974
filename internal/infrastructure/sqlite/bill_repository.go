package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

const billColumns = `id, owner_id, cart_id, bill_number, total_amount, total_cost, created_at`

// BillRepo cuentas sobre SQLite.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador.
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

func (r *BillRepo) NextBillNumber(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO bill_counters (owner_id, last_number) VALUES (?, 1)
		ON CONFLICT (owner_id) DO UPDATE SET last_number = bill_counters.last_number + 1
		RETURNING last_number`, ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next bill number: %w", err)
	}
	return n, nil
}

func (r *BillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO bills (`+billColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.OwnerID, bill.CartID, bill.BillNumber,
		bill.TotalAmount.String(), bill.TotalCost.String(), toUnix(bill.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "bills.cart_id") {
			return domain.ErrAlreadyCommitted
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

func (r *BillRepo) CreateItem(ctx context.Context, item *entity.BillItem) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO bill_items (id, bill_id, inventory_id, item_name, quantity, unit, cost_price, selling_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.BillID, nullString(item.InventoryID), item.ItemName, item.Quantity.String(), item.Unit,
		item.CostPrice.String(), item.SellingPrice.String(),
	)
	if err != nil {
		return fmt.Errorf("insert bill item: %w", err)
	}
	return nil
}

func (r *BillRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Bill, error) {
	bill, err := scanBill(r.q.QueryRowContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE id = ? AND owner_id = ?`, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return bill, nil
}

func (r *BillRepo) GetItems(ctx context.Context, billID string) ([]*entity.BillItem, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, bill_id, inventory_id, item_name, quantity, unit, cost_price, selling_price
		FROM bill_items WHERE bill_id = ? ORDER BY rowid`, billID)
	if err != nil {
		return nil, fmt.Errorf("get bill items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BillItem
	for rows.Next() {
		item, err := scanBillItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func (r *BillRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Bill, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE owner_id = ? ORDER BY bill_number DESC LIMIT ? OFFSET ?`,
		ownerID, limit, offset)
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

// TopSellers agrega en Go: las columnas TEXT no se suman con exactitud en SQL.
func (r *BillRepo) TopSellers(ctx context.Context, ownerID string, limit int) ([]entity.ItemSales, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT bi.item_name, bi.quantity, bi.selling_price
		FROM bill_items bi JOIN bills b ON b.id = bi.bill_id
		WHERE b.owner_id = ?`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("top sellers: %w", err)
	}
	defer rows.Close()

	byName := make(map[string]*entity.ItemSales)
	for rows.Next() {
		var name, qtyRaw, priceRaw string
		if err := rows.Scan(&name, &qtyRaw, &priceRaw); err != nil {
			return nil, fmt.Errorf("scan top seller: %w", err)
		}
		qty, err := decimal.NewFromString(qtyRaw)
		if err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(priceRaw)
		if err != nil {
			return nil, err
		}
		s, ok := byName[name]
		if !ok {
			s = &entity.ItemSales{ItemName: name, Quantity: decimal.Zero, Revenue: decimal.Zero}
			byName[name] = s
		}
		s.Quantity = s.Quantity.Add(qty)
		s.Revenue = s.Revenue.Add(qty.Mul(price))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	list := make([]entity.ItemSales, 0, len(byName))
	for _, s := range byName {
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if c := list[i].Revenue.Cmp(list[j].Revenue); c != 0 {
			return c > 0
		}
		return list[i].ItemName < list[j].ItemName
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *BillRepo) ListBetween(ctx context.Context, ownerID string, from, to time.Time) ([]*entity.Bill, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE owner_id = ? AND created_at BETWEEN ? AND ? ORDER BY bill_number`,
		ownerID, toUnix(from), toUnix(to))
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

// SalesBetween suma en Go por la misma razón que TopSellers.
func (r *BillRepo) SalesBetween(ctx context.Context, ownerID string, from, to time.Time) (entity.SalesTotals, error) {
	totals := entity.SalesTotals{Revenue: decimal.Zero, Cost: decimal.Zero}
	rows, err := r.q.QueryContext(ctx,
		`SELECT total_amount, total_cost FROM bills WHERE owner_id = ? AND created_at BETWEEN ? AND ?`,
		ownerID, toUnix(from), toUnix(to))
	if err != nil {
		return totals, fmt.Errorf("sales between: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var amountRaw, costRaw string
		if err := rows.Scan(&amountRaw, &costRaw); err != nil {
			return totals, fmt.Errorf("scan sales: %w", err)
		}
		amount, err := decimal.NewFromString(amountRaw)
		if err != nil {
			return totals, err
		}
		cost, err := decimal.NewFromString(costRaw)
		if err != nil {
			return totals, err
		}
		totals.BillCount++
		totals.Revenue = totals.Revenue.Add(amount)
		totals.Cost = totals.Cost.Add(cost)
	}
	return totals, rows.Err()
}

func scanBill(row scanner) (*entity.Bill, error) {
	var (
		b            entity.Bill
		amount, cost string
		createdAt    int64
	)
	if err := row.Scan(&b.ID, &b.OwnerID, &b.CartID, &b.BillNumber, &amount, &cost, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if b.TotalAmount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	if b.TotalCost, err = decimal.NewFromString(cost); err != nil {
		return nil, err
	}
	b.CreatedAt = fromUnix(createdAt)
	return &b, nil
}

func scanBillItem(row scanner) (*entity.BillItem, error) {
	var (
		it               entity.BillItem
		invID            sql.NullString
		qty, cost, price string
	)
	if err := row.Scan(&it.ID, &it.BillID, &invID, &it.ItemName, &qty, &it.Unit, &cost, &price); err != nil {
		return nil, err
	}
	if invID.Valid {
		id := invID.String
		it.InventoryID = &id
	}
	var err error
	if it.Quantity, err = decimal.NewFromString(qty); err != nil {
		return nil, err
	}
	if it.CostPrice, err = decimal.NewFromString(cost); err != nil {
		return nil, err
	}
	if it.SellingPrice, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	return &it, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
