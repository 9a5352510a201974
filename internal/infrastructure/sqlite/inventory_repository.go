package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, owner_id, name, unit, quantity_on_hand, cost_price, selling_price, created_at, updated_at`

// InventoryRepo catálogo sobre SQLite (usable con *sql.DB o *sql.Tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func (r *InventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO inventory_items (`+inventoryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.OwnerID, item.Name, item.Unit, item.QuantityOnHand.String(),
		item.CostPrice.String(), item.SellingPrice.String(), toUnix(item.CreatedAt), toUnix(item.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.InventoryItem, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE id = ? AND owner_id = ?`, id, ownerID)
	item, err := scanInventoryItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// GetForUpdate en SQLite la tx ya es exclusiva (una sola conexión); es una lectura normal.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, ownerID, id)
}

func (r *InventoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.InventoryItem, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE owner_id = ? ORDER BY name COLLATE NOCASE, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func (r *InventoryRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE inventory_items
		SET name = ?, unit = ?, quantity_on_hand = ?, cost_price = ?, selling_price = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		item.Name, item.Unit, item.QuantityOnHand.String(), item.CostPrice.String(), item.SellingPrice.String(),
		toUnix(item.UpdatedAt), item.ID, item.OwnerID,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	return expectOneRow(res, domain.ErrNotFound)
}

func (r *InventoryRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return expectOneRow(res, domain.ErrNotFound)
}

// DecrementGuarded lee el stock, compara con decimal exacto y escribe con compare-and-set sobre el
// valor leído: si otra escritura se coló entre medio, ninguna fila cambia y se informa false.
func (r *InventoryRepo) DecrementGuarded(ctx context.Context, ownerID, id string, quantity decimal.Decimal) (bool, error) {
	var raw string
	err := r.q.QueryRowContext(ctx,
		`SELECT quantity_on_hand FROM inventory_items WHERE id = ? AND owner_id = ?`, id, ownerID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("read stock: %w", err)
	}
	onHand, err := decimal.NewFromString(raw)
	if err != nil {
		return false, fmt.Errorf("stock corrupto en %s: %w", id, err)
	}
	if onHand.LessThan(quantity) {
		return false, nil
	}
	res, err := r.q.ExecContext(ctx, `
		UPDATE inventory_items SET quantity_on_hand = ?, updated_at = ?
		WHERE id = ? AND owner_id = ? AND quantity_on_hand = ?`,
		onHand.Sub(quantity).String(), toUnix(time.Now()), id, ownerID, raw,
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return n == 1, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInventoryItem(row scanner) (*entity.InventoryItem, error) {
	var (
		it                   entity.InventoryItem
		qty, cost, price     string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Unit, &qty, &cost, &price, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if it.QuantityOnHand, err = decimal.NewFromString(qty); err != nil {
		return nil, err
	}
	if it.CostPrice, err = decimal.NewFromString(cost); err != nil {
		return nil, err
	}
	if it.SellingPrice, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	it.CreatedAt = fromUnix(createdAt)
	it.UpdatedAt = fromUnix(updatedAt)
	return &it, nil
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
