package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, owner_id, name, unit, quantity_on_hand, cost_price, selling_price, created_at, updated_at`

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de persistencia del catálogo. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste un artículo nuevo. Nombre repetido (sin mayúsculas) para el mismo dueño → ErrDuplicate.
func (r *InventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.OwnerID, item.Name, item.Unit, item.QuantityOnHand,
		item.CostPrice, item.SellingPrice, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo del dueño. (nil, nil) si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1 AND owner_id = $2`
	item, err := scanInventoryItem(r.q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE). Usar dentro de una tx.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1 AND owner_id = $2 FOR UPDATE`
	item, err := scanInventoryItem(r.q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item for update: %w", err)
	}
	return item, nil
}

// ListByOwner catálogo completo del dueño ordenado por nombre.
func (r *InventoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE owner_id = $1 ORDER BY lower(name), id`
	rows, err := r.q.Query(ctx, query, ownerID)
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

// Update actualiza nombre, unidad, stock y precios.
func (r *InventoryRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $3, unit = $4, quantity_on_hand = $5, cost_price = $6, selling_price = $7, updated_at = $8
		WHERE id = $1 AND owner_id = $2`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.OwnerID, item.Name, item.Unit, item.QuantityOnHand,
		item.CostPrice, item.SellingPrice, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un artículo del dueño.
func (r *InventoryRepo) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementGuarded descuento condicionado: la condición quantity_on_hand >= $1 se evalúa con el
// lock de fila tomado, así dos cuentas concurrentes no pueden dejar el stock negativo.
func (r *InventoryRepo) DecrementGuarded(ctx context.Context, ownerID, id string, quantity decimal.Decimal) (bool, error) {
	query := `
		UPDATE inventory_items
		SET quantity_on_hand = quantity_on_hand - $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3 AND quantity_on_hand >= $1`
	tag, err := r.q.Exec(ctx, query, quantity, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.OwnerID, &it.Name, &it.Unit, &it.QuantityOnHand,
		&it.CostPrice, &it.SellingPrice, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
