package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia del catálogo de la tienda (DIP).
// GetByID devuelve (nil, nil) si el artículo no existe o es de otro dueño.
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.InventoryItem, error)
	// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, ownerID, id string) (*entity.InventoryItem, error)
	// ListByOwner devuelve el catálogo completo del dueño ordenado por nombre.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, ownerID, id string) error
	// DecrementGuarded descuenta quantity solo si el stock resultante queda >= 0.
	// Devuelve false (sin error) cuando la condición no se cumple y ninguna fila cambió.
	DecrementGuarded(ctx context.Context, ownerID, id string, quantity decimal.Decimal) (bool, error)
}
