package inventory

import (
	"context"

	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

// CatalogTxRunner ejecuta lecturas-escrituras del catálogo en una transacción, para que una
// edición no pise el descuento de stock de una cuenta confirmada en paralelo.
type CatalogTxRunner interface {
	RunInventory(ctx context.Context, fn func(inventoryRepo repository.InventoryRepository) error) error
}
