// Package inventory administra el catálogo de la tienda (alta, edición, baja y listado).
// El stock solo baja por la confirmación de cuentas; aquí se fija por reposición o conteo.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	domaininventory "github.com/jhoicas/kirana-pos/internal/domain/inventory"
	"github.com/jhoicas/kirana-pos/internal/domain/orderparse"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

// CatalogUseCase casos de uso del catálogo.
type CatalogUseCase struct {
	repo     repository.InventoryRepository
	txRunner CatalogTxRunner
	now      func() time.Time
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.InventoryRepository, txRunner CatalogTxRunner) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, txRunner: txRunner, now: func() time.Time { return time.Now().UTC() }}
}

// List catálogo del dueño ordenado por nombre.
func (uc *CatalogUseCase) List(ctx context.Context, ownerID string) ([]dto.InventoryItemResponse, error) {
	items, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToInventoryItemResponse(it))
	}
	return out, nil
}

// Get artículo por ID; ErrNotFound si no existe o es de otro dueño.
func (uc *CatalogUseCase) Get(ctx context.Context, ownerID, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToInventoryItemResponse(item)
	return &resp, nil
}

// Create valida y persiste un artículo. Nombre repetido para el dueño → ErrDuplicate.
func (uc *CatalogUseCase) Create(ctx context.Context, ownerID string, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	now := uc.now()
	item := &entity.InventoryItem{
		ID:             uuid.New().String(),
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(in.Name),
		Unit:           orderparse.CanonicalUnit(in.Unit),
		QuantityOnHand: in.QuantityOnHand,
		CostPrice:      in.CostPrice,
		SellingPrice:   in.SellingPrice,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	resp := ToInventoryItemResponse(item)
	return &resp, nil
}

// Update aplica los campos presentes en in. La fila se lee bloqueada para no pisar un
// descuento de stock concurrente.
func (uc *CatalogUseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	return uc.modify(ctx, ownerID, id, func(item *entity.InventoryItem) {
		if in.Name != nil {
			item.Name = strings.TrimSpace(*in.Name)
		}
		if in.Unit != nil {
			item.Unit = orderparse.CanonicalUnit(*in.Unit)
		}
		if in.QuantityOnHand != nil {
			item.QuantityOnHand = *in.QuantityOnHand
		}
		if in.CostPrice != nil {
			item.CostPrice = *in.CostPrice
		}
		if in.SellingPrice != nil {
			item.SellingPrice = *in.SellingPrice
		}
	})
}

// Restock registra mercadería recibida: suma al stock y, si viene costo unitario, recalcula el
// costo por promedio ponderado.
func (uc *CatalogUseCase) Restock(ctx context.Context, ownerID, id string, in dto.RestockRequest) (*dto.InventoryItemResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: la cantidad recibida debe ser mayor a cero", domain.ErrInvalidInput)
	}
	return uc.modify(ctx, ownerID, id, func(item *entity.InventoryItem) {
		if in.UnitCost != nil {
			item.CostPrice = domaininventory.WeightedAverageCost(item.QuantityOnHand, item.CostPrice, in.Quantity, *in.UnitCost)
		}
		item.QuantityOnHand = item.QuantityOnHand.Add(in.Quantity)
	})
}

func (uc *CatalogUseCase) modify(ctx context.Context, ownerID, id string, apply func(*entity.InventoryItem)) (*dto.InventoryItemResponse, error) {
	var out dto.InventoryItemResponse
	err := uc.txRunner.RunInventory(ctx, func(repo repository.InventoryRepository) error {
		item, err := repo.GetForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		apply(item)
		item.UpdatedAt = uc.now()
		if err := validateItem(item); err != nil {
			return err
		}
		if err := repo.Update(ctx, item); err != nil {
			return err
		}
		out = ToInventoryItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina el artículo. Las líneas de cuentas ya emitidas conservan su snapshot.
func (uc *CatalogUseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.repo.Delete(ctx, ownerID, id)
}

func validateItem(it *entity.InventoryItem) error {
	switch {
	case it.Name == "":
		return fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	case it.Unit == "":
		return fmt.Errorf("%w: unidad requerida", domain.ErrInvalidInput)
	case it.QuantityOnHand.LessThan(decimal.Zero):
		return fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	case it.CostPrice.LessThan(decimal.Zero), it.SellingPrice.LessThan(decimal.Zero):
		return fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

// ToInventoryItemResponse convierte la entidad al DTO de salida.
func ToInventoryItemResponse(it *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:             it.ID,
		Name:           it.Name,
		Unit:           it.Unit,
		QuantityOnHand: it.QuantityOnHand,
		CostPrice:      it.CostPrice,
		SellingPrice:   it.SellingPrice,
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
}
