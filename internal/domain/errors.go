package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Toma de pedidos y carrito.
	ErrItemNotFound      = errors.New("el artículo no está en el inventario")
	ErrOutOfStock        = errors.New("artículo agotado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrEntryNotFound     = errors.New("línea de carrito no encontrada")
	ErrEmptyCart         = errors.New("el carrito está vacío")

	// Confirmación de la cuenta (bill commit).
	ErrCommitConflict     = errors.New("conflicto de stock al confirmar la cuenta")
	ErrTransactionFailure = errors.New("fallo de la transacción al confirmar la cuenta")
	ErrAlreadyCommitted   = errors.New("el carrito ya fue facturado")

	// Jornada de caja.
	ErrDayAlreadyStarted = errors.New("la jornada ya está abierta")
	ErrNoActiveDay       = errors.New("no hay jornada abierta")
)

// StockError detalla un rechazo por stock insuficiente (cantidad pedida vs. disponible).
type StockError struct {
	ItemName  string
	Unit      string
	Requested decimal.Decimal
	Available decimal.Decimal
}

// Shortfall cantidad que falta para cubrir lo pedido.
func (e *StockError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: pedido %s %s, disponible %s %s",
		e.ItemName, e.Requested.String(), e.Unit, e.Available.String(), e.Unit)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// CommitConflictError indica qué línea no superó el descuento condicionado de inventario.
type CommitConflictError struct {
	InventoryID string
	ItemName    string
	Quantity    decimal.Decimal
}

func (e *CommitConflictError) Error() string {
	return fmt.Sprintf("conflicto de stock en %s (%s): no alcanza para descontar %s",
		e.ItemName, e.InventoryID, e.Quantity.String())
}

func (e *CommitConflictError) Unwrap() error { return ErrCommitConflict }
