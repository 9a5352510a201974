// Package ordering orquesta la toma de pedidos: sesiones de carrito por caja, parseo de texto
// libre contra el catálogo vivo y confirmación de la cuenta.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/application/ports"
	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/cart"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/orderparse"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
	"github.com/jhoicas/kirana-pos/pkg/logger"
)

// assistTimeout tope para la consulta al LLM.
const assistTimeout = 10 * time.Second

// Resultados del parseo (etiqueta de métricas).
const (
	ParseMatched   = "matched"
	ParseUnmatched = "unmatched"
	ParseAssisted  = "assisted"
)

// Config parámetros del caso de uso.
type Config struct {
	IdleTimeout time.Duration // sesiones sin uso se descartan después de este tiempo
}

// OrderEntryUseCase caso de uso de la caja: un carrito por sesión, operaciones serializadas por sesión.
type OrderEntryUseCase struct {
	inventoryRepo repository.InventoryRepository
	parser        *orderparse.Parser
	committer     BillCommitter
	llm           ports.LLMService // opcional
	metrics       Metrics
	log           *logger.Logger
	sessions      *registry
	cfg           Config
	now           func() time.Time
}

// NewOrderEntryUseCase construye el caso de uso. llm, metrics y log pueden ser nil.
func NewOrderEntryUseCase(
	inventoryRepo repository.InventoryRepository,
	parser *orderparse.Parser,
	committer BillCommitter,
	llm ports.LLMService,
	metrics Metrics,
	log *logger.Logger,
	cfg Config,
) *OrderEntryUseCase {
	if parser == nil {
		parser = orderparse.NewParser(nil)
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 4 * time.Hour
	}
	return &OrderEntryUseCase{
		inventoryRepo: inventoryRepo,
		parser:        parser,
		committer:     committer,
		llm:           llm,
		metrics:       metrics,
		log:           log.Component("ordering"),
		sessions:      newRegistry(),
		cfg:           cfg,
		now:           time.Now,
	}
}

// OpenCart abre una sesión con un carrito vacío.
func (uc *OrderEntryUseCase) OpenCart(ctx context.Context, ownerID string) (*dto.CartResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	s := uc.sessions.open(ownerID, uc.now())
	uc.metrics.SetActiveCarts(uc.sessions.len())
	resp := toCartResponse(s.cart)
	return &resp, nil
}

// GetCart estado actual del carrito.
func (uc *OrderEntryUseCase) GetCart(ctx context.Context, ownerID, cartID string) (*dto.CartResponse, error) {
	var out dto.CartResponse
	err := uc.withSession(ownerID, cartID, func(s *session) error {
		out = toCartResponse(s.cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Parse vista previa: interpreta el texto contra el catálogo sin tocar ningún carrito.
func (uc *OrderEntryUseCase) Parse(ctx context.Context, ownerID, text string) (*dto.ParseOrderResponse, error) {
	result, assisted, err := uc.resolve(ctx, ownerID, text)
	if err != nil {
		return nil, err
	}
	return toParseResponse(result, assisted), nil
}

// AddItem parsea el texto y agrega la línea al carrito con validación de stock.
// Rechazos (sin artículo, agotado, stock insuficiente) dejan el carrito sin cambios.
func (uc *OrderEntryUseCase) AddItem(ctx context.Context, ownerID, cartID, text string) (*dto.CartResponse, error) {
	return uc.mutate("add", ownerID, cartID, func(c cart.Cart) (cart.Cart, error) {
		result, _, err := uc.resolve(ctx, ownerID, text)
		if err != nil {
			return c, err
		}
		return cart.AddItem(c, result)
	})
}

// AddCustomLine agrega una línea libre (sin artículo de inventario).
func (uc *OrderEntryUseCase) AddCustomLine(ctx context.Context, ownerID, cartID string, in dto.CustomLineRequest) (*dto.CartResponse, error) {
	return uc.mutate("custom_line", ownerID, cartID, func(c cart.Cart) (cart.Cart, error) {
		return cart.AddCustomLine(c, in.Name, in.Quantity, in.Unit, in.Price)
	})
}

// UpdateQuantity fija la cantidad de una línea; <= 0 la elimina.
func (uc *OrderEntryUseCase) UpdateQuantity(ctx context.Context, ownerID, cartID, entryID string, qty decimal.Decimal) (*dto.CartResponse, error) {
	return uc.mutate("update", ownerID, cartID, func(c cart.Cart) (cart.Cart, error) {
		return cart.UpdateQuantity(c, entryID, qty)
	})
}

// RemoveItem quita una línea; ID desconocido no es error.
func (uc *OrderEntryUseCase) RemoveItem(ctx context.Context, ownerID, cartID, entryID string) (*dto.CartResponse, error) {
	return uc.mutate("remove", ownerID, cartID, func(c cart.Cart) (cart.Cart, error) {
		return cart.RemoveItem(c, entryID), nil
	})
}

// Checkout confirma el carrito. Solo si la cuenta se confirmó, la sesión se cierra y se abre
// otra con carrito nuevo (ID nuevo); ante cualquier error el carrito queda intacto para reintentar
// o corregir.
func (uc *OrderEntryUseCase) Checkout(ctx context.Context, ownerID, cartID string) (*dto.CheckoutResponse, error) {
	var out *dto.CheckoutResponse
	err := uc.withSession(ownerID, cartID, func(s *session) error {
		receipt, err := uc.committer.Commit(ctx, ownerID, s.cart)
		if err != nil {
			return err
		}
		s.closed = true
		uc.sessions.remove(cartID)
		next := uc.sessions.open(ownerID, uc.now())
		out = &dto.CheckoutResponse{Bill: *receipt, NextCart: toCartResponse(next.cart)}
		return nil
	})
	uc.metrics.ObserveCartOp("checkout", outcome(err))
	if err != nil {
		return nil, err
	}
	uc.metrics.SetActiveCarts(uc.sessions.len())
	return out, nil
}

// PruneIdle descarta sesiones inactivas por más de IdleTimeout.
func (uc *OrderEntryUseCase) PruneIdle() int {
	n := uc.sessions.pruneIdle(uc.now().Add(-uc.cfg.IdleTimeout))
	uc.metrics.SetActiveCarts(uc.sessions.len())
	if n > 0 {
		uc.log.Info().Int("pruned", n).Msg("sesiones de carrito inactivas descartadas")
	}
	return n
}

// RunJanitor ejecuta PruneIdle cada interval hasta que ctx se cancele.
func (uc *OrderEntryUseCase) RunJanitor(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			uc.PruneIdle()
		}
	}
}

func (uc *OrderEntryUseCase) withSession(ownerID, cartID string, fn func(*session) error) error {
	s, err := uc.sessions.get(ownerID, cartID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrNotFound
	}
	s.touch(uc.now())
	return fn(s)
}

func (uc *OrderEntryUseCase) mutate(op, ownerID, cartID string, fn func(cart.Cart) (cart.Cart, error)) (*dto.CartResponse, error) {
	var out dto.CartResponse
	err := uc.withSession(ownerID, cartID, func(s *session) error {
		next, err := fn(s.cart)
		if err != nil {
			return err
		}
		s.cart = next
		out = toCartResponse(next)
		return nil
	})
	uc.metrics.ObserveCartOp(op, outcome(err))
	if err != nil {
		uc.log.Debug().Err(err).Str("owner_id", ownerID).Str("cart_id", cartID).Str("op", op).Msg("operación de carrito rechazada")
		return nil, err
	}
	return &out, nil
}

// resolve lee el catálogo vivo del dueño y corre el pipeline; si no hay artículo y hay LLM
// configurado, intenta el parseo asistido.
func (uc *OrderEntryUseCase) resolve(ctx context.Context, ownerID, text string) (orderparse.Result, bool, error) {
	if strings.TrimSpace(text) == "" {
		return nil, false, fmt.Errorf("%w: texto vacío", domain.ErrInvalidInput)
	}
	catalog, err := uc.inventoryRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, false, fmt.Errorf("leer catálogo: %w", err)
	}
	result := uc.parser.Parse(text, catalog)
	unmatched, ok := result.(orderparse.Unmatched)
	if !ok {
		uc.metrics.ObserveParse(ParseMatched)
		return result, false, nil
	}
	if uc.llm != nil && len(catalog) > 0 {
		if assisted, ok := uc.assist(ctx, text, unmatched, catalog); ok {
			uc.metrics.ObserveParse(ParseAssisted)
			return assisted, true, nil
		}
	}
	uc.metrics.ObserveParse(ParseUnmatched)
	return unmatched, false, nil
}

// assist consulta al LLM. La respuesta solo se acepta si nombra exactamente un artículo del
// catálogo; cualquier error deja el resultado determinista.
func (uc *OrderEntryUseCase) assist(ctx context.Context, text string, fallback orderparse.Unmatched, catalog []*entity.InventoryItem) (orderparse.Result, bool) {
	ctx, cancel := context.WithTimeout(ctx, assistTimeout)
	defer cancel()

	line, err := uc.llm.ParseOrderLine(ctx, text, catalog)
	if err != nil {
		uc.log.Warn().Err(err).Str("text", text).Msg("parseo asistido falló")
		return nil, false
	}
	if line == nil || !line.Found {
		return nil, false
	}
	key := orderparse.NameKey(line.ItemName)
	for _, it := range catalog {
		if it == nil || orderparse.NameKey(it.Name) != key {
			continue
		}
		qty := line.Quantity
		if !qty.GreaterThan(decimal.Zero) {
			qty = decimal.NewFromInt(1)
		}
		unit := line.Unit
		if unit == "" {
			unit = it.Unit
		}
		return orderparse.Matched{Item: *it, Text: fallback.Text, Quantity: qty, Unit: unit}, true
	}
	uc.log.Debug().Str("text", text).Str("suggested", line.ItemName).Msg("sugerencia del LLM fuera del catálogo")
	return nil, false
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "rejected"
	}
}

func toCartResponse(c cart.Cart) dto.CartResponse {
	totals := c.Totals()
	out := dto.CartResponse{
		ID:          c.ID,
		Entries:     make([]dto.CartEntryResponse, 0, len(c.Entries)),
		TotalAmount: totals.Amount,
		TotalCost:   totals.Cost,
	}
	for _, e := range c.Entries {
		out.Entries = append(out.Entries, dto.CartEntryResponse{
			ID:             e.ID,
			InventoryID:    e.InventoryID,
			ItemName:       e.ItemName,
			Quantity:       e.Quantity,
			Unit:           e.Unit,
			SellingPrice:   e.SellingPrice,
			CostPrice:      e.CostPrice,
			AvailableStock: e.AvailableStock,
			Amount:         e.Amount(),
		})
	}
	return out
}

func toParseResponse(r orderparse.Result, assisted bool) *dto.ParseOrderResponse {
	switch v := r.(type) {
	case orderparse.Matched:
		return &dto.ParseOrderResponse{
			Matched:     true,
			Exact:       v.Exact,
			Assisted:    assisted,
			Phrase:      v.Text,
			Quantity:    v.Quantity,
			Unit:        v.Unit,
			InventoryID: v.InventoryID(),
			ItemName:    v.Item.Name,
		}
	case orderparse.Unmatched:
		return &dto.ParseOrderResponse{Phrase: v.Text, Quantity: v.Quantity, Unit: v.Unit}
	default:
		return &dto.ParseOrderResponse{}
	}
}
