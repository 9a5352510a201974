package ordering

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/cart"
)

// session carrito de trabajo de una caja. mu serializa todas las operaciones sobre el carrito;
// closed se marca al confirmar la cuenta para que las peticiones en espera no lo reutilicen.
type session struct {
	mu       sync.Mutex
	ownerID  string
	cart     cart.Cart
	closed   bool
	lastUsed atomic.Int64 // unix nanos
}

func (s *session) touch(now time.Time) { s.lastUsed.Store(now.UnixNano()) }

// registry sesiones abiertas indexadas por ID de carrito.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*session)}
}

func (r *registry) open(ownerID string, now time.Time) *session {
	s := &session{ownerID: ownerID, cart: cart.New()}
	s.touch(now)
	r.mu.Lock()
	r.sessions[s.cart.ID] = s
	r.mu.Unlock()
	return s
}

// get devuelve la sesión del dueño. Carritos de otro dueño se reportan como inexistentes.
func (r *registry) get(ownerID, cartID string) (*session, error) {
	r.mu.Lock()
	s, ok := r.sessions[cartID]
	r.mu.Unlock()
	if !ok || s.ownerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *registry) remove(cartID string) {
	r.mu.Lock()
	delete(r.sessions, cartID)
	r.mu.Unlock()
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// pruneIdle elimina sesiones sin uso desde antes de cutoff y devuelve cuántas quitó.
func (r *registry) pruneIdle(cutoff time.Time) int {
	limit := cutoff.UnixNano()
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.lastUsed.Load() < limit {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}
