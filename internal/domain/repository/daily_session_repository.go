package repository

import (
	"context"

	"github.com/jhoicas/kirana-pos/internal/domain/entity"
)

// DailySessionRepository define el puerto de persistencia de las jornadas de caja.
type DailySessionRepository interface {
	// Create abre una jornada. Si el dueño ya tiene una activa → domain.ErrDayAlreadyStarted.
	Create(ctx context.Context, session *entity.DailySession) error
	// GetActive devuelve la jornada activa del dueño o (nil, nil).
	GetActive(ctx context.Context, ownerID string) (*entity.DailySession, error)
	// Close guarda estado, fin y totales solo si la jornada sigue activa.
	// Devuelve false (sin error) cuando ninguna fila cambió.
	Close(ctx context.Context, session *entity.DailySession) (bool, error)
	// ListClosed jornadas cerradas, las más recientes primero.
	ListClosed(ctx context.Context, ownerID string, limit int) ([]*entity.DailySession, error)
}
