package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

var _ repository.DailySessionRepository = (*DailySessionRepo)(nil)

const dailySessionColumns = `id, owner_id, status, start_time, end_time, total_sales, total_cost, bill_count`

// DailySessionRepo jornadas de caja sobre PostgreSQL.
type DailySessionRepo struct {
	q Querier
}

// NewDailySessionRepository construye el adaptador.
func NewDailySessionRepository(q Querier) *DailySessionRepo {
	return &DailySessionRepo{q: q}
}

// Create inserta la jornada. El índice parcial daily_sessions_one_active_key impide dos activas.
func (r *DailySessionRepo) Create(ctx context.Context, s *entity.DailySession) error {
	query := `INSERT INTO daily_sessions (` + dailySessionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.OwnerID, s.Status, s.StartTime, s.EndTime, s.TotalSales, s.TotalCost, s.BillCount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDayAlreadyStarted
		}
		return fmt.Errorf("insert daily session: %w", err)
	}
	return nil
}

// GetActive jornada activa del dueño. (nil, nil) si no hay.
func (r *DailySessionRepo) GetActive(ctx context.Context, ownerID string) (*entity.DailySession, error) {
	query := `SELECT ` + dailySessionColumns + ` FROM daily_sessions WHERE owner_id = $1 AND status = 'active' LIMIT 1`
	s, err := scanDailySession(r.q.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active daily session: %w", err)
	}
	return s, nil
}

// Close cierra la jornada solo si sigue activa.
func (r *DailySessionRepo) Close(ctx context.Context, s *entity.DailySession) (bool, error) {
	query := `
		UPDATE daily_sessions
		SET status = $1, end_time = $2, total_sales = $3, total_cost = $4, bill_count = $5
		WHERE id = $6 AND owner_id = $7 AND status = 'active'`
	tag, err := r.q.Exec(ctx, query, s.Status, s.EndTime, s.TotalSales, s.TotalCost, s.BillCount, s.ID, s.OwnerID)
	if err != nil {
		return false, fmt.Errorf("close daily session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListClosed jornadas cerradas, más recientes primero.
func (r *DailySessionRepo) ListClosed(ctx context.Context, ownerID string, limit int) ([]*entity.DailySession, error) {
	query := `
		SELECT ` + dailySessionColumns + ` FROM daily_sessions
		WHERE owner_id = $1 AND status = 'closed'
		ORDER BY end_time DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list closed daily sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.DailySession
	for rows.Next() {
		s, err := scanDailySession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanDailySession(row pgx.Row) (*entity.DailySession, error) {
	var s entity.DailySession
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Status, &s.StartTime, &s.EndTime, &s.TotalSales, &s.TotalCost, &s.BillCount); err != nil {
		return nil, err
	}
	return &s, nil
}
