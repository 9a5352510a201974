package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

var _ repository.DailySessionRepository = (*DailySessionRepo)(nil)

const dailySessionColumns = `id, owner_id, status, start_time, end_time, total_sales, total_cost, bill_count`

// DailySessionRepo jornadas de caja sobre SQLite.
type DailySessionRepo struct {
	q Querier
}

// NewDailySessionRepository construye el adaptador.
func NewDailySessionRepository(q Querier) *DailySessionRepo {
	return &DailySessionRepo{q: q}
}

func (r *DailySessionRepo) Create(ctx context.Context, s *entity.DailySession) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO daily_sessions (`+dailySessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.OwnerID, s.Status, toUnix(s.StartTime), nullUnix(s.EndTime),
		s.TotalSales.String(), s.TotalCost.String(), s.BillCount,
	)
	if err != nil {
		if isUniqueViolation(err, "daily_sessions.owner_id") {
			return domain.ErrDayAlreadyStarted
		}
		return fmt.Errorf("insert daily session: %w", err)
	}
	return nil
}

func (r *DailySessionRepo) GetActive(ctx context.Context, ownerID string) (*entity.DailySession, error) {
	s, err := scanDailySession(r.q.QueryRowContext(ctx,
		`SELECT `+dailySessionColumns+` FROM daily_sessions WHERE owner_id = ? AND status = 'active' LIMIT 1`, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active daily session: %w", err)
	}
	return s, nil
}

func (r *DailySessionRepo) Close(ctx context.Context, s *entity.DailySession) (bool, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE daily_sessions
		SET status = ?, end_time = ?, total_sales = ?, total_cost = ?, bill_count = ?
		WHERE id = ? AND owner_id = ? AND status = 'active'`,
		s.Status, nullUnix(s.EndTime), s.TotalSales.String(), s.TotalCost.String(), s.BillCount, s.ID, s.OwnerID,
	)
	if err != nil {
		return false, fmt.Errorf("close daily session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("close daily session: %w", err)
	}
	return n == 1, nil
}

func (r *DailySessionRepo) ListClosed(ctx context.Context, ownerID string, limit int) ([]*entity.DailySession, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+dailySessionColumns+` FROM daily_sessions
		WHERE owner_id = ? AND status = 'closed'
		ORDER BY end_time DESC LIMIT ?`, ownerID, limit)
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

func scanDailySession(row scanner) (*entity.DailySession, error) {
	var (
		s           entity.DailySession
		start       int64
		end         sql.NullInt64
		sales, cost string
	)
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Status, &start, &end, &sales, &cost, &s.BillCount); err != nil {
		return nil, err
	}
	var err error
	if s.TotalSales, err = decimal.NewFromString(sales); err != nil {
		return nil, err
	}
	if s.TotalCost, err = decimal.NewFromString(cost); err != nil {
		return nil, err
	}
	s.StartTime = fromUnix(start)
	if end.Valid {
		t := fromUnix(end.Int64)
		s.EndTime = &t
	}
	return &s, nil
}
