package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

var _ repository.DailyLogRepository = (*dailyLogRepo)(nil)

type dailyLogRepo struct {
	pool *pgxpool.Pool
}

func NewDailyLogRepo(pool *pgxpool.Pool) repository.DailyLogRepository {
	return &dailyLogRepo{pool: pool}
}

func (r *dailyLogRepo) Upsert(ctx context.Context, l *model.DailyLog) error {
	const q = `
INSERT INTO daily_logs (user_id, date, reflection_note)
VALUES ($1, $2::date, $3)
ON CONFLICT (user_id, date) DO UPDATE SET
  reflection_note = EXCLUDED.reflection_note;`

	_, err := r.pool.Exec(ctx, q, l.UserID, l.Date, l.ReflectionNote)
	return mapError(err)
}

func (r *dailyLogRepo) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*model.DailyLog, error) {
	const q = `
SELECT user_id, date, reflection_note
  FROM daily_logs
 WHERE user_id = $1 AND date = $2::date;`

	var l model.DailyLog
	if err := r.pool.QueryRow(ctx, q, userID, date).Scan(&l.UserID, &l.Date, &l.ReflectionNote); err != nil {
		return nil, mapError(err)
	}
	return &l, nil
}
