package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

var _ repository.TaskRepository = (*taskRepo)(nil)

type taskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepo{pool: pool}
}

const taskColumns = `id, user_id, milestone_id, title, priority, estimated_time, due_date, planned_date, is_daily_priority, is_completed, completed_at, created_at`

func (r *taskRepo) Save(ctx context.Context, t *model.Task) error {
	const q = `
INSERT INTO tasks (` + taskColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (id) DO UPDATE SET
  milestone_id = EXCLUDED.milestone_id,
  title = EXCLUDED.title,
  priority = EXCLUDED.priority,
  estimated_time = EXCLUDED.estimated_time,
  due_date = EXCLUDED.due_date,
  planned_date = EXCLUDED.planned_date,
  is_daily_priority = EXCLUDED.is_daily_priority,
  is_completed = EXCLUDED.is_completed,
  completed_at = EXCLUDED.completed_at;`

	_, err := r.pool.Exec(ctx, q,
		t.ID, t.UserID, t.MilestoneID, t.Title, t.Priority, t.EstimatedMinutes,
		t.DueDate, t.PlannedDate, t.IsDailyPriority, t.IsCompleted, t.CompletedAt, t.CreatedAt,
	)
	return mapError(err)
}

func (r *taskRepo) FindByID(ctx context.Context, userID, id string) (*model.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2;`
	var t model.Task
	err := r.pool.QueryRow(ctx, q, id, userID).Scan(
		&t.ID, &t.UserID, &t.MilestoneID, &t.Title, &t.Priority, &t.EstimatedMinutes,
		&t.DueDate, &t.PlannedDate, &t.IsDailyPriority, &t.IsCompleted, &t.CompletedAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *taskRepo) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]*model.Task, error) {
	const q = `
SELECT ` + taskColumns + `
  FROM tasks
 WHERE user_id = $1 AND (planned_date = $2::date OR due_date = $2::date)
 ORDER BY is_daily_priority DESC, created_at ASC;`

	rows, err := r.pool.Query(ctx, q, userID, date)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []*model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.MilestoneID, &t.Title, &t.Priority, &t.EstimatedMinutes,
			&t.DueDate, &t.PlannedDate, &t.IsDailyPriority, &t.IsCompleted, &t.CompletedAt, &t.CreatedAt,
		); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *taskRepo) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	const q = `
UPDATE tasks
   SET is_completed = $3,
       completed_at = CASE WHEN $3 THEN NOW() ELSE NULL END
 WHERE id = $1 AND user_id = $2;`

	tag, err := r.pool.Exec(ctx, q, id, userID, completed)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDailyPriority marks the task for a day. Setting also stamps
// planned_date; unsetting keeps the date (the task stays planned).
func (r *taskRepo) SetDailyPriority(ctx context.Context, userID, id string, date time.Time, isPriority bool) error {
	const q = `
UPDATE tasks
   SET is_daily_priority = $3,
       planned_date = CASE WHEN $3 THEN $4::date ELSE planned_date END
 WHERE id = $1 AND user_id = $2;`

	tag, err := r.pool.Exec(ctx, q, id, userID, isPriority, date)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, userID, id string) error {
	const q = `DELETE FROM tasks WHERE id = $1 AND user_id = $2;`
	tag, err := r.pool.Exec(ctx, q, id, userID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *taskRepo) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	const q = `
SELECT COUNT(*) FROM tasks
 WHERE user_id = $1 AND is_completed = TRUE AND completed_at >= $2;`
	var n int
	if err := r.pool.QueryRow(ctx, q, userID, since).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (r *taskRepo) CompletionByVision(ctx context.Context, userID string) (map[string][2]int, error) {
	const q = `
SELECT m.vision_id,
       COUNT(*) FILTER (WHERE t.is_completed),
       COUNT(*)
  FROM tasks t
  JOIN milestones m ON m.id = t.milestone_id
 WHERE t.user_id = $1
 GROUP BY m.vision_id;`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make(map[string][2]int)
	for rows.Next() {
		var visionID string
		var done, total int
		if err := rows.Scan(&visionID, &done, &total); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out[visionID] = [2]int{done, total}
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}
