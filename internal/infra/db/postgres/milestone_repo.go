package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

var _ repository.MilestoneRepository = (*milestoneRepo)(nil)

type milestoneRepo struct {
	pool *pgxpool.Pool
}

func NewMilestoneRepo(pool *pgxpool.Pool) repository.MilestoneRepository {
	return &milestoneRepo{pool: pool}
}

func (r *milestoneRepo) Save(ctx context.Context, m *model.Milestone) error {
	const q = `
INSERT INTO milestones (id, user_id, vision_id, title, description, deadline, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  description = EXCLUDED.description,
  deadline = EXCLUDED.deadline,
  status = EXCLUDED.status;`

	_, err := r.pool.Exec(ctx, q, m.ID, m.UserID, m.VisionID, m.Title, m.Description, m.Deadline, m.Status, m.CreatedAt)
	return mapError(err)
}

func (r *milestoneRepo) ListByVision(ctx context.Context, userID, visionID string) ([]*model.Milestone, error) {
	const q = `
SELECT id, user_id, vision_id, title, description, deadline, status, created_at
  FROM milestones
 WHERE user_id = $1 AND vision_id = $2
 ORDER BY created_at ASC;`

	rows, err := r.pool.Query(ctx, q, userID, visionID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []*model.Milestone
	for rows.Next() {
		var m model.Milestone
		if err := rows.Scan(&m.ID, &m.UserID, &m.VisionID, &m.Title, &m.Description, &m.Deadline, &m.Status, &m.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *milestoneRepo) Delete(ctx context.Context, userID, id string) error {
	const q = `DELETE FROM milestones WHERE id = $1 AND user_id = $2;`
	tag, err := r.pool.Exec(ctx, q, id, userID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
