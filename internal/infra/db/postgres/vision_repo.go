package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

var _ repository.VisionRepository = (*visionRepo)(nil)

type visionRepo struct {
	pool *pgxpool.Pool
}

func NewVisionRepo(pool *pgxpool.Pool) repository.VisionRepository {
	return &visionRepo{pool: pool}
}

const visionColumns = `id, user_id, title, category, time_horizon, description, image_url, status, created_at`

func (r *visionRepo) Save(ctx context.Context, v *model.Vision) error {
	const q = `
INSERT INTO visions (` + visionColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  category = EXCLUDED.category,
  time_horizon = EXCLUDED.time_horizon,
  description = EXCLUDED.description,
  image_url = EXCLUDED.image_url,
  status = EXCLUDED.status;`

	_, err := r.pool.Exec(ctx, q,
		v.ID, v.UserID, v.Title, v.Category, v.TimeHorizon, v.Description, v.ImageURL, v.Status, v.CreatedAt,
	)
	return mapError(err)
}

func (r *visionRepo) FindByID(ctx context.Context, id string) (*model.Vision, error) {
	const q = `SELECT ` + visionColumns + ` FROM visions WHERE id = $1;`
	return r.scanOne(r.pool.QueryRow(ctx, q, id))
}

func (r *visionRepo) ListByUser(ctx context.Context, userID string) ([]*model.Vision, error) {
	const q = `SELECT ` + visionColumns + ` FROM visions WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []*model.Vision
	for rows.Next() {
		var v model.Vision
		if err := rows.Scan(&v.ID, &v.UserID, &v.Title, &v.Category, &v.TimeHorizon, &v.Description, &v.ImageURL, &v.Status, &v.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *visionRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	const q = `SELECT COUNT(*) FROM visions WHERE user_id = $1;`
	var n int
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (r *visionRepo) Delete(ctx context.Context, userID, id string) error {
	const q = `DELETE FROM visions WHERE id = $1 AND user_id = $2;`
	tag, err := r.pool.Exec(ctx, q, id, userID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *visionRepo) scanOne(row interface{ Scan(dest ...interface{}) error }) (*model.Vision, error) {
	var v model.Vision
	err := row.Scan(&v.ID, &v.UserID, &v.Title, &v.Category, &v.TimeHorizon, &v.Description, &v.ImageURL, &v.Status, &v.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &v, nil
}
