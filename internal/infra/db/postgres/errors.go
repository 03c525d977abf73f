package postgres

import (
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"kinetic-flow-backend/internal/domain"
)

// mapError converts driver errors into domain sentinels so upper layers never
// see pgx types.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return domain.ErrOperationFailed
		case "23503": // foreign_key_violation
			return domain.ErrInvalidArgument
		}
	}
	return domain.ErrOperationFailed
}
