package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"go-jobboard-backend/internal/domain"
)

const uniqueViolationCode = "23505"

// mapError translates storage-level failures into domain errors so usecases
// never see driver types. Unique-index violations become
// ErrDuplicateInteraction (the index is the authoritative duplicate guard);
// deadline expiry becomes ErrTimeout so callers can surface a retryable
// fault instead of swallowing it.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return domain.ErrDuplicateInteraction
	}
	return err
}
