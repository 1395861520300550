// Package postgres implements the storage contract on PostgreSQL via pgx.
// Tags live in a text[] column so overlap filtering is a native && query.
package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promptboard/promptboard/internal/storage"
)

const fkViolation = "23503"

// Storage is the PostgreSQL-backed implementation of storage.Storage.
type Storage struct {
	pool *pgxpool.Pool
}

// New wraps an established pgx pool.
func New(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// Close releases the underlying pool.
func (s *Storage) Close() {
	s.pool.Close()
}

// mapErr converts driver-level errors into contract sentinels: no rows and
// a broken comments->prompts foreign key both mean the referenced record is
// gone.
func mapErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
		return storage.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
