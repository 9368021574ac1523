// Package repository implements all database queries for the events
// backend. It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyCancelled is returned when cancelling a booking that has
// already been cancelled. The inventory is not re-credited.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

// ErrDuplicateName is returned when a unique name constraint is violated.
var ErrDuplicateName = errors.New("name already exists")

// ErrCategoryInUse is returned when deleting a category that still has
// events referencing it.
var ErrCategoryInUse = errors.New("category has existing events")

// InsufficientInventoryError is returned when an event does not have
// enough available tickets for a booking request. Available carries the
// count at the time of the (locked) check so handlers can report it.
type InsufficientInventoryError struct {
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("not enough tickets available (%d left)", e.Available)
}

// DB is the subset of pgxpool.Pool the repositories depend on. Taking an
// interface keeps the transaction logic testable without a live database.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
