package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by writes that matched no row.
	ErrNotFound = errors.New("repository: record not found")

	// ErrDuplicate is returned on unique violations.
	ErrDuplicate = errors.New("repository: duplicate record")

	// ErrForeignKey is returned when a referenced row does not exist.
	ErrForeignKey = errors.New("repository: referenced record does not exist")

	// ErrConstraint is returned on check constraint violations.
	ErrConstraint = errors.New("repository: constraint violated")

	// ErrBuildQuery is returned when squirrel fails to render SQL.
	ErrBuildQuery = errors.New("repository: failed to build query")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// translate maps PostgreSQL integrity errors to the package sentinels and
// leaves everything else untouched.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w (%s): %v", ErrDuplicate, pgErr.ConstraintName, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w (%s): %v", ErrForeignKey, pgErr.ConstraintName, err)
	case pgCheckViolation, pgNotNullViolation:
		return fmt.Errorf("%w (%s): %v", ErrConstraint, pgErr.ConstraintName, err)
	default:
		return err
	}
}
