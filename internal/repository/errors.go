package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAutoNotFound    = errors.New("auto not found")
	ErrVentaNotFound   = errors.New("venta not found")
	ErrPersonaNotFound = errors.New("persona not found")
	ErrPaisNotFound    = errors.New("pais not found")

	// ErrChasisTaken signals a unique-constraint violation on numero_chasis.
	// The service retries chassis generation when it sees this.
	ErrChasisTaken = errors.New("chassis number already exists")

	ErrPaisAlreadyExists = errors.New("pais with this name already exists")
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation on the given constraint name.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == constraint
	}
	return false
}
