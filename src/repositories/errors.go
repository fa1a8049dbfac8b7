package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound indicates the referenced row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a uniqueness violation on a natural key.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidInput indicates degenerate input rejected before any write,
	// such as a zero target price on an alert subscription.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientBalance is returned under the reject overdraft policy
	// when a delta would drive a holding negative.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// IsTransient reports whether err is a storage failure worth retrying as a
// whole unit: connection-class errors, serialization failures, deadlocks.
func IsTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08": // connection exception
			return true
		case pgErr.Code == "40001": // serialization_failure
			return true
		case pgErr.Code == "40P01": // deadlock_detected
			return true
		}
	}
	return false
}

// IsUniqueViolation maps the postgres unique-violation code.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
