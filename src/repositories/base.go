package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// nullableTime maps the zero time to SQL NULL so the database default
// applies.
func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// withTx runs fn inside tx when one is supplied, otherwise inside a
// repository-owned transaction that is committed on success and rolled back
// on error.
func withTx(ctx context.Context, db *pgxpool.Pool, tx pgx.Tx, fn func(pgx.Tx) error) error {
	if tx != nil {
		return fn(tx)
	}

	own, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = own.Rollback(ctx)
	}()

	if err := fn(own); err != nil {
		return err
	}
	return own.Commit(ctx)
}
