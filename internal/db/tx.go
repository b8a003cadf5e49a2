package db

import (
	"context"
	"database/sql"
)

// WithTx runs fn inside a transaction, it commits if fn returns nil and
// rolls back otherwise.
func WithTx(ctx context.Context, conn *sql.DB, fn func(tx *Queries) error) error {
	sqltx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer sqltx.Rollback()

	err = fn(New(sqltx))
	if err != nil {
		return err
	}
	return sqltx.Commit()
}
