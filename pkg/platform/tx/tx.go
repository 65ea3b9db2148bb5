// Package tx carries a SQL transaction through context so stores can join a
// transaction started at the service layer without widening their interfaces.
//
// The postgres store consults From on every statement, but no current
// operation spans multiple stores, so nothing calls WithTx at runtime yet.
// The seam exists so cross-store operations can be added without changing
// store signatures.
package tx

import (
	"context"
	"database/sql"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}
