// Package repokit is the seam between repositories and the platform store
package repokit

import (
	"context"

	"reviewsense/internal/platform/store"
)

type (
	// Queryer runs statements, either on the pool or inside a transaction
	Queryer = store.Queryer
	// TxRunner is a Queryer that can also open a transaction
	TxRunner = store.TxRunner
	// Rows is a query result set
	Rows = store.Rows
	// Row is a single row result
	Row = store.Row
	// CommandTag reports what an Exec changed
	CommandTag = store.CommandTag
)

// Binder builds a repository on top of a Queryer, so the same repo code runs
// on the pool and inside a transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// WithTx runs fn in one transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
