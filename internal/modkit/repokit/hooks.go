package repokit

import (
	"context"
	"strconv"
	"time"
)

// BeginHook runs first inside every transaction, on the tx Queryer
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns a TxRunner whose transactions run hooks in order before fn
// Statements outside a transaction go straight to inner
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	if len(hooks) == 0 {
		return inner
	}
	return hookedTx{TxRunner: inner, hooks: hooks}
}

type hookedTx struct {
	TxRunner
	hooks []BeginHook
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

// SetLocal sets a postgres setting for the rest of the transaction
func SetLocal(name, value string) BeginHook {
	return func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, "select set_config($1, $2, true)", name, value)
		return err
	}
}

// StatementTimeout cancels any statement in the transaction running longer than d
// Non positive d keeps the server default
func StatementTimeout(d time.Duration) BeginHook {
	ms := d.Milliseconds()
	if ms <= 0 {
		return func(context.Context, Queryer) error { return nil }
	}
	return SetLocal("statement_timeout", strconv.FormatInt(ms, 10))
}
