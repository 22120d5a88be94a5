package repokit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewsense/internal/platform/store"
)

// recQ records every statement it is handed
type recQ struct {
	stmts    []string
	lastSQL  string
	lastArgs []any
	execErr  error
}

func (q *recQ) record(sql string, args []any) {
	q.stmts = append(q.stmts, sql)
	q.lastSQL, q.lastArgs = sql, append([]any(nil), args...)
}

func (q *recQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	q.record(sql, args)
	return nil, q.execErr
}

func (q *recQ) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	q.record(sql, args)
	return nil, nil
}

func (q *recQ) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	q.record(sql, args)
	return nil
}

// recTx runs fn on its tx Queryer and keeps pool statements apart
type recTx struct {
	recQ
	tx    recQ
	calls int
}

func (r *recTx) Tx(_ context.Context, fn func(Queryer) error) error {
	r.calls++
	return fn(&r.tx)
}

func TestWithBeginHooks_OrderThenFn(t *testing.T) {
	inner := &recTx{}
	var order []string
	hook := func(name string) BeginHook {
		return func(ctx context.Context, q Queryer) error {
			order = append(order, name)
			_, err := q.Exec(ctx, "-- "+name)
			return err
		}
	}

	tx := WithBeginHooks(inner, hook("a"), hook("b"))
	err := tx.Tx(context.Background(), func(q Queryer) error {
		order = append(order, "fn")
		_, err := q.Exec(context.Background(), "insert into reviews default values")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "fn"}, order)
	assert.Equal(t, []string{"-- a", "-- b", "insert into reviews default values"}, inner.tx.stmts)
	assert.Empty(t, inner.stmts, "nothing ran outside the tx")
}

func TestWithBeginHooks_HookErrorSkipsFn(t *testing.T) {
	boom := errors.New("boom")
	called := false
	tx := WithBeginHooks(&recTx{}, func(context.Context, Queryer) error { return boom })

	err := tx.Tx(context.Background(), func(Queryer) error { called = true; return nil })
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestWithBeginHooks_PassThrough(t *testing.T) {
	inner := &recTx{}
	assert.Same(t, inner, WithBeginHooks(inner), "no hooks returns inner")

	tx := WithBeginHooks(inner, StatementTimeout(time.Second))
	_, _ = tx.Exec(context.Background(), "delete from reviews where id = $1", "r1")
	_, _ = tx.Query(context.Background(), "select 1")
	_ = tx.QueryRow(context.Background(), "select 2")
	assert.Equal(t, []string{"delete from reviews where id = $1", "select 1", "select 2"}, inner.stmts)
	assert.Equal(t, 0, inner.calls)
}

func TestStatementTimeout(t *testing.T) {
	q := &recQ{}
	require.NoError(t, StatementTimeout(1500*time.Millisecond)(context.Background(), q))
	assert.Equal(t, "select set_config($1, $2, true)", q.lastSQL)
	assert.Equal(t, []any{"statement_timeout", "1500"}, q.lastArgs)

	q = &recQ{}
	require.NoError(t, StatementTimeout(0)(context.Background(), q))
	assert.Empty(t, q.stmts)

	q = &recQ{execErr: errors.New("permission denied")}
	assert.EqualError(t, StatementTimeout(time.Second)(context.Background(), q), "permission denied")
}
