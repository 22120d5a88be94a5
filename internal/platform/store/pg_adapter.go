package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQueryer is what *pgxpool.Pool and pgx.Tx have in common
type pgxQueryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgQueryer narrows pgx results to the store seams
type pgQueryer struct{ q pgxQueryer }

func (p pgQueryer) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return p.q.Exec(ctx, sql, args...)
}

func (p pgQueryer) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := p.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (p pgQueryer) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return p.q.QueryRow(ctx, sql, args...)
}

// beginner opens a transaction, *pgxpool.Pool satisfies it
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// pgStore is the TxRunner over a pool
type pgStore struct {
	pgQueryer
	db    beginner
	ping  func(context.Context) error
	close func()
}

func newPGStore(pool *pgxpool.Pool) *pgStore {
	return &pgStore{pgQueryer: pgQueryer{q: pool}, db: pool, ping: pool.Ping, close: pool.Close}
}

// Tx commits when fn returns nil and rolls back otherwise
func (s *pgStore) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return fn(pgQueryer{q: tx})
	})
}

// Ping checks out a connection and pings the server
func (s *pgStore) Ping(ctx context.Context) error { return s.ping(ctx) }

// Close waits for checked out connections, then closes the pool
func (s *pgStore) Close() error {
	s.close()
	return nil
}
