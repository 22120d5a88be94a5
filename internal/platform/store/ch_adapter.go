package store

import (
	"context"
	"fmt"

	"reviewsense/internal/platform/store/ch"
)

// chClient is the part of *ch.CH the store uses
type chClient interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Ping(ctx context.Context) error
	Close() error
}

// chStore exposes a clickhouse client as the Clickhouse seam
type chStore struct{ c chClient }

var _ Clickhouse = chStore{}

// Insert accepts rows as [][]any in table column order
func (s chStore) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return fmt.Errorf("store: clickhouse insert into %s wants [][]any, got %T", table, data)
	}
	return s.c.Insert(ctx, table, rows)
}

func (s chStore) Exec(ctx context.Context, sql string, args ...any) error {
	return s.c.Exec(ctx, sql, args...)
}

func (s chStore) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := s.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

func (s chStore) Ping(ctx context.Context) error { return s.c.Ping(ctx) }

func (s chStore) Close() error { return s.c.Close() }

// chRows drops the error from Close, the driver reports it again from Err
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
