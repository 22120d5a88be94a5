// Package ch provides a clickhouse client over clickhouse-go v2
package ch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse client
type Config struct {
	URL       string
	AppName   string // reported as the app product
	ClientTag string
}

// Rows is the driver result set
type Rows = driver.Rows

// batch is the slice of driver.Batch the client needs
type batch interface {
	Append(v ...any) error
	Send() error
	Abort() error
}

// conn is the slice of driver.Conn the client needs
type conn interface {
	Ping(ctx context.Context) error
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
	Exec(ctx context.Context, query string, args ...any) error
	prepare(ctx context.Context, query string) (batch, error)
	Close() error
}

type driverConn struct{ driver.Conn }

func (d driverConn) prepare(ctx context.Context, query string) (batch, error) {
	return d.Conn.PrepareBatch(ctx, query)
}

// CH is a clickhouse client
type CH struct {
	c conn
}

// seams for tests
var (
	parseDSN = clickhouse.ParseDSN
	dial     = func(o *clickhouse.Options) (conn, error) {
		c, err := clickhouse.Open(o)
		if err != nil {
			return nil, err
		}
		return driverConn{c}, nil
	}
)

// Open parses the dsn, dials and returns a client
// the connection is lazy, callers ping to verify reachability
func Open(_ context.Context, cfg Config) (*CH, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("ch: empty url")
	}
	opts, err := parseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = clientInfo(cfg.AppName, cfg.ClientTag)
	c, err := dial(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	return &CH{c: c}, nil
}

// Ping verifies the server answers
func (c *CH) Ping(ctx context.Context) error { return c.c.Ping(ctx) }

// Exec runs a statement without results
func (c *CH) Exec(ctx context.Context, query string, args ...any) error {
	return c.c.Exec(ctx, query, args...)
}

// Insert appends rows to table in one batch, each row in column order
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	b, err := c.c.prepare(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("ch: prepare %s: %w", table, err)
	}
	for i, row := range rows {
		if err := b.Append(row...); err != nil {
			_ = b.Abort()
			return fmt.Errorf("ch: append %s row %d: %w", table, i, err)
		}
	}
	if err := b.Send(); err != nil {
		return fmt.Errorf("ch: send %s: %w", table, err)
	}
	return nil
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return c.c.Query(ctx, query, args...)
}

// Close closes resources
func (c *CH) Close() error {
	if c == nil || c.c == nil {
		return nil
	}
	return c.c.Close()
}
