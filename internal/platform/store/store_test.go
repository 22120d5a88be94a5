package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"reviewsense/internal/platform/testkit"
)

// nopTx satisfies TxRunner but not Pinger
type nopTx struct{}

func (nopTx) Tx(context.Context, func(Queryer) error) error            { return nil }
func (nopTx) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, nil }
func (nopTx) Query(context.Context, string, ...any) (Rows, error)      { return nil, nil }
func (nopTx) QueryRow(context.Context, string, ...any) Row             { return nil }

type pingTx struct {
	nopTx
	err    error
	closed bool
}

func (p *pingTx) Ping(context.Context) error { return p.err }
func (p *pingTx) Close() error               { p.closed = true; return nil }

func TestOpen_NothingEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s, err := Open(context.Background(), Config{}, WithLogger(zerolog.New(&buf)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.CH != nil {
		t.Fatalf("backends should stay nil: %+v", s)
	}
	s.Log.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("logger not applied: %q", buf.String())
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard on empty store: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close on empty store: %v", err)
	}
}

func TestOpen_CHEmptyURL(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{CH: CHConfig{Enabled: true}})
	if err == nil || !strings.Contains(err.Error(), "store: clickhouse") {
		t.Fatalf("want clickhouse error, got store=%v err=%v", s, err)
	}
	if s != nil {
		t.Fatalf("store should be nil on error")
	}
}

func TestOpen_PGBadURL_StopsBeforeCH(t *testing.T) {
	t.Parallel()

	cfg := Config{
		PG: PGConfig{Enabled: true, URL: "://bad"},
		CH: CHConfig{Enabled: true, URL: "clickhouse://localhost:9000"},
	}
	s, err := Open(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "store: postgres") {
		t.Fatalf("want postgres error, got %v", err)
	}
	if s != nil {
		t.Fatalf("store should be nil on error")
	}
}

func TestOpen_PGUnreachable_GivesUp(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &startupBackoff, func(time.Duration) backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)
	})

	var mutated bool
	cfg := Config{
		PingTimeout: 200 * time.Millisecond,
		PG:          PGConfig{Enabled: true, URL: "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1"},
	}
	_, err := Open(context.Background(), cfg, WithPoolConfig(func(c *pgxpool.Config) { mutated = true }))
	if err == nil || !strings.Contains(err.Error(), "after 3 attempts") {
		t.Fatalf("want retry exhaustion, got %v", err)
	}
	if !mutated {
		t.Fatalf("pool mutator not applied")
	}
}

func TestGuard(t *testing.T) {
	t.Parallel()

	var nilStore *Store
	if err := nilStore.Guard(context.Background()); err == nil {
		t.Fatalf("nil store should fail Guard")
	}

	if err := (&Store{PG: nopTx{}}).Guard(context.Background()); err != nil {
		t.Fatalf("non pinger should be skipped: %v", err)
	}

	s := &Store{
		PG: &pingTx{err: errors.New("pg down")},
		CH: chStore{c: &fakeCHClient{pingErr: errors.New("ch down")}},
	}
	err := s.Guard(context.Background())
	if err == nil {
		t.Fatalf("expected joined error")
	}
	for _, want := range []string{"pg: pg down", "ch: ch down"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("Guard error %q missing %q", err, want)
		}
	}
}

func TestClose_ClosesEveryBackend(t *testing.T) {
	t.Parallel()

	pg := &pingTx{}
	fc := &fakeCHClient{}
	s := &Store{PG: pg, CH: chStore{c: fc}}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !pg.closed || !fc.closed {
		t.Fatalf("pg closed=%v ch closed=%v", pg.closed, fc.closed)
	}
}
