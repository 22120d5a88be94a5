package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"reviewsense/internal/platform/store/ch"
	"reviewsense/internal/platform/store/pg"
)

// startupBackoff paces the first postgres pings while the server comes up
var startupBackoff = func(maxWait time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 150 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = maxWait
	return b
}

// openPG builds the pool and publishes it once a ping succeeds
func openPG(ctx context.Context, cfg Config, s *Store) (*pgStore, error) {
	pool, err := pg.Open(ctx, pg.Config{
		URL:       cfg.PG.URL,
		MaxConns:  cfg.PG.MaxConns,
		AppName:   cfg.AppName,
		LogSQL:    cfg.PG.LogSQL,
		SlowQuery: cfg.PG.SlowQuery,
	}, s.Log, s.poolMut...)
	if err != nil {
		return nil, err
	}

	attempts := 0
	ping := func() error {
		attempts++
		pctx, cancel := context.WithTimeout(ctx, cfg.pingTimeout())
		defer cancel()
		return pool.Ping(pctx)
	}
	notify := func(err error, next time.Duration) {
		s.Log.Warn().Err(err).Int("attempt", attempts).Dur("retry_in", next).Msg("postgres not ready")
	}
	b := backoff.WithContext(startupBackoff(cfg.PG.startupWait()), ctx)
	if err := backoff.RetryNotify(ping, b, notify); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping failed after %d attempts: %w", attempts, err)
	}
	return newPGStore(pool), nil
}

// openCH dials clickhouse and pings it once
func openCH(ctx context.Context, cfg Config) (chStore, error) {
	c, err := ch.Open(ctx, ch.Config{
		URL:       cfg.CH.URL,
		AppName:   cfg.AppName,
		ClientTag: cfg.CH.ClientTag,
	})
	if err != nil {
		return chStore{}, err
	}

	pctx, cancel := context.WithTimeout(ctx, cfg.pingTimeout())
	defer cancel()
	if err := c.Ping(pctx); err != nil {
		_ = c.Close()
		return chStore{}, fmt.Errorf("ping: %w", err)
	}
	return chStore{c: c}, nil
}
