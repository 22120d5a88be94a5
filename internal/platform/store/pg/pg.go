// Package pg builds the pgx pool the store runs on
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"reviewsense/internal/platform/logger"
)

// Config configures the pool and its tracer
type Config struct {
	URL      string
	MaxConns int32
	AppName  string
	LogSQL   bool
	// SlowQuery logs statements at warn from this duration, zero disables
	SlowQuery time.Duration
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg into a pool config, installs the tracer and builds the pool
// pgxpool connects lazily, so Open does not reach the server
func Open(ctx context.Context, cfg Config, log logger.Logger, mutate ...func(*pgxpool.Config)) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.LogSQL || cfg.SlowQuery > 0 {
		pcfg.ConnConfig.Tracer = NewTracer(log, cfg.LogSQL, cfg.SlowQuery)
	}
	for _, m := range mutate {
		m(pcfg)
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	return pool, nil
}
