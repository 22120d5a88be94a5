package store

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"reviewsense/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// PoolMutator adjusts the parsed pgx pool config before the pool is built
type PoolMutator = func(*pgxpool.Config)

// WithLogger sets the logger handed to backend tracers
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithPoolConfig registers mutators applied to the postgres pool config
func WithPoolConfig(fns ...PoolMutator) Option {
	return func(s *Store) error {
		s.poolMut = append(s.poolMut, fns...)
		return nil
	}
}
