package module

import (
	"time"

	"reviewsense/internal/platform/config"
)

// Options controls schema bootstrap and the per request insert budget
type Options struct {
	EnsureSchema  bool
	InsertTimeout time.Duration
}

// FromConfig reads SERVICE_CLICKHOUSE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	cc := cfg.Prefix("SERVICE_CLICKHOUSE_")
	return Options{
		EnsureSchema:  cc.MayBool("MIGRATE", true),
		InsertTimeout: cc.MayDuration("INSERT_TIMEOUT", 2*time.Second),
	}
}
