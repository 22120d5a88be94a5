package module

import (
	"time"

	"reviewsense/internal/core/labels"
	"reviewsense/internal/platform/config"
)

// Options controls schema bootstrap, statement budgets and label names
type Options struct {
	Migrate          bool
	StatementTimeout time.Duration
	Locale           labels.Locale
}

// FromConfig reads SERVICE_PGSQL_* and LABELS_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	pc := cfg.Prefix("SERVICE_PGSQL_")
	return Options{
		Migrate:          pc.MayBool("MIGRATE", false),
		StatementTimeout: pc.MayDuration("STATEMENT_TIMEOUT", 30*time.Second),
		Locale:           labels.ParseLocale(cfg.Prefix("LABELS_").MayEnum("LOCALE", string(labels.LocaleEN), string(labels.LocaleEN), string(labels.LocaleRU))),
	}
}
