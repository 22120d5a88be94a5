package module

import (
	"reviewsense/internal/core/labels"
	"reviewsense/internal/platform/config"
)

// Options controls where predictions are written and how labels are named
type Options struct {
	OutputPath string
	Locale     labels.Locale
}

// FromConfig reads LABELS_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	lc := cfg.Prefix("LABELS_")
	return Options{
		OutputPath: lc.MayString("OUTPUT_PATH", "predictions.csv"),
		Locale:     labels.ParseLocale(lc.MayEnum("LOCALE", string(labels.LocaleEN), string(labels.LocaleEN), string(labels.LocaleRU))),
	}
}
