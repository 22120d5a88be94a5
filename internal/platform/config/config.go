// Package config reads service settings from environment variables
// keys are composed from prefixes, so Prefix("SERVICE_PGSQL_").MayInt("MAX_CONNS", 4) reads SERVICE_PGSQL_MAX_CONNS
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"reviewsense/internal/platform/logger"
)

// Conf is a prefixed view over the process environment
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix returns a view whose keys are all prefixed by p
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value and whether it was non empty
func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(k)))
	return v, v != ""
}

// parsed returns parse(value), or def when the key is unset or the value does not parse
func parsed[T any](c Conf, k string, def T, parse func(string) (T, error)) T {
	s, ok := c.lookup(k)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(k)).Str("value", s).Interface("default", def).Msg("unparsable env, using default")
		return def
	}
	return v
}

// MustString returns the value of k and panics when it is unset
func (c Conf) MustString(k string) string {
	v, ok := c.lookup(k)
	if !ok {
		logger.Get().Panic().Str("key", c.key(k)).Msg("missing required env")
	}
	return v
}

// MayString returns the value of k or def
func (c Conf) MayString(k, def string) string {
	if v, ok := c.lookup(k); ok {
		return v
	}
	return def
}

// MayInt returns k as an int or def
func (c Conf) MayInt(k string, def int) int { return parsed(c, k, def, strconv.Atoi) }

// MayBool returns k as a bool or def
func (c Conf) MayBool(k string, def bool) bool { return parsed(c, k, def, strconv.ParseBool) }

// MayDuration returns k as a duration such as 2s or 500ms, or def
func (c Conf) MayDuration(k string, def time.Duration) time.Duration {
	return parsed(c, k, def, time.ParseDuration)
}

// MayCSV splits k on commas and drops blanks, def when nothing is left
func (c Conf) MayCSV(k string, def []string) []string {
	s, ok := c.lookup(k)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns k lowercased when it matches one of allowed, def when unset, and panics otherwise
func (c Conf) MayEnum(k, def string, allowed ...string) string {
	v, ok := c.lookup(k)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.key(k)).Str("value", v).Strs("allowed", allowed).Msg("env value not in allowed set")
	return ""
}
