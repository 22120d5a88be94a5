// Package raw reads environment variables before the logger exists
// it must not import the logger, which is configured from it
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view over the process environment
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix returns a view whose keys are all prefixed by p
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Get returns the trimmed value of k or def
func (c Conf) Get(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(c.prefix + k)); v != "" {
		return v
	}
	return def
}

// GetBool treats 1, true and yes as true in any case; unset returns def
func (c Conf) GetBool(k string, def bool) bool {
	switch strings.ToLower(c.Get(k, "")) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// GetInt returns k as a non negative int, def when unset or not all digits
func (c Conf) GetInt(k string, def int) int {
	s := c.Get(k, "")
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
