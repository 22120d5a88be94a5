// Package modkit is how API modules are built and wired together
//
// A module embeds Base, reads its injected ports from Built.Ports and
// publishes its own through Base so other modules can find them with PortsOf
package modkit

import (
	"net/http"
	"reflect"

	phttp "reviewsense/internal/platform/net/http"
	str "reviewsense/internal/platform/strings"
)

// Module is what the API mounts
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	Ports() any
}

// Base implements Name, Prefix and Ports for an embedding module
type Base struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
	ports  any
}

// Name is the module name, it panics when unset
func (b Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix is the normalized mount point, it panics when unset
func (b Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Ports is what the module publishes to other modules
func (b Base) Ports() any { return b.ports }

// Route mounts fn under prefix behind the module middleware
func (b Base) Route(r phttp.Router, prefix string, fn func(phttp.Router)) {
	r.Route(str.MustPrefix(prefix), func(sub phttp.Router) {
		b.Use(sub)
		fn(sub)
	})
}

// Use applies the module middleware to r
func (b Base) Use(r phttp.Router) {
	if len(b.mw) > 0 {
		r.Use(b.mw...)
	}
}

// PortsOf finds a T in m's ports, either the ports value itself or one of its exported fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for wiring code, a missing port is a programming error
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("modkit: module " + m.Name() + " does not publish " + reflect.TypeFor[T]().String())
	}
	return v
}
