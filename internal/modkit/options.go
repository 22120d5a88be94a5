package modkit

import "net/http"

// Option configures Build
type Option func(*Built)

// Built is the result of applying options
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Ports holds what the caller injected, the module asserts its own Ports type
	Ports any
}

// WithName names the module
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the module mount point
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends module scoped middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects collaborators, T is declared by the receiving module
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// Build applies defaults then opts, later options win
func Build(defaults []Option, opts ...Option) Built {
	var b Built
	for _, o := range defaults {
		o(&b)
	}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Base turns b into the embeddable module base publishing exported
func (b Built) Base(exported any) Base {
	return Base{name: b.Name, prefix: b.Prefix, mw: b.Mw, ports: exported}
}
