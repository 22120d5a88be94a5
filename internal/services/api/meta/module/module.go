// Package module wires meta endpoints into the API using modkit
package module

import (
	"time"

	"reviewsense/internal/core/version"
	modkit "reviewsense/internal/modkit"
	"reviewsense/internal/modkit/httpkit"
	metahttp "reviewsense/internal/services/api/meta/http"
)

// Module serves health, readiness and build information
type Module struct {
	modkit.Base
	deps metahttp.Deps
}

// Ports declares what the meta endpoints report about the classifier
type Ports struct {
	Model metahttp.ModelResponse
}

// New constructs the meta module, readiness pings whichever stores deps carries
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)
	injected, _ := b.Ports.(Ports)

	return &Module{Base: b.Base(nil), deps: metahttp.Deps{
		ServiceName: version.Service,
		StartedAt:   time.Now(),
		PG:          deps.PG,
		CH:          deps.CH,
		Model:       injected.Model,
	}}
}

// MountRoutes mounts the meta endpoints under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Route(r, m.Prefix(), func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}
