// Package module wires label event analytics into the API using modkit
package module

import (
	"context"
	"time"

	modkit "reviewsense/internal/modkit"
	"reviewsense/internal/modkit/httpkit"
	"reviewsense/internal/platform/logger"
	evhttp "reviewsense/internal/services/api/labelevents/http"
	evrepo "reviewsense/internal/services/api/labelevents/repo"
	evsvc "reviewsense/internal/services/api/labelevents/service"
)

// Module serves the event summary and publishes the labels EventSink
type Module struct {
	modkit.Base
	svc evsvc.Service
}

// New constructs the label events module, deps.CH must be set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{
		modkit.WithName("labelevents"),
		modkit.WithPrefix("/labels/events"),
	}, opts...)

	cfg := FromConfig(deps.Cfg)
	svc := evsvc.New(evrepo.NewCH(deps.CH))

	if cfg.EnsureSchema {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := svc.EnsureSchema(ctx); err != nil {
			logger.Named("labelevents").Warn().Err(err).Msg("ensure schema failed")
		}
		cancel()
	}

	sink := sinkPort{svc: svc, timeout: cfg.InsertTimeout, now: time.Now}
	return &Module{Base: b.Base(sink), svc: svc}
}

// MountRoutes mounts the summary under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Route(r, m.Prefix(), func(rr httpkit.Router) { evhttp.Register(rr, m.svc) })
}
