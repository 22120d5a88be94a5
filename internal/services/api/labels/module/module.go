// Package module wires labels into the API using modkit
package module

import (
	"reviewsense/internal/adapters/csvio"
	modkit "reviewsense/internal/modkit"
	"reviewsense/internal/modkit/httpkit"
	"reviewsense/internal/platform/logger"
	"reviewsense/internal/services/api/labels/domain"
	labelshttp "reviewsense/internal/services/api/labels/http"
	labelssvc "reviewsense/internal/services/api/labels/service"
)

// Module serves the greeting at / and the classifier under its prefix
type Module struct {
	modkit.Base
	svc labelssvc.Service
}

// Ports declares the model collaborators injected into this module
type Ports struct {
	Classifier domain.Classifier
	Batcher    domain.Preparer
	Events     domain.EventSink // optional
}

// New constructs the labels module, it panics without a Classifier and a Batcher
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("labels"), modkit.WithPrefix("/labels")}, opts...)

	injected, _ := b.Ports.(Ports)
	if injected.Classifier == nil || injected.Batcher == nil {
		panic("labels module requires Classifier and Batcher ports")
	}

	cfg := FromConfig(deps.Cfg)
	out := csvio.NewFileWriter(cfg.OutputPath)
	logger.Named("labels").Info().Str("output", out.Path()).Msg("prediction output")
	svc := labelssvc.New(labelssvc.Options{
		Classifier: injected.Classifier,
		Batcher:    injected.Batcher,
		Output:     out,
		Events:     injected.Events,
		Locale:     cfg.Locale,
	})
	return &Module{Base: b.Base(predictor{svc: svc}), svc: svc}
}

// MountRoutes mounts at the router it is given, not under /api/v1
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Group(func(g httpkit.Router) {
		m.Use(g)
		labelshttp.RegisterIndex(g)
		g.Route(m.Prefix(), func(rr httpkit.Router) { labelshttp.Register(rr, m.svc) })
	})
}
