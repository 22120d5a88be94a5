// Package module wires review groups into the API using modkit
package module

import (
	"context"
	"time"

	modkit "reviewsense/internal/modkit"
	"reviewsense/internal/modkit/httpkit"
	"reviewsense/internal/modkit/repokit"
	"reviewsense/internal/platform/logger"
	"reviewsense/internal/services/api/groups/domain"
	groupshttp "reviewsense/internal/services/api/groups/http"
	groupsrepo "reviewsense/internal/services/api/groups/repo"
	groupssvc "reviewsense/internal/services/api/groups/service"
)

// reviewsPrefix hosts the cross group review endpoints
const reviewsPrefix = "/reviews"

// Module serves /groups and /reviews
type Module struct {
	modkit.Base
	svc groupssvc.Service
}

// Ports declares the injected labels predictor
type Ports struct {
	Predictor domain.Predictor
}

// New constructs the groups module, deps.PG must be set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("groups"), modkit.WithPrefix("/groups")}, opts...)

	injected, _ := b.Ports.(Ports)
	if injected.Predictor == nil {
		panic("groups module requires a Predictor port (from labels)")
	}

	cfg := FromConfig(deps.Cfg)
	db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(cfg.StatementTimeout))
	svc := groupssvc.New(db, groupsrepo.NewPG(), injected.Predictor, cfg.Locale)

	if cfg.Migrate {
		migrate(deps.PG, svc)
	}
	return &Module{Base: b.Base(nil), svc: svc}
}

func migrate(pg repokit.TxRunner, svc groupssvc.Service) {
	log := logger.Named("groups")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if p, ok := pg.(repokit.Pinger); ok {
		repokit.MustPing(ctx, "pg", p)
	}
	if err := svc.Migrate(ctx); err != nil {
		log.Panic().Err(err).Msg("migrate failed")
	}
	log.Info().Msg("schema applied")
}

// MountRoutes mounts the group routes and the cross group review routes
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Route(r, m.Prefix(), func(rr httpkit.Router) { groupshttp.Register(rr, m.svc) })
	m.Route(r, reviewsPrefix, func(rr httpkit.Router) { groupshttp.RegisterReviews(rr, m.svc) })
}
