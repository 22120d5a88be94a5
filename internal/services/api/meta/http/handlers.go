// Package http serves liveness, readiness and build information
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"reviewsense/internal/core/version"
	"reviewsense/internal/modkit/httpkit"
	"reviewsense/internal/platform/store"
)

// probeTimeout bounds every readiness ping
const probeTimeout = 2 * time.Second

// Deps are what the meta endpoints report on
// PG and CH are probed when they implement store.Pinger, nil means disabled
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
	Model       ModelResponse
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/model", h.model)
}

func (h *handlers) stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// swagger:route GET /meta/health Meta metaHealth
// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.stamp(h.deps.StartedAt),
		Now:     h.stamp(h.now()),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness with model and store probes
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Failure 503 type ReadyResponse fail
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	checks := append([]ReadyCheck{h.modelCheck()}, probeAll(ctx, []target{
		{name: "pg", dep: h.deps.PG},
		{name: "ch", dep: h.deps.CH},
	})...)

	out := ReadyResponse{Status: overall(checks), Checks: checks, Now: h.stamp(h.now())}
	if out.Status == ProbeFail {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

func (h *handlers) modelCheck() ReadyCheck {
	if !h.deps.Model.Loaded {
		return ReadyCheck{Name: "model", Status: ProbeFail, Error: "classifier not loaded"}
	}
	return ReadyCheck{Name: "model", Status: ProbeOK}
}

type target struct {
	name string
	dep  any
}

// probeAll pings every target at once, checks keep the order of targets
func probeAll(ctx context.Context, targets []target) []ReadyCheck {
	out := make([]ReadyCheck, len(targets))
	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i] = probe(ctx, t)
		}()
	}
	wg.Wait()
	return out
}

func probe(ctx context.Context, t target) ReadyCheck {
	if t.dep == nil {
		return ReadyCheck{Name: t.name, Status: ProbeSkipped}
	}
	p, ok := t.dep.(store.Pinger)
	if !ok {
		return ReadyCheck{Name: t.name, Status: ProbeUnknown}
	}
	start := time.Now()
	err := p.Ping(ctx)
	c := ReadyCheck{Name: t.name, Status: ProbeOK, TookMS: time.Since(start).Milliseconds()}
	if err != nil {
		c.Status, c.Error = ProbeFail, err.Error()
	}
	return c
}

// overall is fail when any check fails, degraded when one cannot be probed
// Disabled stores are skipped and do not count against readiness
func overall(checks []ReadyCheck) string {
	status := ProbeOK
	for _, c := range checks {
		switch c.Status {
		case ProbeFail:
			return ProbeFail
		case ProbeUnknown:
			status = "degraded"
		}
	}
	return status
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build information
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.stamp(h.deps.StartedAt),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

// swagger:route GET /meta/model Meta metaModel
// @Summary Classifier settings and build
// @Tags Meta
// @Produce json
// @Success 200 type ModelResponse ok
// @Router /meta/model [get]
func (h *handlers) model(_ *http.Request) (any, error) {
	out := h.deps.Model
	out.Build = version.Info()
	return out, nil
}
