// Package http provides http transport for label events
package http

import (
	stdhttp "net/http"

	"reviewsense/internal/modkit/httpkit"
	"reviewsense/internal/services/api/labelevents/domain"
	svc "reviewsense/internal/services/api/labelevents/service"
)

// Register mounts label event endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.GetQuery[domain.SummaryInput](r, "/summary", h.summary)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /labels/events/summary LabelEvents labelEventsSummary
// @Summary Label counts and mean confidence over a recent window
// @Tags LabelEvents
// @Produce json
// @Param hours query int false "Window in hours" default(24) minimum(1) maximum(720)
// @Success 200 {object} domain.Summary "ok"
// @Failure 400 {object} httpkit.Envelope
// @Router /labels/events/summary [get]
func (h *handlers) summary(r *stdhttp.Request, in domain.SummaryInput) (any, error) {
	return h.svc.Summary(r.Context(), in)
}
