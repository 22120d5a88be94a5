// Package http provides http transport for review groups
package http

import (
	"errors"
	stdhttp "net/http"

	"reviewsense/internal/modkit/httpkit"
	perr "reviewsense/internal/platform/errors"
	"reviewsense/internal/services/api/groups/domain"
	svc "reviewsense/internal/services/api/groups/service"
)

// Register mounts group endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Post(r, "/", h.upload)
	httpkit.Get(r, "/", h.list)
	httpkit.GetQuery[domain.ReviewsInput](r, "/{id}/reviews", h.reviews)
	httpkit.Get(r, "/{id}/stats", h.stats)
	httpkit.Get(r, "/{id}/export", h.export)
}

// RegisterReviews mounts the cross group review endpoints
func RegisterReviews(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.GetQuery[domain.ByTitleInput](r, "/by-title", h.byTitle)
	httpkit.Get(r, "/summary", h.summary)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /groups Groups groupsUpload
// @Summary Classify a CSV upload and store it as a review group
// @Tags Groups
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV with a text column and optional src and id columns"
// @Success 201 {object} domain.UploadResult "created"
// @Failure 400 {object} httpkit.Envelope
// @Failure 422 {object} httpkit.Envelope
// @Router /groups [post]
func (h *handlers) upload(r *stdhttp.Request) (any, error) {
	f, hdr, err := r.FormFile("file")
	switch {
	case errors.Is(err, stdhttp.ErrMissingFile), errors.Is(err, stdhttp.ErrNotMultipart):
		return nil, perr.WithField(perr.Validationf("file is required"), "file")
	case err != nil:
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read upload"), "file")
	}
	defer f.Close()
	if hdr.Size == 0 {
		return nil, perr.WithField(perr.Validationf("File is empty"), "file")
	}

	out, err := h.svc.Upload(r.Context(), hdr.Filename, f)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route GET /groups Groups groupsList
// @Summary List review groups newest first
// @Tags Groups
// @Produce json
// @Success 200 {array} domain.Group "ok"
// @Router /groups [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// swagger:route GET /groups/{id}/reviews Groups groupsReviews
// @Summary Reviews of a group
// @Tags Groups
// @Produce json
// @Param id path string true "Group id"
// @Param count query int false "Maximum reviews, zero or less returns all" default(-1)
// @Success 200 {array} domain.Review "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /groups/{id}/reviews [get]
func (h *handlers) reviews(r *stdhttp.Request, in domain.ReviewsInput) (any, error) {
	return h.svc.Reviews(r.Context(), httpkit.Param(r, "id"), in)
}

// swagger:route GET /groups/{id}/stats Groups groupsStats
// @Summary Label mix of a group
// @Tags Groups
// @Produce json
// @Param id path string true "Group id"
// @Success 200 {object} domain.Stats "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /groups/{id}/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.Stats(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route GET /groups/{id}/export Groups groupsExport
// @Summary Download a group as CSV
// @Tags Groups
// @Produce text/csv
// @Param id path string true "Group id"
// @Success 200 {file} file "Id,Text,Label,Src,Confidence"
// @Failure 404 {object} httpkit.Envelope
// @Router /groups/{id}/export [get]
func (h *handlers) export(r *stdhttp.Request) (any, error) {
	data, err := h.svc.Export(r.Context(), httpkit.Param(r, "id"))
	if err != nil {
		return nil, err
	}
	return httpkit.Attachment(domain.ExportName, "text/csv; charset=utf-8", data), nil
}

// swagger:route GET /reviews/by-title Reviews reviewsByTitle
// @Summary Reviews whose group name contains the title
// @Tags Reviews
// @Produce json
// @Param title query string true "Case insensitive group name fragment"
// @Param count query int false "Maximum reviews, zero or less returns all" default(-1)
// @Success 200 {array} domain.Review "ok"
// @Failure 400 {object} httpkit.Envelope
// @Router /reviews/by-title [get]
func (h *handlers) byTitle(r *stdhttp.Request, in domain.ByTitleInput) (any, error) {
	return h.svc.ByTitle(r.Context(), in)
}

// swagger:route GET /reviews/summary Reviews reviewsSummary
// @Summary Review count and positive share over every group
// @Tags Reviews
// @Produce json
// @Success 200 {object} domain.Summary "ok"
// @Router /reviews/summary [get]
func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	return h.svc.Summary(r.Context())
}
