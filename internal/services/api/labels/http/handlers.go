// Package http provides http transport for labels
package http

import (
	"errors"
	stdhttp "net/http"

	"reviewsense/internal/modkit/httpkit"
	perr "reviewsense/internal/platform/errors"
	"reviewsense/internal/platform/logger"
	"reviewsense/internal/services/api/labels/domain"
	svc "reviewsense/internal/services/api/labels/service"
)

const csvContentType = "text/csv; charset=utf-8"

// RegisterIndex mounts the root greeting
func RegisterIndex(r httpkit.Router) {
	httpkit.Get(r, "/", index)
}

// Register mounts labels endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostQuery[domain.LabelInput](r, "/", h.labelOne)
	httpkit.Post(r, "/file", h.labelFile)
}

type handlers struct{ svc svc.Service }

// swagger:route GET / Labels labelsIndex
// @Summary Root greeting
// @Tags Labels
// @Produce json
// @Success 200 {string} string "Get out of here"
// @Router / [get]
func index(_ *stdhttp.Request) (any, error) {
	return httpkit.Bare(stdhttp.StatusOK, "Get out of here"), nil
}

// swagger:route POST /labels Labels labelsOne
// @Summary Classify a single review
// @Tags Labels
// @Produce text/csv
// @Param review query string true "Review text"
// @Success 200 {file} file "predictions.csv with labels,text,confidence"
// @Failure 400 {object} httpkit.Envelope
// @Failure 500 {object} httpkit.Envelope
// @Router /labels [post]
func (h *handlers) labelOne(r *stdhttp.Request, in domain.LabelInput) (any, error) {
	data, err := h.svc.LabelOne(r.Context(), *in.Review)
	if err != nil {
		return nil, err
	}
	return httpkit.Attachment(domain.OutputName, csvContentType, data), nil
}

// swagger:route POST /labels/file Labels labelsFile
// @Summary Classify every text row of a CSV upload
// @Description Failures other than a missing upload are reported as 200 with an exception payload
// @Tags Labels
// @Accept multipart/form-data
// @Produce text/csv
// @Param file formData file true "CSV with a text column"
// @Success 200 {file} file "input table plus labels and confidence"
// @Failure 404 {object} httpkit.Envelope
// @Router /labels/file [post]
func (h *handlers) labelFile(r *stdhttp.Request) (any, error) {
	f, _, err := r.FormFile("file")
	switch {
	case errors.Is(err, stdhttp.ErrMissingFile), errors.Is(err, stdhttp.ErrNotMultipart):
		return nil, perr.NotFoundf(domain.MsgNoUpload)
	case err != nil:
		return soft(r, domain.MsgReadFailed+err.Error()), nil
	}
	defer f.Close()

	data, err := h.svc.LabelFile(r.Context(), f)
	switch {
	case errors.Is(err, domain.ErrNoTextColumn):
		return soft(r, domain.MsgNoTextColumn), nil
	case err != nil:
		return soft(r, domain.MsgReadFailed+err.Error()), nil
	}
	return httpkit.Attachment(domain.OutputName, csvContentType, data), nil
}

// soft reports a failure as a 200 exception payload
func soft(r *stdhttp.Request, msg string) httpkit.Response {
	logger.C(r.Context()).Warn().Str("exception", msg).Msg("label file rejected")
	return httpkit.Bare(stdhttp.StatusOK, domain.Exception{Exception: msg})
}
