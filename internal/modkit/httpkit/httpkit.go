// Package httpkit is what service modules import for routing and responses
// it re-exports the platform http types so modules stay off internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "reviewsense/internal/platform/net/http"
)

type (
	// Envelope is the JSON body of every non-bare response
	Envelope = phttp.Envelope
	// Response is what return-style handlers produce
	Response = phttp.Response
	// Router is the mount surface
	Router = phttp.Router
)

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// Bare writes v as JSON without the envelope
func Bare(status int, v any) Response { return phttp.Bare(status, v) }

// Attachment returns body as a named file download
func Attachment(filename, contentType string, body []byte) Response {
	return phttp.Attachment(filename, contentType, body)
}

// Param returns a path parameter such as {id}
func Param(r *http.Request, name string) string { return phttp.URLParam(r, name) }

// Get mounts h under GET, plain return values are enveloped
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, phttp.Call(h)) }

// Post mounts h under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, phttp.Call(h)) }

// GetQuery mounts a GET handler whose input is bound from the query string
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, phttp.QueryHandler(h))
}

// PostQuery mounts a POST handler whose input is bound from the query string
func PostQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.QueryHandler(h))
}

// MountAPIV1 scopes mount under /api/v1 behind mw
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}
