// Package net reads and seeds the request id chi's RequestID middleware keeps on the context
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID is the id chi assigned to the request carried by ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithRequestID seeds ctx with id for work that runs outside the middleware chain, such as tests
// or background jobs started from a request
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, id)
}
