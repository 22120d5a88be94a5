// Package middleware is the request pipeline shared by every route
// chi and go-chi/cors do the work, nothing here returns chi types
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Middleware is the standard net/http decorator
type Middleware = func(http.Handler) http.Handler

// RequestID accepts an incoming X-Request-Id or mints one
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Real-IP and X-Forwarded-For for RemoteAddr
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache marks every response as uncacheable
func NoCache() Middleware { return chimw.NoCache }

// Compress gzips and deflates text and JSON responses at level
func Compress(level int) Middleware { return chimw.Compress(level) }

// StripSlashes routes /labels/ as /labels
func StripSlashes() Middleware { return chimw.StripSlashes }

// RequestSize caps request bodies at n bytes
func RequestSize(n int64) Middleware { return chimw.RequestSize(n) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Throttle admits limit concurrent requests, queues up to backlog more for wait,
// and answers 429 beyond that
func Throttle(limit, backlog int, wait time.Duration) Middleware {
	return chimw.ThrottleBacklog(limit, backlog, wait)
}

// CORS allows origins to call the API from a browser, downloads expose Content-Disposition
func CORS(origins []string) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
		MaxAge:         300,
	})
}
