package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"reviewsense/internal/platform/net/middleware"
)

// StackOptions tunes the middleware every route runs behind
type StackOptions struct {
	// CORSOrigins lists browser origins allowed to call the API, empty allows none
	CORSOrigins []string
	// Timeout cancels the request context, zero means 30s
	Timeout time.Duration
	// Slow logs requests at or above it as warn, zero disables
	Slow time.Duration
	// MaxBodyBytes caps request bodies, zero leaves them unbounded
	MaxBodyBytes int64
	// MaxInFlight caps concurrent requests, extra ones wait up to Timeout in a
	// backlog of the same size and then get a 429, zero disables
	MaxInFlight int
}

// Stack returns the middleware chain for o, outermost first
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	mw := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		// logs the 500 that Recover writes
		middleware.AccessLog(o.Slow),
		middleware.Recover,
		middleware.NoCache(),
		middleware.CORS(o.CORSOrigins),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
	}
	if o.MaxInFlight > 0 {
		mw = append(mw, middleware.Throttle(o.MaxInFlight, o.MaxInFlight, timeout))
	}
	if o.MaxBodyBytes > 0 {
		mw = append(mw, middleware.RequestSize(o.MaxBodyBytes))
	}
	return append(mw,
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(timeout),
	)
}
