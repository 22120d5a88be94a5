package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	perr "reviewsense/internal/platform/errors"
	"reviewsense/internal/platform/logger"
	pnet "reviewsense/internal/platform/net"
	phttp "reviewsense/internal/platform/net/http"
)

// statusWriter remembers the status and byte count a handler produced
type statusWriter struct {
	http.ResponseWriter
	status int
	n      int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.n += n
	return n, err
}

// Flush keeps streamed CSV exports flowing through the wrapper
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// AccessLog writes one line per request through the request scoped logger
// requests at or above slow log at warn, zero never does
func AccessLog(slow time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w}
			start := time.Now()
			r = r.WithContext(logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), ""))

			next.ServeHTTP(sw, r)

			took := time.Since(start)
			if sw.status == 0 {
				sw.status = http.StatusOK
			}
			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case sw.status >= http.StatusInternalServerError:
				evt = log.Error()
			case slow > 0 && took >= slow:
				evt = log.Warn()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Int("bytes", sw.n).
				Dur("took", took).
				Msg("request")
		})
	}
}

// Recover turns a panic into a 500 envelope and logs the stack
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil || v == http.ErrAbortHandler {
				if v != nil {
					panic(v)
				}
				return
			}
			rid := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if rid != "" {
				w.Header().Set("X-Request-Id", rid)
			}
			phttp.JSON(w, http.StatusInternalServerError, phttp.Envelope{
				StatusCode: http.StatusInternalServerError,
				Status:     http.StatusText(http.StatusInternalServerError),
				Code:       perr.ErrorCodePanic,
				Error:      "internal error",
				RequestID:  rid,
			})
		}()
		next.ServeHTTP(w, r)
	})
}
