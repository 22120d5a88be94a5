package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestRequestID_FromMiddleware(t *testing.T) {
	var seen string
	h := chimw.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/labels", nil)
	req.Header.Set(chimw.RequestIDHeader, "upstream-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "upstream-42" {
		t.Fatalf("RequestID = %q, want upstream-42", seen)
	}
}

func TestWithRequestID(t *testing.T) {
	if got := RequestID(WithRequestID(context.Background(), "rid-9")); got != "rid-9" {
		t.Fatalf("RequestID = %q, want rid-9", got)
	}
	ctx := context.Background()
	if WithRequestID(ctx, "") != ctx {
		t.Fatal("empty id should return ctx unchanged")
	}
}
