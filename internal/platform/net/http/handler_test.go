package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type hoursQuery struct {
	Hours int `query:"hours" default:"24" validate:"min=1"`
}

func TestCall_WrapsPlainValues(t *testing.T) {
	h := Call(func(*http.Request) (any, error) {
		return map[string]int{"review_count": 3}, nil
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/reviews/summary", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"data":{"review_count":3}`) {
		t.Fatalf("body %q is not an envelope", rr.Body.String())
	}
}

func TestCall_PassesResponseThrough(t *testing.T) {
	h := Call(func(*http.Request) (any, error) {
		return Bare(http.StatusOK, "Get out of here"), nil
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := strings.TrimSpace(rr.Body.String()); got != `"Get out of here"` {
		t.Fatalf("body = %q", got)
	}
}

func TestCall_Error(t *testing.T) {
	h := Call(func(*http.Request) (any, error) { return nil, errors.New("boom") })
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestQueryHandler_Default(t *testing.T) {
	h := QueryHandler(func(_ *http.Request, in hoursQuery) (any, error) {
		return Bare(http.StatusOK, map[string]int{"hours": in.Hours}), nil
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	if got := strings.TrimSpace(rr.Body.String()); got != `{"hours":24}` {
		t.Fatalf("body = %q", got)
	}
}

func TestQueryHandler_ValidationError(t *testing.T) {
	h := QueryHandler(func(_ *http.Request, _ hoursQuery) (any, error) {
		t.Fatal("handler should not run on invalid input")
		return nil, nil
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/x?hours=0", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "hours must be at least 1") {
		t.Fatalf("body %q missing validation message", rr.Body.String())
	}
}

func TestRouter_GroupRouteAndParam(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	r.Group(func(g Router) {
		g.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("X-Group", "1")
				next.ServeHTTP(w, req)
			})
		})
		g.Get("/", Call(func(*http.Request) (any, error) { return "root", nil }))
	})
	r.Route("/groups", func(sub Router) {
		sub.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(URLParam(req, "id")))
		})
		sub.Post("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })
	})

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Header().Get("X-Group") != "1" {
		t.Fatalf("group middleware not applied")
	}

	rr = httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/groups/42", nil))
	if rr.Body.String() != "42" || rr.Header().Get("X-Group") != "" {
		t.Fatalf("param route: body=%q group=%q", rr.Body.String(), rr.Header().Get("X-Group"))
	}

	rr = httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/groups/", nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("post status = %d", rr.Code)
	}
}
