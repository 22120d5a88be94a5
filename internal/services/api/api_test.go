package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewsense/internal/core/labels"
	"reviewsense/internal/platform/config"
	phttp "reviewsense/internal/platform/net/http"
	"reviewsense/internal/services/api/labels/labelstest"
	metahttp "reviewsense/internal/services/api/meta/http"
)

func mount(t *testing.T, opts ...func(*Options)) (*chi.Mux, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "predictions.csv")
	t.Setenv("LABELS_OUTPUT_PATH", out)

	o := Options{
		Config:     config.New(),
		Classifier: &labelstest.Classifier{Logits: labelstest.LogitsFor(labels.Positive)},
		Batcher:    labelstest.Batcher(),
		Model:      metahttp.ModelResponse{Loaded: true, MaxLength: 32},
	}
	for _, fn := range opts {
		fn(&o)
	}
	m := chi.NewRouter()
	Mount(phttp.AdaptChi(m), o)
	return m, out
}

func do(m http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestMount_RootRoutes(t *testing.T) {
	m, out := mount(t)

	rec := do(m, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"Get out of here"`, rec.Body.String())

	rec = do(m, http.MethodPost, "/labels?review=Great%20phone")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "labels,text,confidence\n"))
	assert.Contains(t, rec.Body.String(), "Positive,Great phone,")

	disk, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, rec.Body.String(), string(disk))
}

func TestMount_APIV1(t *testing.T) {
	m, _ := mount(t)

	rec := do(m, http.MethodGet, "/api/v1/meta/model")
	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data metahttp.ModelResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Data.Loaded)
	assert.Equal(t, 32, env.Data.MaxLength)

	// stores are disabled so their modules are not mounted
	assert.Equal(t, http.StatusNotFound, do(m, http.MethodGet, "/api/v1/groups").Code)
	assert.Equal(t, http.StatusNotFound, do(m, http.MethodGet, "/api/v1/labels/events/summary").Code)
}

func TestMount_UploadCap(t *testing.T) {
	m, _ := mount(t, func(o *Options) { o.UploadMaxBytes = 64 })

	body := strings.NewReader("--b\r\nContent-Disposition: form-data; name=\"file\"; filename=\"r.csv\"\r\n\r\ntext\n" +
		strings.Repeat("Great phone\n", 20) + "\r\n--b--\r\n")
	req := httptest.NewRequest(http.MethodPost, "/labels/file", body)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=b")
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	// an oversized body never yields predictions
	assert.NotContains(t, rec.Body.String(), "Positive")
}

func TestMount_ThrottledRoutesStillServe(t *testing.T) {
	m, _ := mount(t, func(o *Options) { o.MaxInFlight = 1 })

	rec := do(m, http.MethodPost, "/labels?review=Great%20phone")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Positive,Great phone,")
}
