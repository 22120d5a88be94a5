package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "reviewsense/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "swagger": "2.0",
  "paths": {
    "/labels/file": {
      "post": {"responses": {"200": {"description": "predictions"}, "404": {"description": "File is not uploaded"}}}
    },
    "/api/v1/groups/{id}/stats": {
      "get": {"responses": {"400": {"description": "id is not a uuid"}}}
    }
  }
}`

func serve(t *testing.T, read func() string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	docHandler(read)(rr, httptest.NewRequest(http.MethodGet, docPath, nil))
	var doc map[string]any
	if rr.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	}
	return rr, doc
}

func responses(doc map[string]any, path, method string) map[string]any {
	return doc["paths"].(map[string]any)[path].(map[string]any)[method].(map[string]any)["responses"].(map[string]any)
}

func TestDocHandler_AddsErrorResponses(t *testing.T) {
	rr, doc := serve(t, func() string { return sample })
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["definitions"], "ErrorResponse")

	file := responses(doc, "/labels/file", "post")
	assert.Contains(t, file, "404")
	assert.Contains(t, file, "400")
	assert.Contains(t, file, "500")

	stats := responses(doc, "/api/v1/groups/{id}/stats", "get")
	assert.Equal(t, "id is not a uuid", stats["400"].(map[string]any)["description"])
	assert.Equal(t, "#/definitions/ErrorResponse", stats["500"].(map[string]any)["schema"].(map[string]any)["$ref"])
}

func TestDocHandler_InvalidDocument(t *testing.T) {
	rr, _ := serve(t, func() string { return "{" })
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestMount(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		r := phttp.AdaptChi(chi.NewRouter())
		Mount(r, enabled)

		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, docPath, nil))
		if !enabled {
			assert.Equal(t, http.StatusNotFound, rr.Code)
			continue
		}
		require.Equal(t, http.StatusOK, rr.Code)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
		assert.Equal(t, "ReviewSense API", doc["info"].(map[string]any)["title"])

		rr = httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
		assert.Equal(t, http.StatusPermanentRedirect, rr.Code)
	}
}
