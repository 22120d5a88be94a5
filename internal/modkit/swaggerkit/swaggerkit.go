// Package swaggerkit serves the generated API document and the Swagger UI
package swaggerkit

import (
	"encoding/json"
	"net/http"

	phttp "reviewsense/internal/platform/net/http"
	docs "reviewsense/internal/services/api/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

const docPath = "/api/docs/doc.json"

// Mount serves the UI under /api/docs when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get(docPath, docHandler(docs.SwaggerInfo.ReadDoc))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InfoInstanceName),
		httpSwagger.URL(docPath),
	))
}

// docHandler serves the document read fills in with the shared error responses
func docHandler(read func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var doc map[string]any
		if err := json.Unmarshal([]byte(read()), &doc); err != nil {
			http.Error(w, "swagger document is not valid json", http.StatusInternalServerError)
			return
		}
		withErrors(doc)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// errorEnvelope mirrors phttp.Envelope for failed requests
var errorEnvelope = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer"},
		"error":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status", "error"},
}

// defaultErrors are added to every operation that does not document the status itself
var defaultErrors = map[string]string{
	"400": "Invalid query parameters",
	"500": "Internal error",
}

// withErrors adds the ErrorResponse definition and default error responses
func withErrors(doc map[string]any) {
	defs, _ := doc["definitions"].(map[string]any)
	if defs == nil {
		defs = map[string]any{}
		doc["definitions"] = defs
	}
	if _, ok := defs["ErrorResponse"]; !ok {
		defs["ErrorResponse"] = errorEnvelope
	}

	paths, _ := doc["paths"].(map[string]any)
	for _, item := range paths {
		ops, _ := item.(map[string]any)
		for _, o := range ops {
			op, _ := o.(map[string]any)
			if op == nil {
				continue
			}
			responses, _ := op["responses"].(map[string]any)
			if responses == nil {
				responses = map[string]any{}
				op["responses"] = responses
			}
			for status, desc := range defaultErrors {
				if _, ok := responses[status]; ok {
					continue
				}
				responses[status] = map[string]any{
					"description": desc,
					"schema":      map[string]any{"$ref": "#/definitions/ErrorResponse"},
				}
			}
		}
	}
}
