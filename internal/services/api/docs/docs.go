// Package docs is generated by swag from the handler annotations, regenerate with swag init
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Labels"],
                "summary": "Root probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        },
        "/labels": {
            "post": {
                "produces": ["text/csv"],
                "tags": ["Labels"],
                "summary": "Classify one review",
                "parameters": [{"type": "string", "description": "Review text", "name": "review", "in": "query", "required": true}],
                "responses": {"200": {"description": "predictions.csv", "schema": {"type": "file"}}}
            }
        },
        "/labels/file": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["text/csv", "application/json"],
                "tags": ["Labels"],
                "summary": "Classify every row of a CSV upload",
                "parameters": [{"type": "file", "description": "CSV with a text column", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "predictions.csv or an exception object", "schema": {"type": "file"}},
                    "404": {"description": "File is not uploaded"}
                }
            }
        },
        "/api/v1/meta/health": {"get": {"produces": ["application/json"], "tags": ["Meta"], "summary": "Health check", "responses": {"200": {"description": "ok"}}}},
        "/api/v1/meta/ready": {"get": {"produces": ["application/json"], "tags": ["Meta"], "summary": "Readiness probe with dependency checks", "responses": {"200": {"description": "ok"}}}},
        "/api/v1/meta/version": {"get": {"produces": ["application/json"], "tags": ["Meta"], "summary": "Build and version info", "responses": {"200": {"description": "ok"}}}},
        "/api/v1/meta/service": {"get": {"produces": ["application/json"], "tags": ["Meta"], "summary": "Service info and uptime", "responses": {"200": {"description": "ok"}}}},
        "/api/v1/meta/model": {"get": {"produces": ["application/json"], "tags": ["Meta"], "summary": "Classifier settings and build", "responses": {"200": {"description": "ok"}}}},
        "/api/v1/groups": {
            "get": {"produces": ["application/json"], "tags": ["Groups"], "summary": "List review groups", "responses": {"200": {"description": "ok"}}},
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Groups"],
                "summary": "Upload and classify a CSV as a new group",
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {"201": {"description": "created"}}
            }
        },
        "/api/v1/groups/{id}/reviews": {"get": {"produces": ["application/json"], "tags": ["Groups"], "summary": "Reviews of a group", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "count", "in": "query"}], "responses": {"200": {"description": "ok"}}}},
        "/api/v1/groups/{id}/stats": {"get": {"produces": ["application/json"], "tags": ["Groups"], "summary": "Label counts and positive share", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "ok"}}}},
        "/api/v1/groups/{id}/export": {"get": {"produces": ["text/csv"], "tags": ["Groups"], "summary": "Export a group as CSV", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "reviews.csv", "schema": {"type": "file"}}}}},
        "/api/v1/reviews/by-title": {"get": {"produces": ["application/json"], "tags": ["Groups"], "summary": "Reviews whose group name contains the title", "parameters": [{"type": "string", "name": "title", "in": "query", "required": true}, {"type": "integer", "name": "count", "in": "query"}], "responses": {"200": {"description": "ok"}}}},
        "/api/v1/reviews/summary": {"get": {"produces": ["application/json"], "tags": ["Groups"], "summary": "Totals across every group", "responses": {"200": {"description": "ok"}}}},
        "/api/v1/labels/events/summary": {"get": {"produces": ["application/json"], "tags": ["LabelEvents"], "summary": "Label counts over a trailing window", "parameters": [{"type": "integer", "name": "hours", "in": "query"}], "responses": {"200": {"description": "ok"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ReviewSense API",
	Description:      "Sentiment labels for product reviews",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
