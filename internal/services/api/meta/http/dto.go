package http

import "reviewsense/internal/core/version"

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"reviewsense-api"`
	Started string `json:"started" example:"2026-03-01T09:00:00Z"`
	Now     string `json:"now"     example:"2026-03-01T09:05:00Z"`
}

// Probe states
const (
	ProbeOK      = "ok"
	ProbeFail    = "fail"
	ProbeSkipped = "skipped"
	ProbeUnknown = "unknown"
)

// ReadyCheck is the outcome of probing one dependency
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"`
	TookMS int64  `json:"took_ms"         example:"3"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok, degraded or fail, only fail answers 503
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-01T09:05:00Z"`
}

// ServiceResponse reports process uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"reviewsense-api"`
	Started string `json:"started" example:"2026-03-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ModelResponse reports the loaded classifier and its token budget
type ModelResponse struct {
	Loaded    bool     `json:"loaded"     example:"true"`
	Path      string   `json:"path"       example:"models/sentiment.onnx"`
	Head      int      `json:"head"       example:"100"`
	Tail      int      `json:"tail"       example:"100"`
	MaxLength int      `json:"max_length" example:"300"`
	NumLabels int      `json:"num_labels" example:"3"`
	PoolSize  int      `json:"pool_size"  example:"1"`
	Locale    string   `json:"locale"     example:"en"`
	Labels    []string `json:"labels"`

	Build version.BuildInfo `json:"build"`
}
