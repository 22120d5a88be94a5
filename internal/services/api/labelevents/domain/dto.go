// Package domain holds DTOs for label event analytics
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is one classified row as stored in label_events
type Event struct {
	ID         uuid.UUID
	RequestID  string
	Source     string
	Label      uint8
	LabelName  string
	Confidence float64
	TextLen    uint32
	Script     string
	At         time.Time
}

// SummaryInput selects the summary window
type SummaryInput struct {
	Hours int `query:"hours" default:"24" validate:"min=1,max=720" example:"24"`
}

// LabelStat aggregates events of one label
type LabelStat struct {
	Label          string  `json:"label" example:"Positive"`
	Count          uint64  `json:"count" example:"42"`
	MeanConfidence float64 `json:"mean_confidence" example:"0.87"`
}

// Summary is the per label breakdown over a window
type Summary struct {
	Hours  int         `json:"hours" example:"24"`
	Since  string      `json:"since" example:"2025-12-01T10:00:00Z"`
	Total  uint64      `json:"total" example:"120"`
	Labels []LabelStat `json:"labels"`

	// Scripts counts events by the writing system of the cleaned text
	Scripts map[string]uint64 `json:"scripts"`
}
