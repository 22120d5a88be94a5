// Package domain holds DTOs and ports for the labels http and service contracts
package domain

import (
	"errors"

	"reviewsense/internal/core/labels"
)

// Source names where a classified row came from
type Source string

// Sources recorded on label events and request logs
const (
	SourceSingle Source = "single"
	SourceFile   Source = "file"
	SourceGroup  Source = "group"
)

// Columns of the prediction table
const (
	ColumnText       = "text"
	ColumnLabels     = "labels"
	ColumnConfidence = "confidence"
)

// OutputName is the download name of every prediction table
const OutputName = "predictions.csv"

// ErrNoTextColumn is returned when an uploaded table has no text column
var ErrNoTextColumn = errors.New("csv file has no text column")

// Soft error messages of the file endpoint
const (
	MsgNoTextColumn = "Csv file lacks of text column"
	MsgReadFailed   = "failed to read: "
	MsgNoUpload     = "File is not uploaded"
)

// LabelInput is the query of the single review endpoint
// Review is nil only when the key is absent, an empty review is classified
type LabelInput struct {
	Review *string `query:"review" validate:"required" example:"Great product, fast delivery"`
}

// Scored is one classified text
type Scored struct {
	Raw        string
	Clean      string
	Label      labels.Label
	Name       string
	Confidence float64
}

// Exception is the soft error payload of the file endpoint
type Exception struct {
	Exception string `json:"exception" example:"Csv file lacks of text column"`
}
