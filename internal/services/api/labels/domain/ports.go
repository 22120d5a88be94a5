package domain

import (
	"context"
	"io"

	"reviewsense/internal/core/batcher"
)

// Classifier runs the model forward pass and returns one logits row per batch row
type Classifier interface {
	Classify(ctx context.Context, b batcher.Batch) ([][]float32, error)
}

// Preparer turns cleaned texts into a model batch
type Preparer interface {
	PrepareBatch(texts []string) batcher.Batch
}

// Output persists the latest prediction table
type Output interface {
	Write(data []byte) error
}

// EventSink receives every classified row, failures stay inside the sink
type EventSink interface {
	Emit(ctx context.Context, source Source, rows []Scored)
}

// ServicePort defines the service contract for labels
type ServicePort interface {
	LabelOne(ctx context.Context, review string) ([]byte, error)
	LabelFile(ctx context.Context, r io.Reader) ([]byte, error)
	Predict(ctx context.Context, source Source, texts []string) ([]Scored, error)
}
