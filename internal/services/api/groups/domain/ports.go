package domain

import (
	"context"
	"io"

	labelsdom "reviewsense/internal/services/api/labels/domain"
)

// Predictor classifies texts in input order
type Predictor interface {
	Predict(ctx context.Context, source labelsdom.Source, texts []string) ([]labelsdom.Scored, error)
}

// ServicePort defines the service contract for review groups
type ServicePort interface {
	Upload(ctx context.Context, name string, body io.Reader) (UploadResult, error)
	List(ctx context.Context) ([]Group, error)
	Reviews(ctx context.Context, groupID string, in ReviewsInput) ([]Review, error)
	Stats(ctx context.Context, groupID string) (Stats, error)
	Export(ctx context.Context, groupID string) ([]byte, error)
	ByTitle(ctx context.Context, in ByTitleInput) ([]Review, error)
	Summary(ctx context.Context) (Summary, error)
}
