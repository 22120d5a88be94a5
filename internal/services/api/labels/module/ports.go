package module

import (
	"context"

	labelsdom "reviewsense/internal/services/api/labels/domain"
	labelssvc "reviewsense/internal/services/api/labels/service"
)

// Predictor is the port other modules use to classify texts
type Predictor interface {
	Predict(ctx context.Context, source labelsdom.Source, texts []string) ([]labelsdom.Scored, error)
}

// predictor publishes only Predict from the labels service
type predictor struct{ svc labelssvc.Service }

func (p predictor) Predict(ctx context.Context, source labelsdom.Source, texts []string) ([]labelsdom.Scored, error) {
	return p.svc.Predict(ctx, source, texts)
}
