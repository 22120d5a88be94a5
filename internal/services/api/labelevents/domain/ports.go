package domain

import "context"

// ServicePort defines the service contract for label events
type ServicePort interface {
	Record(ctx context.Context, events []Event) error
	Summary(ctx context.Context, in SummaryInput) (Summary, error)
}
