// Package service contains label event workflows
package service

import (
	"context"
	"time"

	"reviewsense/internal/core/labels"
	"reviewsense/internal/platform/logger"
	"reviewsense/internal/services/api/labelevents/domain"
	"reviewsense/internal/services/api/labelevents/repo"
)

// Service defines the service contract for label events
type Service interface {
	domain.ServicePort
	EnsureSchema(ctx context.Context) error
}

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo
	now  func() time.Time
}

// New creates a label events service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("labelevents.Service requires a non nil Repo")
	}
	return &Svc{Repo: r, now: time.Now}
}

// EnsureSchema creates the storage the service writes to
func (s *Svc) EnsureSchema(ctx context.Context) error {
	return s.Repo.EnsureSchema(ctx)
}

// Record stores events, an empty slice is a no op
func (s *Svc) Record(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	if err := s.Repo.Insert(ctx, events); err != nil {
		return err
	}
	logger.C(ctx).Debug().Int("events", len(events)).Msg("label events recorded")
	return nil
}

// Summary aggregates events per label over the last in.Hours hours
func (s *Svc) Summary(ctx context.Context, in domain.SummaryInput) (domain.Summary, error) {
	hours := in.Hours
	if hours <= 0 {
		hours = 24
	}
	since := s.now().UTC().Add(-time.Duration(hours) * time.Hour)

	rows, err := s.Repo.Summary(ctx, since)
	if err != nil {
		return domain.Summary{}, err
	}

	scripts, err := s.Repo.Scripts(ctx, since)
	if err != nil {
		return domain.Summary{}, err
	}
	if scripts == nil {
		scripts = map[string]uint64{}
	}

	out := domain.Summary{
		Hours:   hours,
		Since:   since.Format(time.RFC3339),
		Labels:  make([]domain.LabelStat, 0, len(rows)),
		Scripts: scripts,
	}
	for _, r := range rows {
		out.Total += r.Count
		out.Labels = append(out.Labels, domain.LabelStat{
			Label:          labels.Label(r.Label).String(),
			Count:          r.Count,
			MeanConfidence: r.MeanConfidence,
		})
	}
	return out, nil
}
