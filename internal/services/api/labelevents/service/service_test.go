package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewsense/internal/platform/testkit"
	"reviewsense/internal/services/api/labelevents/domain"
	"reviewsense/internal/services/api/labelevents/repo"
)

type fakeRepo struct {
	inserted [][]domain.Event
	since    time.Time
	rows     []repo.RowSummary
	scripts  map[string]uint64
	err      error
}

func (f *fakeRepo) EnsureSchema(context.Context) error { return f.err }

func (f *fakeRepo) Insert(_ context.Context, ev []domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, ev)
	return nil
}

func (f *fakeRepo) Summary(_ context.Context, since time.Time) ([]repo.RowSummary, error) {
	f.since = since
	return f.rows, f.err
}

func (f *fakeRepo) Scripts(context.Context, time.Time) (map[string]uint64, error) {
	return f.scripts, f.err
}

func TestNew_NilRepoPanics(t *testing.T) {
	testkit.MustPanic(t, func() { New(nil) })
}

func TestRecord_BatchesAndSkipsEmpty(t *testing.T) {
	r := &fakeRepo{}
	s := New(r)

	require.NoError(t, s.Record(context.Background(), nil))
	assert.Empty(t, r.inserted)

	ev := []domain.Event{{Source: "single"}, {Source: "single"}}
	require.NoError(t, s.Record(context.Background(), ev))
	require.Len(t, r.inserted, 1)
	assert.Len(t, r.inserted[0], 2)
}

func TestRecord_RepoError(t *testing.T) {
	s := New(&fakeRepo{err: errors.New("ch down")})
	require.EqualError(t, s.Record(context.Background(), []domain.Event{{}}), "ch down")
}

func TestSummary_WindowAndNames(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	r := &fakeRepo{rows: []repo.RowSummary{
		{Label: 0, Count: 3, MeanConfidence: 0.5},
		{Label: 1, Count: 7, MeanConfidence: 0.9},
	}, scripts: map[string]uint64{"Cyrillic": 10}}
	s := New(r)
	s.now = func() time.Time { return now }

	got, err := s.Summary(context.Background(), domain.SummaryInput{Hours: 6})
	require.NoError(t, err)

	assert.Equal(t, now.Add(-6*time.Hour), r.since)
	assert.Equal(t, 6, got.Hours)
	assert.Equal(t, "2025-12-01T06:00:00Z", got.Since)
	assert.Equal(t, uint64(10), got.Total)
	require.Len(t, got.Labels, 2)
	assert.Equal(t, "Neutral", got.Labels[0].Label)
	assert.Equal(t, "Positive", got.Labels[1].Label)
	assert.Equal(t, map[string]uint64{"Cyrillic": 10}, got.Scripts)
}

func TestSummary_DefaultWindow(t *testing.T) {
	s := New(&fakeRepo{})
	got, err := s.Summary(context.Background(), domain.SummaryInput{})
	require.NoError(t, err)
	assert.Equal(t, 24, got.Hours)
	assert.NotNil(t, got.Labels)
	assert.NotNil(t, got.Scripts)
}
