// Package service contains the labeling workflows
package service

import (
	"context"
	"fmt"
	"io"

	"reviewsense/internal/adapters/csvio"
	"reviewsense/internal/core/labels"
	"reviewsense/internal/core/normalize"
	perr "reviewsense/internal/platform/errors"
	"reviewsense/internal/platform/logger"
	"reviewsense/internal/services/api/labels/domain"
)

// Service defines the service contract for labels
type Service interface{ domain.ServicePort }

// Options carries the collaborators of the labels service
type Options struct {
	Classifier domain.Classifier
	Batcher    domain.Preparer
	Output     domain.Output
	Events     domain.EventSink // optional
	Locale     labels.Locale
}

// Svc implements the Service interface
type Svc struct {
	clf    domain.Classifier
	batch  domain.Preparer
	out    domain.Output
	events domain.EventSink
	loc    labels.Locale
	norm   *normalize.Normalizer
}

// New creates a labels service
func New(opt Options) *Svc {
	if opt.Classifier == nil {
		panic("labels.Service requires a non nil Classifier")
	}
	if opt.Batcher == nil {
		panic("labels.Service requires a non nil Batcher")
	}
	if opt.Output == nil {
		panic("labels.Service requires a non nil Output")
	}
	loc := opt.Locale
	if loc == "" {
		loc = labels.LocaleEN
	}
	return &Svc{
		clf:    opt.Classifier,
		batch:  opt.Batcher,
		out:    opt.Output,
		events: opt.Events,
		loc:    loc,
		norm:   normalize.New(),
	}
}

// Predict cleans, batches and classifies texts, keeping input order
func (s *Svc) Predict(ctx context.Context, source domain.Source, texts []string) ([]domain.Scored, error) {
	if len(texts) == 0 {
		return []domain.Scored{}, nil
	}
	ctx = logger.WithRequest(ctx, "", string(source))

	clean := make([]string, len(texts))
	for i, t := range texts {
		clean[i] = s.norm.Normalize(t)
	}

	logits, err := s.clf.Classify(ctx, s.batch.PrepareBatch(clean))
	if err != nil {
		return nil, err
	}
	if len(logits) != len(texts) {
		return nil, perr.Internalf("classifier returned %d rows for %d texts", len(logits), len(texts))
	}
	preds, err := labels.DecideAll(logits)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "decode logits")
	}

	out := make([]domain.Scored, len(texts))
	for i, p := range preds {
		out[i] = domain.Scored{
			Raw:        texts[i],
			Clean:      clean[i],
			Label:      p.Label,
			Name:       p.Label.Name(s.loc),
			Confidence: p.Confidence,
		}
	}

	if s.events != nil {
		s.events.Emit(ctx, source, out)
	}
	logger.C(ctx).Debug().Int("texts", len(texts)).Msg("classified")
	return out, nil
}

// LabelOne classifies a single review and returns the one row prediction table
// the text column echoes the review as received
func (s *Svc) LabelOne(ctx context.Context, review string) ([]byte, error) {
	scored, err := s.Predict(ctx, domain.SourceSingle, []string{review})
	if err != nil {
		return nil, err
	}
	row := scored[0]
	t := &csvio.Table{
		Header: []string{domain.ColumnLabels, domain.ColumnText, domain.ColumnConfidence},
		Rows:   [][]string{{row.Name, review, csvio.FormatConfidence(row.Confidence)}},
	}
	return s.publish(ctx, t)
}

// LabelFile classifies every text cell of an uploaded table
// the text column is replaced by its cleaned form and labels and confidence are appended
func (s *Svc) LabelFile(ctx context.Context, r io.Reader) ([]byte, error) {
	t, err := csvio.Read(r)
	if err != nil {
		return nil, err
	}
	idx, ok := t.Column(domain.ColumnText)
	if !ok {
		return nil, domain.ErrNoTextColumn
	}

	scored, err := s.Predict(ctx, domain.SourceFile, t.Values(idx))
	if err != nil {
		return nil, err
	}

	cleaned := make([]string, len(scored))
	names := make([]string, len(scored))
	confs := make([]string, len(scored))
	for i, sc := range scored {
		cleaned[i] = sc.Clean
		names[i] = sc.Name
		confs[i] = csvio.FormatConfidence(sc.Confidence)
	}
	for _, col := range []struct {
		name string
		vals []string
	}{
		{domain.ColumnText, cleaned},
		{domain.ColumnLabels, names},
		{domain.ColumnConfidence, confs},
	} {
		if err := t.SetColumn(col.name, col.vals); err != nil {
			return nil, err
		}
	}
	return s.publish(ctx, t)
}

// publish encodes t, replaces the output file and returns the encoded bytes
func (s *Svc) publish(ctx context.Context, t *csvio.Table) ([]byte, error) {
	data, err := t.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode predictions: %w", err)
	}
	if err := s.out.Write(data); err != nil {
		return nil, err
	}
	logger.C(ctx).Debug().Int("rows", t.Len()).Int("bytes", len(data)).Msg("predictions written")
	return data, nil
}
