// Package service contains review group workflows
package service

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"reviewsense/internal/adapters/csvio"
	"reviewsense/internal/core/labels"
	"reviewsense/internal/modkit/repokit"
	perr "reviewsense/internal/platform/errors"
	"reviewsense/internal/platform/logger"
	"reviewsense/internal/services/api/groups/domain"
	"reviewsense/internal/services/api/groups/repo"
	labelsdom "reviewsense/internal/services/api/labels/domain"
)

// Service defines the service contract for review groups
type Service interface {
	domain.ServicePort
	Migrate(ctx context.Context) error
}

// Svc implements the Service interface
type Svc struct {
	Repo    repo.Repo
	binder  repokit.Binder[repo.Repo]
	db      repokit.TxRunner
	predict domain.Predictor
	loc     labels.Locale
	now     func() time.Time
}

// New creates a new review groups service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], p domain.Predictor, loc labels.Locale) *Svc {
	if db == nil {
		panic("groups.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("groups.Service requires a non nil Repo binder")
	}
	if p == nil {
		panic("groups.Service requires a non nil Predictor")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, predict: p, loc: loc, now: time.Now}
}

// Migrate applies the review group schema
func (s *Svc) Migrate(ctx context.Context) error { return s.Repo.Migrate(ctx) }

// Upload classifies a CSV upload and stores it as a new group in one transaction
func (s *Svc) Upload(ctx context.Context, name string, body io.Reader) (domain.UploadResult, error) {
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		return domain.UploadResult{}, perr.WithField(perr.InvalidArgf("File is not a csv file"), "file")
	}
	t, err := csvio.Read(body)
	if err != nil {
		return domain.UploadResult{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "parse csv"), "file")
	}
	textIdx, ok := t.Column(labelsdom.ColumnText)
	if !ok {
		return domain.UploadResult{}, perr.WithField(perr.Validationf("csv file lacks a text column"), "file")
	}
	if t.Len() == 0 {
		return domain.UploadResult{}, perr.WithField(perr.Validationf("csv file has no reviews"), "file")
	}

	scored, err := s.predict.Predict(ctx, labelsdom.SourceGroup, t.Values(textIdx))
	if err != nil {
		return domain.UploadResult{}, err
	}

	srcIdx, hasSrc := t.ColumnFold("src")
	idIdx, hasID := t.ColumnFold("id")
	rows := make([]repo.RowReview, len(scored))
	for i, sc := range scored {
		rr := repo.RowReview{
			ID:         uuid.NewString(),
			Index:      int32(i),
			Text:       sc.Clean,
			Label:      int16(sc.Label),
			Confidence: sc.Confidence,
		}
		if hasSrc {
			rr.Src = t.Cell(i, srcIdx)
		}
		if hasID {
			if n, err := strconv.ParseInt(strings.TrimSpace(t.Cell(i, idIdx)), 10, 32); err == nil {
				rr.Index = int32(n)
			}
		}
		rows[i] = rr
	}

	g := repo.RowGroup{ID: uuid.NewString(), Name: name, CreatedAt: s.now().UTC()}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.InsertGroup(ctx, g); err != nil {
			return err
		}
		return r.InsertReviews(ctx, g.ID, rows)
	})
	if err != nil {
		return domain.UploadResult{}, err
	}

	logger.C(ctx).Info().Str("group_id", g.ID).Str("name", name).Int("reviews", len(rows)).Msg("review group stored")
	return domain.UploadResult{ID: g.ID}, nil
}

// List returns every group newest first
func (s *Svc) List(ctx context.Context) ([]domain.Group, error) {
	rows, err := s.Repo.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Group, 0, len(rows))
	for _, g := range rows {
		out = append(out, domain.Group{
			ID:          g.ID,
			Name:        g.Name,
			Date:        g.CreatedAt.UTC().Format(time.RFC3339),
			ReviewCount: g.ReviewCount,
		})
	}
	return out, nil
}

// Reviews returns reviews of one group, unknown groups are not found
func (s *Svc) Reviews(ctx context.Context, groupID string, in domain.ReviewsInput) ([]domain.Review, error) {
	id, err := s.mustGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.Reviews(ctx, id, in.Count)
	if err != nil {
		return nil, err
	}
	return s.reviews(rows), nil
}

// ByTitle returns reviews whose group name contains the title
func (s *Svc) ByTitle(ctx context.Context, in domain.ByTitleInput) ([]domain.Review, error) {
	rows, err := s.Repo.ReviewsByTitle(ctx, strings.TrimSpace(in.Title), in.Count)
	if err != nil {
		return nil, err
	}
	return s.reviews(rows), nil
}

// Stats computes the label mix of one group
func (s *Svc) Stats(ctx context.Context, groupID string) (domain.Stats, error) {
	id, err := s.mustGroup(ctx, groupID)
	if err != nil {
		return domain.Stats{}, err
	}
	counts, err := s.Repo.LabelCounts(ctx, id)
	if err != nil {
		return domain.Stats{}, err
	}

	out := domain.Stats{
		LabelCounts:          make(map[string]int, labels.Count),
		PositivePercentBySrc: map[string]float64{},
	}
	for _, l := range labels.All() {
		out.LabelCounts[l.Name(s.loc)] = 0
	}

	type tally struct{ total, positive int }
	bySrc := map[string]*tally{}
	positive := 0
	for _, c := range counts {
		l := labels.Label(c.Label)
		out.ReviewCount += c.N
		out.LabelCounts[l.Name(s.loc)] += c.N
		tl, ok := bySrc[c.Src]
		if !ok {
			tl = &tally{}
			bySrc[c.Src] = tl
		}
		tl.total += c.N
		if l == labels.Positive {
			positive += c.N
			tl.positive += c.N
		}
	}
	out.PositivePercent = percent(positive, out.ReviewCount)
	for src, tl := range bySrc {
		out.PositivePercentBySrc[src] = percent(tl.positive, tl.total)
	}
	return out, nil
}

// Export renders a group as CSV with Id,Text,Label,Src,Confidence columns
func (s *Svc) Export(ctx context.Context, groupID string) ([]byte, error) {
	id, err := s.mustGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.Reviews(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	t := &csvio.Table{Header: []string{"Id", "Text", "Label", "Src", "Confidence"}}
	for _, r := range s.reviews(rows) {
		t.Rows = append(t.Rows, []string{r.ID, r.Text, r.Label, r.Src, csvio.FormatConfidence(r.Confidence)})
	}
	return t.Encode()
}

// Summary computes the positive share over every stored review
func (s *Svc) Summary(ctx context.Context) (domain.Summary, error) {
	total, positive, err := s.Repo.Totals(ctx, int16(labels.Positive))
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summary{ReviewCount: total, PositivePercent: percent(positive, total)}, nil
}

// mustGroup validates the id and checks the group exists
func (s *Svc) mustGroup(ctx context.Context, groupID string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(groupID))
	if err != nil {
		return "", perr.WithField(perr.InvalidArgf("invalid group id %q", groupID), "id")
	}
	ok, err := s.Repo.GroupExists(ctx, id.String())
	if err != nil {
		return "", err
	}
	if !ok {
		return "", perr.NotFoundf("group %s not found", id)
	}
	return id.String(), nil
}

func (s *Svc) reviews(rows []repo.RowReview) []domain.Review {
	out := make([]domain.Review, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Review{
			ID:         r.ID,
			Index:      int(r.Index),
			Text:       r.Text,
			Src:        r.Src,
			Label:      labels.Label(r.Label).Name(s.loc),
			Confidence: r.Confidence,
		})
	}
	return out
}

// percent rounds to two decimals, an empty set is zero
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(int(float64(part)*10000/float64(total)+0.5)) / 100
}

