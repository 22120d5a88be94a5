// Package repo provides postgres access for review groups
package repo

import (
	"context"
	_ "embed"
	"strings"
	"time"

	"reviewsense/internal/modkit/repokit"
	perr "reviewsense/internal/platform/errors"
)

//go:embed schema.sql
var schema string

// Repo defines the repository contract for review groups
type Repo interface {
	Migrate(ctx context.Context) error
	InsertGroup(ctx context.Context, g RowGroup) error
	InsertReviews(ctx context.Context, groupID string, rows []RowReview) error
	ListGroups(ctx context.Context) ([]RowGroup, error)
	GroupExists(ctx context.Context, id string) (bool, error)
	Reviews(ctx context.Context, groupID string, limit int) ([]RowReview, error)
	ReviewsByTitle(ctx context.Context, title string, limit int) ([]RowReview, error)
	LabelCounts(ctx context.Context, groupID string) ([]RowCount, error)
	Totals(ctx context.Context, label int16) (total, matching int, err error)
}

// RowGroup represents a review_groups row with its review count
type RowGroup struct {
	ID          string
	Name        string
	CreatedAt   time.Time
	ReviewCount int
}

// RowReview represents a reviews row
type RowReview struct {
	ID         string
	Index      int32
	Text       string
	Src        string
	Label      int16
	Confidence float64
}

// RowCount is the number of reviews for one src and label
type RowCount struct {
	Src   string
	Label int16
	N     int
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Migrate applies the embedded schema, every statement is idempotent
func (r *queries) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return perr.FromPostgres(err, "migrate review groups")
		}
	}
	return nil
}

func (r *queries) InsertGroup(ctx context.Context, g RowGroup) error {
	const sql = `insert into review_groups (id, name, created_at) values ($1::uuid, $2, $3)`
	_, err := r.q.Exec(ctx, sql, g.ID, g.Name, g.CreatedAt)
	return perr.FromPostgres(err, "insert review group")
}

func (r *queries) InsertReviews(ctx context.Context, groupID string, rows []RowReview) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]string, len(rows))
	idx := make([]int32, len(rows))
	texts := make([]string, len(rows))
	srcs := make([]string, len(rows))
	lbls := make([]int16, len(rows))
	confs := make([]float64, len(rows))
	for i, rr := range rows {
		ids[i], idx[i], texts[i], srcs[i], lbls[i], confs[i] = rr.ID, rr.Index, rr.Text, rr.Src, rr.Label, rr.Confidence
	}
	const sql = `
insert into reviews (id, group_id, idx, text, src, label, confidence)
select u.id::uuid, $1::uuid, u.idx, u.text, u.src, u.label, u.confidence
from unnest($2::text[], $3::int4[], $4::text[], $5::text[], $6::int2[], $7::float8[])
  as u(id, idx, text, src, label, confidence)
`
	_, err := r.q.Exec(ctx, sql, groupID, ids, idx, texts, srcs, lbls, confs)
	return perr.FromPostgres(err, "insert reviews")
}

func (r *queries) ListGroups(ctx context.Context) ([]RowGroup, error) {
	const sql = `
select g.id::text, g.name, g.created_at, count(r.id)::int
from review_groups g
left join reviews r on r.group_id = g.id
group by g.id, g.name, g.created_at
order by g.created_at desc
`
	out, err := repokit.Many(ctx, r.q, scanGroup, sql)
	return out, perr.FromPostgres(err, "list review groups")
}

func scanGroup(row repokit.Row) (RowGroup, error) {
	var g RowGroup
	err := row.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.ReviewCount)
	return g, err
}

func (r *queries) GroupExists(ctx context.Context, id string) (bool, error) {
	ok, err := repokit.Scalar[bool](ctx, r.q, `select exists (select 1 from review_groups where id = $1::uuid)`, id)
	return ok, perr.FromPostgres(err, "lookup review group")
}

// Reviews returns a group's reviews in upload order, limit <= 0 means all
func (r *queries) Reviews(ctx context.Context, groupID string, limit int) ([]RowReview, error) {
	const sql = `
select id::text, idx, text, src, label, confidence
from reviews
where group_id = $1::uuid
order by idx, id
limit $2
`
	return r.scanReviews(ctx, sql, groupID, limitArg(limit))
}

// ReviewsByTitle matches group names case insensitively, newest group first
func (r *queries) ReviewsByTitle(ctx context.Context, title string, limit int) ([]RowReview, error) {
	const sql = `
select r.id::text, r.idx, r.text, r.src, r.label, r.confidence
from reviews r
join review_groups g on g.id = r.group_id
where strpos(lower(g.name), lower($1)) > 0
order by g.created_at desc, r.idx, r.id
limit $2
`
	return r.scanReviews(ctx, sql, title, limitArg(limit))
}

func (r *queries) scanReviews(ctx context.Context, sql string, args ...any) ([]RowReview, error) {
	out, err := repokit.Many(ctx, r.q, func(row repokit.Row) (RowReview, error) {
		var rr RowReview
		err := row.Scan(&rr.ID, &rr.Index, &rr.Text, &rr.Src, &rr.Label, &rr.Confidence)
		return rr, err
	}, sql, args...)
	return out, perr.FromPostgres(err, "query reviews")
}

func (r *queries) LabelCounts(ctx context.Context, groupID string) ([]RowCount, error) {
	const sql = `
select src, label, count(*)::int
from reviews
where group_id = $1::uuid
group by src, label
order by src, label
`
	out, err := repokit.Many(ctx, r.q, func(row repokit.Row) (RowCount, error) {
		var c RowCount
		err := row.Scan(&c.Src, &c.Label, &c.N)
		return c, err
	}, sql, groupID)
	return out, perr.FromPostgres(err, "count review labels")
}

// Totals counts every review and the ones carrying label
func (r *queries) Totals(ctx context.Context, label int16) (total, matching int, err error) {
	const sql = `select count(*)::int, (count(*) filter (where label = $1))::int from reviews`
	err = r.q.QueryRow(ctx, sql, label).Scan(&total, &matching)
	return total, matching, perr.FromPostgres(err, "count reviews")
}

// limitArg maps a non positive limit to NULL, which postgres reads as no limit
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
