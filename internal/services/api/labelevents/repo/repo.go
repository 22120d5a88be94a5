// Package repo provides clickhouse access for label events
package repo

import (
	"context"
	"time"

	"reviewsense/internal/platform/store"
	"reviewsense/internal/services/api/labelevents/domain"
)

// Table is the event table name
const Table = "label_events"

// Repo defines the repository contract for label events
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, events []domain.Event) error
	Summary(ctx context.Context, since time.Time) ([]RowSummary, error)
	Scripts(ctx context.Context, since time.Time) (map[string]uint64, error)
}

// RowSummary is one aggregated row
type RowSummary struct {
	Label          uint8
	Count          uint64
	MeanConfidence float64
}

// CH implements Repo on the clickhouse seam
type CH struct{ db store.Clickhouse }

// NewCH creates a clickhouse backed repo
func NewCH(db store.Clickhouse) *CH {
	if db == nil {
		panic("labelevents.Repo requires a non nil Clickhouse")
	}
	return &CH{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS ` + Table + ` (
	id          UUID,
	request_id  String,
	source      LowCardinality(String),
	label       UInt8,
	label_name  LowCardinality(String),
	confidence  Float64,
	text_len    UInt32,
	script      LowCardinality(String),
	at          DateTime64(3, 'UTC')
)
ENGINE = MergeTree
PARTITION BY toYYYYMM(at)
ORDER BY (at, source)
TTL toDateTime(at) + INTERVAL 90 DAY
`

// EnsureSchema creates the event table when missing
func (r *CH) EnsureSchema(ctx context.Context) error {
	return r.db.Exec(ctx, schema)
}

// Insert appends events as one batch
func (r *CH) Insert(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(events))
	for _, e := range events {
		rows = append(rows, []any{
			e.ID,
			e.RequestID,
			e.Source,
			e.Label,
			e.LabelName,
			e.Confidence,
			e.TextLen,
			e.Script,
			e.At,
		})
	}
	return r.db.Insert(ctx, Table, rows)
}

// Summary counts events per label since the given instant
func (r *CH) Summary(ctx context.Context, since time.Time) ([]RowSummary, error) {
	const sql = `
SELECT label, count() AS n, avg(confidence) AS mean_confidence
FROM ` + Table + `
WHERE at >= ?
GROUP BY label
ORDER BY label
`
	rows, err := r.db.Query(ctx, sql, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowSummary
	for rows.Next() {
		var rs RowSummary
		if err := rows.Scan(&rs.Label, &rs.Count, &rs.MeanConfidence); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// Scripts counts events per script since the given instant
func (r *CH) Scripts(ctx context.Context, since time.Time) (map[string]uint64, error) {
	const sql = `
SELECT script, count() AS n
FROM ` + Table + `
WHERE at >= ?
GROUP BY script
`
	rows, err := r.db.Query(ctx, sql, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]uint64{}
	for rows.Next() {
		var (
			script string
			n      uint64
		)
		if err := rows.Scan(&script, &n); err != nil {
			return nil, err
		}
		out[script] = n
	}
	return out, rows.Err()
}
