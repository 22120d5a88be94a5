package pg

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"reviewsense/internal/platform/logger"
)

// Tracer logs statements through zerolog, it implements pgx.QueryTracer
// Argument values are never logged since they carry review text
type Tracer struct {
	log  logger.Logger
	all  bool
	slow time.Duration
	now  func() time.Time
}

var _ pgx.QueryTracer = (*Tracer)(nil)

type startKey struct{}

type started struct {
	sql  string
	args int
	at   time.Time
}

// NewTracer logs every statement when all is set, otherwise only slow or failed ones
func NewTracer(log logger.Logger, all bool, slow time.Duration) *Tracer {
	return &Tracer{
		log:  log.With().Str("component", "pg").Logger(),
		all:  all,
		slow: slow,
		now:  time.Now,
	}
}

// TraceQueryStart stashes the statement on ctx for TraceQueryEnd
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, startKey{}, started{sql: d.SQL, args: len(d.Args), at: t.now()})
}

// TraceQueryEnd logs the finished statement
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(startKey{}).(started)
	if !ok {
		return
	}
	took := t.now().Sub(st.at)
	slow := t.slow > 0 && took >= t.slow
	failed := d.Err != nil && !errors.Is(d.Err, pgx.ErrNoRows)

	var ev *zerolog.Event
	switch {
	case failed, slow:
		ev = t.log.Warn()
	case t.all:
		ev = t.log.Info()
	default:
		return
	}
	ev.Dur("took", took).
		Bool("slow", slow).
		Str("sql", compact(st.sql)).
		Int("args", st.args).
		Int64("rows", d.CommandTag.RowsAffected()).
		Err(d.Err).
		Msg("pg query")
}

// compact folds whitespace runs so multi line SQL logs on one line
func compact(sql string) string { return strings.Join(strings.Fields(sql), " ") }
