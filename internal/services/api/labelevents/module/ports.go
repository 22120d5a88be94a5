package module

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"reviewsense/internal/core/langhint"
	"reviewsense/internal/platform/logger"
	pnet "reviewsense/internal/platform/net"
	evdom "reviewsense/internal/services/api/labelevents/domain"
	evsvc "reviewsense/internal/services/api/labelevents/service"
	labelsdom "reviewsense/internal/services/api/labels/domain"
)

// sinkPort turns classified rows into label events
// it implements the labels EventSink port and never reports failures to the caller
type sinkPort struct {
	svc     evsvc.Service
	timeout time.Duration
	now     func() time.Time
}

// Emit implements labelsdom.EventSink
func (p sinkPort) Emit(ctx context.Context, source labelsdom.Source, rows []labelsdom.Scored) {
	if len(rows) == 0 {
		return
	}
	reqID := pnet.RequestID(ctx)
	at := p.now().UTC()
	events := make([]evdom.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, evdom.Event{
			ID:         uuid.New(),
			RequestID:  reqID,
			Source:     string(source),
			Label:      uint8(r.Label),
			LabelName:  r.Label.String(),
			Confidence: r.Confidence,
			TextLen:    uint32(utf8.RuneCountInString(r.Clean)),
			Script:     langhint.Script(r.Clean),
			At:         at,
		})
	}

	// the insert outlives a client that hangs up mid request
	wctx := context.WithoutCancel(ctx)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(wctx, p.timeout)
		defer cancel()
	}
	if err := p.svc.Record(wctx, events); err != nil {
		logger.C(ctx).Warn().Err(err).Int("events", len(events)).Msg("label events dropped")
	}
}
