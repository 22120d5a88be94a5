// Package labelstest provides in-memory model collaborators for tests
package labelstest

import (
	"context"
	"strings"
	"sync"

	"reviewsense/internal/core/batcher"
	"reviewsense/internal/core/labels"
	"reviewsense/internal/services/api/labels/domain"
)

// Tokenizer maps each whitespace separated word to its rune length
type Tokenizer struct{}

// Encode implements batcher.Tokenizer
func (Tokenizer) Encode(text string) []int64 {
	f := strings.Fields(text)
	out := make([]int64, len(f))
	for i, w := range f {
		out[i] = int64(len([]rune(w))) + 1000
	}
	return out
}

// Specials implements batcher.Tokenizer
func (Tokenizer) Specials() batcher.Specials { return batcher.Specials{CLS: 101, SEP: 102, PAD: 0} }

// Batcher returns a batcher over Tokenizer with a short row length
func Batcher() *batcher.Batcher {
	b := batcher.New(Tokenizer{})
	b.MaxLength = 32
	return b
}

// Classifier scores every row with Logits, or with Fn when set
type Classifier struct {
	mu     sync.Mutex
	Fn     func(row int, ids []int64) []float32
	Logits []float32
	Err    error
	Calls  int
	Rows   int
}

// Classify implements the labels Classifier port
func (c *Classifier) Classify(_ context.Context, b batcher.Batch) ([][]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	c.Rows += b.Len()
	if c.Err != nil {
		return nil, c.Err
	}
	out := make([][]float32, b.Len())
	for i, ids := range b.InputIDs {
		switch {
		case c.Fn != nil:
			out[i] = c.Fn(i, ids)
		case c.Logits != nil:
			out[i] = append([]float32(nil), c.Logits...)
		default:
			out[i] = LogitsFor(labels.Neutral)
		}
	}
	return out, nil
}

// LogitsFor returns logits whose argmax is l
func LogitsFor(l labels.Label) []float32 {
	out := make([]float32, labels.Count)
	out[l] = 2
	return out
}

// Output keeps the last written table in memory
type Output struct {
	mu     sync.Mutex
	Data   []byte
	Writes int
	Err    error
}

// Write implements the labels Output port
func (o *Output) Write(data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.Data = append([]byte(nil), data...)
	o.Writes++
	return nil
}

// Sink records emitted rows per source
type Sink struct {
	mu   sync.Mutex
	Rows map[domain.Source][]domain.Scored
}

// Emit implements the labels EventSink port
func (s *Sink) Emit(_ context.Context, source domain.Source, rows []domain.Scored) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Rows == nil {
		s.Rows = map[domain.Source][]domain.Scored{}
	}
	s.Rows[source] = append(s.Rows[source], rows...)
}
