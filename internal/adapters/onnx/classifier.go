// Package onnx runs a sequence classification model through onnxruntime
package onnx

import (
	"context"
	"errors"
	"fmt"

	"reviewsense/internal/core/batcher"
	perr "reviewsense/internal/platform/errors"
	"reviewsense/internal/platform/logger"
)

// Config configures the runtime and the session pool
type Config struct {
	ModelPath    string
	LibraryPath  string
	PoolSize     int
	IntraThreads int
	InterThreads int
	SeqLen       int
	NumLabels    int
}

const (
	defaultPoolSize     = 1
	defaultIntraThreads = 1
	defaultInterThreads = 1
)

// slot is one reusable session with its bound tensors
type slot interface {
	inputIDs() []int64
	attentionMask() []int64
	run() error
	output() []float32
	destroy() error
}

// Classifier turns batches into logits using a fixed pool of sessions
type Classifier struct {
	seqLen    int
	numLabels int
	poolSize  int
	slots     chan slot
}

// Open initializes onnxruntime and fills the session pool
func Open(cfg Config) (*Classifier, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("onnx model path is empty")
	}
	if cfg.SeqLen <= 0 {
		return nil, fmt.Errorf("onnx seq len must be positive, got %d", cfg.SeqLen)
	}
	if cfg.NumLabels <= 0 {
		return nil, fmt.Errorf("onnx label count must be positive, got %d", cfg.NumLabels)
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = defaultPoolSize
	}
	if cfg.IntraThreads <= 0 {
		cfg.IntraThreads = defaultIntraThreads
	}
	if cfg.InterThreads <= 0 {
		cfg.InterThreads = defaultInterThreads
	}

	if err := initRuntime(cfg.LibraryPath); err != nil {
		return nil, err
	}

	outName, outDims, err := selectOutput(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx output selection: %w", err)
	}

	slots := make([]slot, 0, cfg.PoolSize)
	for i := 0; i < cfg.PoolSize; i++ {
		s, err := newSession(cfg, outName, outDims)
		if err != nil {
			for _, made := range slots {
				_ = made.destroy()
			}
			return nil, fmt.Errorf("create onnx session %d/%d: %w", i+1, cfg.PoolSize, err)
		}
		slots = append(slots, s)
	}

	logger.Named("onnx").Info().
		Str("model", cfg.ModelPath).
		Str("output", outName).
		Ints64("output_dims", outDims).
		Int("pool", cfg.PoolSize).
		Int("seq_len", cfg.SeqLen).
		Msg("classifier ready")

	return newClassifier(slots, cfg.SeqLen, cfg.NumLabels), nil
}

func newClassifier(slots []slot, seqLen, numLabels int) *Classifier {
	ch := make(chan slot, len(slots))
	for _, s := range slots {
		ch <- s
	}
	return &Classifier{
		seqLen:    seqLen,
		numLabels: numLabels,
		poolSize:  len(slots),
		slots:     ch,
	}
}

// PoolSize reports how many sessions serve requests concurrently
func (c *Classifier) PoolSize() int { return c.poolSize }

// NumLabels reports the logits width per row
func (c *Classifier) NumLabels() int { return c.numLabels }

// Classify runs every row of b and returns one logits slice per row in order
func (c *Classifier) Classify(ctx context.Context, b batcher.Batch) ([][]float32, error) {
	if len(b.InputIDs) != len(b.AttentionMask) {
		return nil, perr.InvalidArgf("batch has %d id rows and %d mask rows", len(b.InputIDs), len(b.AttentionMask))
	}
	out := make([][]float32, 0, len(b.InputIDs))
	for i := range b.InputIDs {
		logits, err := c.classifyRow(ctx, b.InputIDs[i], b.AttentionMask[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, logits)
	}
	return out, nil
}

func (c *Classifier) classifyRow(ctx context.Context, ids, mask []int64) ([]float32, error) {
	if len(ids) != c.seqLen || len(mask) != c.seqLen {
		return nil, perr.InvalidArgf("row length %d/%d does not match model length %d", len(ids), len(mask), c.seqLen)
	}

	var s slot
	select {
	case s = <-c.slots:
	case <-ctx.Done():
		return nil, perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "waiting for onnx session")
	}
	defer func() { c.slots <- s }()

	copy(s.inputIDs(), ids)
	copy(s.attentionMask(), mask)
	if err := s.run(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "onnx run")
	}
	return logitsRow(s.output(), c.numLabels)
}

// Close destroys every pooled session, waiting for in flight rows to finish
func (c *Classifier) Close() error {
	var errs []error
	for i := 0; i < c.poolSize; i++ {
		s := <-c.slots
		if err := s.destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// logitsRow copies the first row of raw model output
func logitsRow(raw []float32, numLabels int) ([]float32, error) {
	if len(raw) < numLabels {
		return nil, fmt.Errorf("onnx output has %d values, want at least %d", len(raw), numLabels)
	}
	out := make([]float32, numLabels)
	copy(out, raw[:numLabels])
	return out, nil
}
