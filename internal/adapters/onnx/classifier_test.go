package onnx

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"reviewsense/internal/core/batcher"
)

// fakeSlot scores a row by summing its ids into the label picked by the mask length
type fakeSlot struct {
	ids, mask []int64
	out       []float32
	runErr    error
	busy      *int32
	peak      *int32
	destroyed bool
}

func newFakeSlot(seqLen, numLabels int, busy, peak *int32) *fakeSlot {
	return &fakeSlot{
		ids:  make([]int64, seqLen),
		mask: make([]int64, seqLen),
		out:  make([]float32, numLabels),
		busy: busy,
		peak: peak,
	}
}

func (f *fakeSlot) inputIDs() []int64      { return f.ids }
func (f *fakeSlot) attentionMask() []int64 { return f.mask }
func (f *fakeSlot) output() []float32      { return f.out }
func (f *fakeSlot) destroy() error         { f.destroyed = true; return nil }

func (f *fakeSlot) run() error {
	if f.runErr != nil {
		return f.runErr
	}
	if f.busy != nil {
		n := atomic.AddInt32(f.busy, 1)
		for {
			p := atomic.LoadInt32(f.peak)
			if n <= p || atomic.CompareAndSwapInt32(f.peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		defer atomic.AddInt32(f.busy, -1)
	}
	n := 0
	for _, m := range f.mask {
		n += int(m)
	}
	for i := range f.out {
		f.out[i] = 0
	}
	f.out[n%len(f.out)] = 1
	return nil
}

func row(seqLen, n int) ([]int64, []int64) {
	ids := make([]int64, seqLen)
	mask := make([]int64, seqLen)
	for i := 0; i < n; i++ {
		ids[i] = int64(i + 1)
		mask[i] = 1
	}
	return ids, mask
}

func TestClassify_OrderAndShape(t *testing.T) {
	c := newClassifier([]slot{newFakeSlot(8, 3, nil, nil)}, 8, 3)
	var b batcher.Batch
	for _, n := range []int{2, 3, 4} {
		ids, mask := row(8, n)
		b.InputIDs = append(b.InputIDs, ids)
		b.AttentionMask = append(b.AttentionMask, mask)
	}
	out, err := c.Classify(context.Background(), b)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d rows", len(out))
	}
	for i, want := range []int{2, 0, 1} {
		if out[i][want] != 1 {
			t.Fatalf("row %d logits %v, want hot index %d", i, out[i], want)
		}
	}
}

func TestClassify_RowLengthMismatch(t *testing.T) {
	c := newClassifier([]slot{newFakeSlot(8, 3, nil, nil)}, 8, 3)
	ids, mask := row(4, 2)
	_, err := c.Classify(context.Background(), batcher.Batch{InputIDs: [][]int64{ids}, AttentionMask: [][]int64{mask}})
	if err == nil {
		t.Fatal("expected error for short row")
	}
}

func TestClassify_RunErrorReturnsSlot(t *testing.T) {
	s := newFakeSlot(4, 3, nil, nil)
	s.runErr = errors.New("kaput")
	c := newClassifier([]slot{s}, 4, 3)
	ids, mask := row(4, 1)
	b := batcher.Batch{InputIDs: [][]int64{ids}, AttentionMask: [][]int64{mask}}
	if _, err := c.Classify(context.Background(), b); err == nil {
		t.Fatal("expected run error")
	}
	if len(c.slots) != 1 {
		t.Fatalf("slot not returned to pool, pool has %d", len(c.slots))
	}
}

func TestClassify_ContextCancelledWhileWaiting(t *testing.T) {
	c := newClassifier([]slot{newFakeSlot(4, 3, nil, nil)}, 4, 3)
	held := <-c.slots
	defer func() { c.slots <- held }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ids, mask := row(4, 1)
	_, err := c.Classify(ctx, batcher.Batch{InputIDs: [][]int64{ids}, AttentionMask: [][]int64{mask}})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestClassify_PoolBoundsConcurrency(t *testing.T) {
	var busy, peak int32
	slots := []slot{newFakeSlot(4, 3, &busy, &peak), newFakeSlot(4, 3, &busy, &peak)}
	c := newClassifier(slots, 4, 3)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids, mask := row(4, i%4)
			if _, err := c.Classify(context.Background(), batcher.Batch{InputIDs: [][]int64{ids}, AttentionMask: [][]int64{mask}}); err != nil {
				t.Errorf("Classify: %v", err)
			}
		}(i)
	}
	wg.Wait()
	if p := atomic.LoadInt32(&peak); p > 2 {
		t.Fatalf("peak concurrency %d exceeds pool size 2", p)
	}
}

func TestClose_DestroysAll(t *testing.T) {
	a, b := newFakeSlot(4, 3, nil, nil), newFakeSlot(4, 3, nil, nil)
	c := newClassifier([]slot{a, b}, 4, 3)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.destroyed || !b.destroyed {
		t.Fatal("expected every slot destroyed")
	}
}

func TestPickOutput(t *testing.T) {
	tests := []struct {
		names   []string
		want    int
		wantErr bool
	}{
		{names: []string{"hidden", "LOGITS"}, want: 1},
		{names: []string{"output_0"}, want: 0},
		{names: []string{"a", "b"}, wantErr: true},
		{names: nil, wantErr: true},
	}
	for _, tc := range tests {
		got, err := pickOutput(tc.names)
		if (err != nil) != tc.wantErr {
			t.Fatalf("pickOutput(%v) err = %v", tc.names, err)
		}
		if err == nil && got != tc.want {
			t.Fatalf("pickOutput(%v) = %d, want %d", tc.names, got, tc.want)
		}
	}
}

func TestOutputShape(t *testing.T) {
	if got := outputShape(nil, 3); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("outputShape(nil) = %v", got)
	}
	if got := outputShape([]int64{-1, -1}, 3); got[0] != 1 || got[1] != 3 {
		t.Fatalf("outputShape(dynamic) = %v", got)
	}
}

func TestLogitsRow(t *testing.T) {
	if _, err := logitsRow([]float32{1}, 3); err == nil {
		t.Fatal("expected error for short output")
	}
	got, err := logitsRow([]float32{1, 2, 3, 4}, 3)
	if err != nil || len(got) != 3 || got[2] != 3 {
		t.Fatalf("logitsRow = %v, %v", got, err)
	}
}
