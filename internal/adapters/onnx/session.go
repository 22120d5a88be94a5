package onnx

import (
	"fmt"
	"os"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// env var read when no library path is configured
const sharedLibEnv = "ONNXRUNTIME_SHARED_LIBRARY_PATH"

var initMu sync.Mutex

// initRuntime points the binding at the shared library and initializes the process environment once
func initRuntime(libPath string) error {
	initMu.Lock()
	defer initMu.Unlock()

	if ort.IsInitialized() {
		return nil
	}
	libPath = strings.TrimSpace(libPath)
	if libPath == "" {
		libPath = strings.TrimSpace(os.Getenv(sharedLibEnv))
	}
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("initialize onnxruntime: %w", err)
	}
	return nil
}

// Shutdown releases the process wide onnxruntime environment
func Shutdown() error {
	initMu.Lock()
	defer initMu.Unlock()
	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}

// selectOutput prefers an output named logits, falling back to the only output
func selectOutput(modelPath string) (string, []int64, error) {
	_, outputs, err := ort.GetInputOutputInfoWithOptions(modelPath, nil)
	if err != nil {
		return "", nil, err
	}
	names := make([]string, 0, len(outputs))
	for _, o := range outputs {
		names = append(names, o.Name)
	}
	idx, err := pickOutput(names)
	if err != nil {
		return "", nil, err
	}
	return outputs[idx].Name, []int64(outputs[idx].Dimensions), nil
}

func pickOutput(names []string) (int, error) {
	if len(names) == 0 {
		return 0, fmt.Errorf("model declares no outputs")
	}
	for i, n := range names {
		if strings.EqualFold(n, "logits") {
			return i, nil
		}
	}
	if len(names) == 1 {
		return 0, nil
	}
	return 0, fmt.Errorf("multiple outputs without logits: %v", names)
}

// outputShape resolves dynamic dims for a 1 x numLabels classification head
func outputShape(dims []int64, numLabels int) ort.Shape {
	if len(dims) == 0 {
		return ort.NewShape(1, int64(numLabels))
	}
	shape := make([]int64, len(dims))
	for i, d := range dims {
		switch {
		case i == len(dims)-1:
			shape[i] = int64(numLabels)
		case d > 0:
			shape[i] = d
		default:
			shape[i] = 1
		}
	}
	return ort.Shape(shape)
}

// session binds an AdvancedSession to preallocated tensors
type session struct {
	s    *ort.AdvancedSession
	ids  *ort.Tensor[int64]
	mask *ort.Tensor[int64]
	out  *ort.Tensor[float32]
}

func newSession(cfg Config, outName string, outDims []int64) (*session, error) {
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	defer func() { _ = opts.Destroy() }()

	if err := opts.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		return nil, fmt.Errorf("set graph optimization: %w", err)
	}
	if err := opts.SetIntraOpNumThreads(cfg.IntraThreads); err != nil {
		return nil, fmt.Errorf("set intra threads: %w", err)
	}
	if err := opts.SetInterOpNumThreads(cfg.InterThreads); err != nil {
		return nil, fmt.Errorf("set inter threads: %w", err)
	}

	inShape := ort.NewShape(1, int64(cfg.SeqLen))
	ids, err := ort.NewEmptyTensor[int64](inShape)
	if err != nil {
		return nil, fmt.Errorf("allocate input_ids: %w", err)
	}
	mask, err := ort.NewEmptyTensor[int64](inShape)
	if err != nil {
		_ = ids.Destroy()
		return nil, fmt.Errorf("allocate attention_mask: %w", err)
	}
	out, err := ort.NewEmptyTensor[float32](outputShape(outDims, cfg.NumLabels))
	if err != nil {
		_ = ids.Destroy()
		_ = mask.Destroy()
		return nil, fmt.Errorf("allocate output: %w", err)
	}

	s, err := ort.NewAdvancedSession(
		cfg.ModelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{outName},
		[]ort.Value{ids, mask},
		[]ort.Value{out},
		opts,
	)
	if err != nil {
		_ = ids.Destroy()
		_ = mask.Destroy()
		_ = out.Destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}
	return &session{s: s, ids: ids, mask: mask, out: out}, nil
}

func (x *session) inputIDs() []int64      { return x.ids.GetData() }
func (x *session) attentionMask() []int64 { return x.mask.GetData() }
func (x *session) run() error             { return x.s.Run() }
func (x *session) output() []float32      { return x.out.GetData() }

func (x *session) destroy() error {
	var first error
	for _, d := range []interface{ Destroy() error }{x.s, x.ids, x.mask, x.out} {
		if err := d.Destroy(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
