package csvio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"
)

// FileWriter persists the latest prediction table to a fixed path
// Writes are serialized and replace the file atomically so readers never see a partial table
type FileWriter struct {
	mu   sync.Mutex
	path string
}

// NewFileWriter returns a writer targeting path
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Path returns the destination path
func (w *FileWriter) Path() string { return w.path }

// Write replaces the destination with data
func (w *FileWriter) Write(data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := renameio.WriteFile(w.path, data, 0o644); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}
