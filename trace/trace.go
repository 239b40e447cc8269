// Package trace captures per-call diagnostic snapshots of a kernel
// invocation to a zstd-compressed file, off the search hot path, for
// post-hoc debugging of allocation decisions.
package trace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Snapshot is one recorded kernel call.
type Snapshot struct {
	Depth              int       `json:"depth"`
	ParentN            int64     `json:"parent_n"`
	NumToProcess       int       `json:"num_to_process"`
	Scores             []float64 `json:"scores"`
	ChildVisitCounts   []int16   `json:"child_visit_counts"`
	CPUCTMultiplier    float64   `json:"cpuct_multiplier"`
	NumVisitsRequested int       `json:"num_visits_requested"`
}

// Writer appends Snapshots to a zstd-compressed newline-delimited JSON
// file. Safe for concurrent use by multiple worker goroutines.
type Writer struct {
	mu      sync.Mutex
	f       *os.File
	encoder *zstd.Encoder
}

// NewWriter opens (creating or truncating) a trace file at path.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace: creating %s: %w", path, err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("trace: creating zstd encoder: %w", err)
	}
	return &Writer{f: f, encoder: enc}, nil
}

// Record appends one snapshot as a newline-terminated JSON record.
func (w *Writer) Record(s Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("trace: encoding snapshot: %w", err)
	}
	data = append(data, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.encoder.Write(data); err != nil {
		return fmt.Errorf("trace: writing snapshot: %w", err)
	}
	return nil
}

// Close flushes the zstd stream and closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.encoder.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("trace: closing zstd encoder: %w", err)
	}
	return w.f.Close()
}

// ReadAll decompresses a trace file and decodes every recorded snapshot, for
// use by offline analysis tooling.
func ReadAll(path string) ([]Snapshot, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trace: reading %s: %w", path, err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("trace: creating zstd decoder: %w", err)
	}
	defer decoder.Close()

	raw, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("trace: decompressing %s: %w", path, err)
	}

	var snapshots []Snapshot
	decoderJSON := json.NewDecoder(bytes.NewReader(raw))
	for decoderJSON.More() {
		var s Snapshot
		if err := decoderJSON.Decode(&s); err != nil {
			return nil, fmt.Errorf("trace: decoding snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}
