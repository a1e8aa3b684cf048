// Package storage abstracts where build artifacts land. The build pipeline
// writes pages and sitemaps through a Sink so tests can capture output
// in memory and assert on exact bytes.
package storage

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/disasterrecoveryau/sitegen/internal/errors"
)

// Sink receives the artifacts of one build. Paths are slash-separated and
// relative to the content root.
type Sink interface {
	// Write stores one artifact, creating parent directories as needed.
	Write(path string, data []byte) error

	// Close releases the sink after the last write.
	Close() error
}

// FSSink writes artifacts under a root directory on the local filesystem.
type FSSink struct {
	Root string
}

// NewFSSink creates the root directory and returns a sink writing under it.
func NewFSSink(root string) (*FSSink, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.SinkWrite(root, err)
	}
	return &FSSink{Root: root}, nil
}

func (s *FSSink) Write(path string, data []byte) error {
	full := filepath.Join(s.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.SinkWrite(path, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return errors.SinkWrite(path, err)
	}
	return nil
}

func (s *FSSink) Close() error { return nil }

// MemSink captures writes in memory for tests and dry runs. It records the
// write call sequence so tests can assert ordering as well as content.
type MemSink struct {
	mu      sync.Mutex
	objects map[string][]byte
	calls   []string

	// FailOn, when non-empty, makes writes to that path fail. Lets tests
	// exercise the all-or-nothing error path.
	FailOn string
}

func NewMemSink() *MemSink {
	return &MemSink{objects: make(map[string][]byte)}
}

func (s *MemSink) Write(path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailOn != "" && path == s.FailOn {
		return errors.SinkWrite(path, os.ErrPermission)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[path] = buf
	s.calls = append(s.calls, path)
	return nil
}

// Get returns the stored bytes for path.
func (s *MemSink) Get(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	return data, ok
}

// Paths returns every stored path, sorted.
func (s *MemSink) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for p := range s.objects {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Calls returns the write call sequence in order.
func (s *MemSink) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *MemSink) Close() error { return nil }

// Len is the number of stored artifacts.
func (s *MemSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
