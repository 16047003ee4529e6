package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Emitter receives the generated artifacts, keyed by a deterministic name
// derived from the page's safe name. The production emitter writes files;
// tests capture artifacts in memory.
type Emitter interface {
	Emit(name string, content []byte) error
}

// DirEmitter writes each artifact as a file under Dir.
type DirEmitter struct {
	Dir string
}

func (e *DirEmitter) Emit(name string, content []byte) error {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", e.Dir, err)
	}
	path := filepath.Join(e.Dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	return nil
}

// MapEmitter collects artifacts in memory.
type MapEmitter struct {
	mu        sync.Mutex
	artifacts map[string][]byte
}

func (e *MapEmitter) Emit(name string, content []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.artifacts == nil {
		e.artifacts = make(map[string][]byte)
	}
	buf := make([]byte, len(content))
	copy(buf, content)
	e.artifacts[name] = buf
	return nil
}

// Artifact returns the named artifact, if emitted.
func (e *MapEmitter) Artifact(name string) ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.artifacts[name]
	return b, ok
}

// Names returns the emitted artifact names, sorted.
func (e *MapEmitter) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.artifacts))
	for name := range e.artifacts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
