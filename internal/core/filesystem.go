// Package core provides shared abstractions used across the reqwise CLI,
// most notably the FileSystem interface that decouples manifest I/O from
// the operating system for testability.
package core

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
)

// File permission constants.
const (
	// PermOwnerRW is the default permission for files written by reqwise.
	PermOwnerRW fs.FileMode = 0644
)

// FileSystem abstracts file operations for testability.
type FileSystem interface {
	// ReadFile reads the entire content of the file at path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile writes data to the file at path, creating it if needed.
	WriteFile(ctx context.Context, path string, data []byte, perm fs.FileMode) error

	// Exists reports whether a regular file exists at path.
	Exists(ctx context.Context, path string) bool
}

// Marshaler abstracts serialization for injected encoding dependencies.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

// osFileSystem is the production FileSystem backed by the os package.
type osFileSystem struct{}

// NewOSFileSystem returns a FileSystem backed by the real filesystem.
func NewOSFileSystem() FileSystem {
	return &osFileSystem{}
}

func (osFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (osFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func (osFileSystem) Exists(_ context.Context, path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// MockFileSystem is an in-memory FileSystem for tests.
type MockFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte

	// ReadErr, when set, is returned by every ReadFile call.
	ReadErr error

	// WriteErr, when set, is returned by every WriteFile call.
	WriteErr error
}

// NewMockFileSystem returns an empty in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{files: make(map[string][]byte)}
}

// SetFile seeds the mock filesystem with content at path.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
}

func (m *MockFileSystem) ReadFile(_ context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return data, nil
}

func (m *MockFileSystem) WriteFile(_ context.Context, path string, data []byte, _ fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.files[path] = data
	return nil
}

func (m *MockFileSystem) Exists(_ context.Context, path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[path]
	return ok
}

// Paths returns the sorted list of file paths currently stored.
func (m *MockFileSystem) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Dump returns a readable listing of the mock filesystem, useful in
// test failure messages.
func (m *MockFileSystem) Dump() string {
	var sb strings.Builder
	for _, p := range m.Paths() {
		m.mu.RLock()
		data := m.files[p]
		m.mu.RUnlock()
		fmt.Fprintf(&sb, "%s (%d bytes)\n", p, len(data))
	}
	return sb.String()
}
