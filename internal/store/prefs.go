package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Backend selects where preferences are persisted.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendJSON   Backend = "json"
	BackendMemory Backend = "memory"
)

func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendSQLite:
		return BackendSQLite, nil
	case BackendJSON:
		return BackendJSON, nil
	case BackendMemory:
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown store backend: %q (expected sqlite|json|memory)", s)
	}
}

// ErrClosed is returned by a KV used after Close.
var ErrClosed = errors.New("store: closed")

// KV is durable key/value storage for user preferences.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Store is a state directory on disk.
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: missing dir")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Open returns the preference store for a backend.
func (s Store) Open(ctx context.Context, backend Backend) (KV, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendJSON:
		if err := s.Ensure(); err != nil {
			return nil, err
		}
		return &JSONFile{Path: s.path(prefsJSONFileName)}, nil
	case "", BackendSQLite:
		db, err := s.openSQLitePrefs(ctx)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", backend)
	}
}

// Memory is a process-local KV. Nothing survives the process.
type Memory struct {
	mu     sync.Mutex
	m      map[string]string
	closed bool
}

func NewMemory() *Memory { return &Memory{m: map[string]string{}} }

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.m[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.m[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.m, key)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
