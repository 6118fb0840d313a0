package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

const prefsJSONFileName = "prefs.json"

// JSONFile keeps preferences in a small JSON object on disk.
//
// It is best effort: a missing or corrupted file reads as empty, and writes
// go through a temp file + rename so a crash never leaves a torn file.
type JSONFile struct {
	Path string

	mu     sync.Mutex
	closed bool
}

type prefsFile struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

func (f *JSONFile) load() (prefsFile, error) {
	pf := prefsFile{Version: 1, Values: map[string]string{}}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return pf, nil
		}
		return pf, err
	}
	if err := json.Unmarshal(b, &pf); err != nil {
		// Treat a corrupted file as missing.
		return prefsFile{Version: 1, Values: map[string]string{}}, nil
	}
	if pf.Values == nil {
		pf.Values = map[string]string{}
	}
	if pf.Version == 0 {
		pf.Version = 1
	}
	return pf, nil
}

func (f *JSONFile) save(pf prefsFile) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

func (f *JSONFile) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}
	pf, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := pf.Values[key]
	return v, ok, nil
}

func (f *JSONFile) Set(ctx context.Context, key, value string) error {
	return f.update(ctx, func(pf *prefsFile) { pf.Values[key] = value })
}

func (f *JSONFile) Delete(ctx context.Context, key string) error {
	return f.update(ctx, func(pf *prefsFile) { delete(pf.Values, key) })
}

func (f *JSONFile) update(ctx context.Context, fn func(*prefsFile)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	pf, err := f.load()
	if err != nil {
		return err
	}
	fn(&pf)
	return f.save(pf)
}

func (f *JSONFile) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}
