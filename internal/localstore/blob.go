// Package localstore keeps collections as JSON files in a local directory. It
// backs anonymous sessions and the preference collections.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileBlobStore stores each key as <dir>/<key>.json
type FileBlobStore struct {
	dir string

	mu sync.Mutex
}

func NewFileBlobStore(dir string) *FileBlobStore {
	return &FileBlobStore{dir: dir}
}

func (b *FileBlobStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(b.dir, key+".json"), nil
}

func (b *FileBlobStore) Get(key string, v any) (bool, error) {
	p, err := b.path(key)
	if err != nil {
		return false, err
	}

	b.mu.Lock()
	data, err := os.ReadFile(p)
	b.mu.Unlock()

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", p, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parsing %s: %w", p, err)
	}
	return true, nil
}

// Put writes v to a temp file next to the target and renames it into place, so a
// reader never sees a partial collection
func (b *FileBlobStore) Put(key string, v any) error {
	p, err := b.path(key)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", key, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(b.dir, 0700); err != nil {
		return fmt.Errorf("creating directory %s: %w", b.dir, err)
	}
	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("replacing %s: %w", p, err)
	}
	return nil
}
