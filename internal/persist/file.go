package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/starford/ansuz/internal/apperr"
)

// File implements Provider backed by a single JSON document on disk.
type File struct {
	path string // absolute path to the slot file
}

// NewFile creates a File provider. The parent directory is created if it
// does not exist; the slot file itself is created on first Save.
func NewFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("persist: resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("persist: create dir: %w", err)
	}
	return &File{path: abs}, nil
}

// Path returns the absolute slot file path, for the external-change
// watcher.
func (f *File) Path() string {
	return f.path
}

// Load reads the slot file.
func (f *File) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("persist: read %s: %w", f.path, err)
	}
	return data, nil
}

// Save atomically replaces the slot file: tmp file, fsync, rename.
func (f *File) Save(data []byte) error {
	dir := filepath.Dir(f.path)

	tmp, err := os.CreateTemp(dir, ".ansuz-tmp-*")
	if err != nil {
		return fmt.Errorf("persist: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("persist: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("persist: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist: close temp: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("persist: rename: %w", err)
	}
	success = true
	return nil
}

// Close is a no-op for the file driver.
func (f *File) Close() error {
	return nil
}
