package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one JSON file per document in a directory.
type FileStore struct {
	docStore
	dir string
}

type fileBlobs struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{docStore: docStore{b: fileBlobs{dir: dir}}, dir: dir}, nil
}

// Dir is the storage directory.
func (s *FileStore) Dir() string { return s.dir }

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

// fileName maps "flip7:game:current" to "game_current.json".
func fileName(key string) string {
	return strings.ReplaceAll(strings.TrimPrefix(key, keyPrefix), ":", "_") + ".json"
}

func (f fileBlobs) path(key string) string {
	return filepath.Join(f.dir, fileName(key))
}

func (f fileBlobs) get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// set writes through a temp file so a crash never leaves half a document.
func (f fileBlobs) set(_ context.Context, key string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, fileName(key)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

func (f fileBlobs) del(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
