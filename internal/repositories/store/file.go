package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileConfig holds configuration for the JSON file store
type FileConfig struct {
	// Dir is where <key>.json documents live
	Dir string
}

// fileStore implements Store with one JSON file per key
type fileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFile creates a file-backed store, creating Dir if needed
func NewFile(cfg *FileConfig) (*fileStore, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Dir == "" {
		return nil, errors.New("directory cannot be empty")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create data directory %s", cfg.Dir)
	}

	return &fileStore{dir: cfg.Dir}, nil
}

func (f *fileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Load reads and decodes <dir>/<key>.json
func (f *fileStore) Load(ctx context.Context, key string, dest any) error {
	if err := validKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	raw, err := os.ReadFile(f.path(key))
	f.mu.Unlock()
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return errors.Wrapf(err, "failed to read %s", key)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(ErrCorrupt, "%s: %v", key, err)
	}
	return nil
}

// Save writes the whole document to a temp file and renames it into place
func (f *fileStore) Save(ctx context.Context, key string, value any) error {
	if err := validKey(key); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file for %s", key)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to write %s", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to close %s", key)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to replace %s", key)
	}
	return nil
}
