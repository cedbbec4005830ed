package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FileStore keeps each key as a JSON file under a data directory.
type FileStore struct {
	mu     sync.Mutex
	dir    string
	logger *zap.Logger
}

// NewFileStore creates the data directory if needed and returns a store over it.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (fs *FileStore) path(key string) string {
	// Keys contain ':' separators; keep filenames portable.
	name := strings.ReplaceAll(key, ":", "_") + ".json"
	return filepath.Join(fs.dir, name)
}

// Load reads the value under key into dst. A missing or unparsable file
// leaves dst untouched.
func (fs *FileStore) Load(ctx context.Context, key string, into interface{}) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	decodeValue(data, into, fs.logger, key)
	return nil
}

// Save replaces the value under key.
func (fs *FileStore) Save(ctx context.Context, key string, value interface{}) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.path(key), data, 0o644)
}
