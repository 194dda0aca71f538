package tokenstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileRepo persists session fields as a JSON document on disk. It is the
// storage used by headless clients that need the session to survive process
// restarts.
type FileRepo struct {
	mu   sync.Mutex
	path string
}

// NewFileRepo creates a file-backed token repository at the given path. The
// parent directory is created on the first write.
func NewFileRepo(path string) (*FileRepo, error) {
	if path == "" {
		return nil, errors.New("[NewFileRepo] path is required")
	}
	return &FileRepo{path: path}, nil
}

var _ Repo = (*FileRepo)(nil)

func (r *FileRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.load()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

func (r *FileRepo) SetAll(_ context.Context, entries map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.load()
	if err != nil {
		return err
	}
	for key, value := range entries {
		values[key] = value
	}
	return r.save(values)
}

func (r *FileRepo) DeleteAll(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.load()
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(values, key)
	}
	return r.save(values)
}

func (r *FileRepo) load() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileRepo.load] read")
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt session file is recoverable drift, not an error.
		return make(map[string]string), nil
	}
	return values, nil
}

func (r *FileRepo) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileRepo.save] mkdir")
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileRepo.save] marshal")
	}

	// Write-then-rename keeps the file whole if the process dies mid-write.
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileRepo.save] write")
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return errors.Wrap(err, "[FileRepo.save] rename")
	}
	return nil
}
