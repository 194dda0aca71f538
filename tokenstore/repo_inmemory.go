package tokenstore

import (
	"context"
	"sync"
)

// InMemoryRepo is an in-memory implementation of Repo. Suitable for tests
// and single-process applications that do not need the session to survive a
// restart.
type InMemoryRepo struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewInMemoryRepo creates a new in-memory token repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		values: make(map[string]string),
	}
}

var _ Repo = (*InMemoryRepo)(nil)

func (r *InMemoryRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[key], nil
}

func (r *InMemoryRepo) SetAll(_ context.Context, entries map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, value := range entries {
		r.values[key] = value
	}
	return nil
}

func (r *InMemoryRepo) DeleteAll(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		delete(r.values, key)
	}
	return nil
}
