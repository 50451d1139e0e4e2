package memory

import (
	"context"
	"sync"

	"github.com/sagarc03/facerelay"
)

// Settings is a string key/value store held in memory.
type Settings struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSettings creates an empty settings store.
func NewSettings() *Settings {
	return &Settings{values: make(map[string]string)}
}

// Set stores value under key, replacing any previous value.
func (s *Settings) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	return nil
}

// Get returns the value under key. Returns facerelay.ErrNotFound if the key
// is absent.
func (s *Settings) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, found := s.values[key]
	if !found {
		return "", facerelay.ErrNotFound
	}
	return value, nil
}

// Clear drops every key.
func (s *Settings) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.values = make(map[string]string)
	s.mu.Unlock()

	return nil
}
