package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pillpal/internal/ports/kv"
)

var ErrEmptyKey = errors.New("key required")

type kvStore struct {
	mu    sync.RWMutex
	byKey map[string]string
}

// NewKV crea un kv en memoria (modo dev / tests). Se pierde al cerrar el proceso.
func NewKV() kv.Store {
	return &kvStore{byKey: make(map[string]string)}
}

func (s *kvStore) Get(_ context.Context, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, ErrEmptyKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byKey[key]
	return v, ok, nil
}

func (s *kvStore) Set(_ context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byKey[key] = value
	return nil
}

func (s *kvStore) Close() error { return nil }
