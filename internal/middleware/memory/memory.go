// Package memory is an in-process implementation of the cache storage.
package memory

import (
	"context"
	"sync"
	"time"
)

type item struct {
	content   []byte
	expiresAt time.Time
}

// Storage is a map with expiring items. Expired items are dropped on access.
type Storage struct {
	mu    sync.Mutex
	items map[string]item
	now   func() time.Time
}

// NewStorage creates new instance of Storage.
func NewStorage() *Storage {
	return &Storage{
		items: make(map[string]item),
		now:   time.Now,
	}
}

// Get ...
func (s *Storage) Get(_ context.Context, key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[key]
	if !ok {
		return nil
	}

	if !s.now().Before(v.expiresAt) {
		delete(s.items, key)
		return nil
	}

	return v.content
}

// Set ...
func (s *Storage) Set(_ context.Context, key string, content []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, v := range s.items {
		if !now.Before(v.expiresAt) {
			delete(s.items, k)
		}
	}

	s.items[key] = item{
		content:   content,
		expiresAt: now.Add(ttl),
	}
}
