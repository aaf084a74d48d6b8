package mem

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// FeatureCache is a process-local TTL cache used when no redis instance is
// configured. Expired entries are removed lazily on read.
type FeatureCache struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewFeatureCache() *FeatureCache {
	return &FeatureCache{
		data: make(map[string]entry),
	}
}

func (s *FeatureCache) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, key) // cleanup expired
		return nil, false
	}
	return e.value, true
}

func (s *FeatureCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *FeatureCache) Del(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}
