package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps values in process memory and expires them after the session TTL.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a store whose entries live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, 2*ttl)}
}

// Get returns a copy of the stored value.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	val, found := m.cache.Get(key)
	if !found {
		return nil, ErrNotFound
	}
	b, ok := val.([]byte)
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

// Set stores a copy of value, resetting its expiry.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.cache.SetDefault(key, append([]byte(nil), value...))
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

// Len returns the number of unexpired entries.
func (m *MemoryStore) Len() int {
	return m.cache.ItemCount()
}
