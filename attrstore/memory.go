package attrstore

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/swhysc/tbond/bondattr"
)

// MemoryStore is the in-memory Store implementation, backed by
// patrickmn/go-cache so that callers who want attribute data to expire
// (e.g. to pick up a vendor correction without a process restart) can opt
// into a TTL; NoExpiration is the default and matches spec.md §4.8's
// "no ordering or concurrency guarantees required beyond single-threaded
// consistency" baseline.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore builds a MemoryStore with the given default TTL and
// cleanup interval. Pass gocache.NoExpiration for ttl to keep entries
// indefinitely.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(ttl, cleanupInterval)}
}

// Get returns the cached BondAttributes for code, if present.
func (m *MemoryStore) Get(code string) (*bondattr.BondAttributes, bool, error) {
	v, ok := m.cache.Get(code)
	if !ok {
		return nil, false, nil
	}
	attrs, ok := v.(*bondattr.BondAttributes)
	if !ok {
		return nil, false, fmt.Errorf("attrstore: cached value for %s has unexpected type %T", code, v)
	}
	return attrs, true, nil
}

// Put stores attrs under code using the store's default expiration.
func (m *MemoryStore) Put(code string, attrs *bondattr.BondAttributes) error {
	m.cache.SetDefault(code, attrs)
	return nil
}

// Contains reports whether code has a cached entry.
func (m *MemoryStore) Contains(code string) bool {
	_, ok := m.cache.Get(code)
	return ok
}
