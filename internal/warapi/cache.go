package warapi

import (
	"sync"
	"time"
)

// Entry is the cached state for one hex. Entries are replaced wholesale on
// every successful revalidation, never merged field by field.
type Entry struct {
	Summary   Summary
	ETag      string
	ExpiresAt time.Time
}

// EntryStore holds one entry per hex name. Implementations must make Put a
// whole-record replace; no other discipline is required since no operation
// spans two keys.
type EntryStore interface {
	// Get returns the entry for the key if present and not expired.
	Get(key string) (Entry, bool)
	// Put replaces the entry for the key.
	Put(key string, e Entry)
}

// MemoryStore is an in-process EntryStore. Entries live until overwritten;
// there is no eviction beyond expiry filtering on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Get returns the live entry for the key, if any.
func (s *MemoryStore) Get(key string) (Entry, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}
	if s.now().After(entry.ExpiresAt) {
		return Entry{}, false
	}
	return entry, true
}

// Put replaces the entry for the key. Last writer wins; a fresher fetch is
// always at least as good as a slightly older one.
func (s *MemoryStore) Put(key string, e Entry) {
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

var _ EntryStore = (*MemoryStore)(nil)
