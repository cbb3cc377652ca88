// Package store holds the client's local persistent state: the
// anonymous identity, the logged-in profile and the anonymous
// reservation list. The substrate is a small synchronous key-value
// store scoped to the user's state directory, the CLI equivalent of a
// browser profile's local storage.
package store

import "sync"

// KV is the local persistence substrate. Implementations must be safe
// for concurrent use and must persist synchronously: a returned Set is
// durable for the next Get even across process restarts.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores the value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key; deleting an absent key is a no-op.
	Delete(key string) error
}

// MemKV is an in-memory KV used by tests and dry runs.
type MemKV struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemKV returns an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{m: make(map[string]string)}
}

func (s *MemKV) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *MemKV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
