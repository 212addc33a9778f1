// Package testutil holds fakes shared by package tests.
package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"
)

// ErrStoreDown is the error returned by a failing StubStore
var ErrStoreDown = errors.New("content store unavailable")

// =====================================================
// STUB CONTENT STORE
// =====================================================

// StubStore answers queries from canned JSON keyed by the query string.
// Unknown queries return null.
type StubStore struct {
	mu      sync.Mutex
	Results map[string]string
	Err     error
	Calls   []StoreCall
}

type StoreCall struct {
	Query  string
	Params map[string]interface{}
}

func NewStubStore() *StubStore {
	return &StubStore{Results: map[string]string{}}
}

// On registers the raw JSON result for query q
func (s *StubStore) On(q, resultJSON string) *StubStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Results[q] = resultJSON
	return s
}

func (s *StubStore) Query(ctx context.Context, q string, params map[string]interface{}, dest interface{}) error {
	s.mu.Lock()
	s.Calls = append(s.Calls, StoreCall{Query: q, Params: params})
	raw, ok := s.Results[q]
	err := s.Err
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if !ok {
		raw = "null"
	}
	if dest == nil {
		return nil
	}
	return json.Unmarshal([]byte(raw), dest)
}

// LastCall returns the most recent call, or an empty StoreCall
func (s *StubStore) LastCall() StoreCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Calls) == 0 {
		return StoreCall{}
	}
	return s.Calls[len(s.Calls)-1]
}

// =====================================================
// IN-MEMORY CACHE
// =====================================================

// MemoryCache implements cache.Cache with Redis-style glob deletes.
type MemoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	Err     error
	Deleted []string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: map[string][]byte{}}
}

func (m *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	raw, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	return nil
}

func (m *MemoryCache) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	if raw, ok := m.items[key]; ok {
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, err
		}
	}
	n++
	m.items[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (m *MemoryCache) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Deleted = append(m.Deleted, pattern)
	for k := range m.items {
		if matchGlob(pattern, k) {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *MemoryCache) Ping(ctx context.Context) error {
	return m.Err
}

// Has reports whether key is cached
func (m *MemoryCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok
}

// matchGlob implements the subset of Redis glob syntax the page cache
// emits: "*", "?" and backslash escapes.
func matchGlob(pattern, key string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			for i := len(key); i >= 0; i-- {
				if matchGlob(pattern[1:], key[i:]) {
					return true
				}
			}
			return false
		case '?':
			if key == "" {
				return false
			}
		case '\\':
			if len(pattern) > 1 {
				pattern = pattern[1:]
			}
			fallthrough
		default:
			if key == "" || key[0] != pattern[0] {
				return false
			}
		}
		pattern, key = pattern[1:], key[1:]
	}
	return key == ""
}
