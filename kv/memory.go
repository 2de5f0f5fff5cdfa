package kv

import "sync"

// Memory keeps values in a map. Values are copied in and out so callers can't alias stored bytes.
type Memory struct {
	mu sync.Mutex
	m  map[string][]byte

	// If non-nil, returned by Set instead of storing. Meant for tests.
	SetErr error
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string][]byte)}
}

// Get implements Storage.
func (s *Memory) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set implements Storage.
func (s *Memory) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.m[key] = append([]byte(nil), value...)
	return nil
}

// Close implements Storage.
func (s *Memory) Close() error {
	return nil
}
