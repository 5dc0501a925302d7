// Package memory provides an in-process ports.Store, mainly for tests.
package memory

import "sync"

// Store is a map guarded by a mutex.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: map[string]string{}}
}

func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *Store) SetMany(pairs [][2]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range pairs {
		s.data[p[0]] = p[1]
	}
	return nil
}

func (s *Store) Remove(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// Update calls fn with the current value and stores its result, all under
// the write lock.
func (s *Store) Update(key string, fn func(old string, ok bool) (string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.data[key]
	v, err := fn(old, ok)
	if err != nil {
		return err
	}
	s.data[key] = v
	return nil
}

// Len reports the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
