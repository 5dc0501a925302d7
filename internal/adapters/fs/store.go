package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// StoreFileName is the file FileStore keeps its data in.
const StoreFileName = "storage.json"

// FileStore implements ports.Store with a single JSON object on disk.
// Every read goes back to the file so separate processes sharing the
// directory see each other's writes.
//
// Writers hold an exclusive lock on StoreFileName+".lock" for the whole
// read-modify-write, so concurrent processes never drop each other's keys.
// Readers take no lock; the file is only ever replaced by rename.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a FileStore rooted at dir. Nothing is created until
// the first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the full path to the store file.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, StoreFileName)
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool, error) {
	m, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

// Set stores a single key.
func (s *FileStore) Set(key, value string) error {
	return s.SetMany([][2]string{{key, value}})
}

// SetMany stores several keys with one atomic file replacement.
func (s *FileStore) SetMany(pairs [][2]string) error {
	return s.modify(func(m map[string]string) (bool, error) {
		for _, p := range pairs {
			m[p[0]] = p[1]
		}
		return true, nil
	})
}

// Remove deletes keys. The file is left untouched when none of them exist.
func (s *FileStore) Remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := os.Stat(s.dir); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return s.modify(func(m map[string]string) (bool, error) {
		removed := false
		for _, k := range keys {
			if _, ok := m[k]; ok {
				delete(m, k)
				removed = true
			}
		}
		return removed, nil
	})
}

// Update replaces the value under key with fn's result while holding the
// store lock. fn sees the current value; returning an error leaves the store
// unchanged.
func (s *FileStore) Update(key string, fn func(old string, ok bool) (string, error)) error {
	return s.modify(func(m map[string]string) (bool, error) {
		old, ok := m[key]
		v, err := fn(old, ok)
		if err != nil {
			return false, err
		}
		m[key] = v
		return true, nil
	})
}

// modify runs a locked read-modify-write. The file is rewritten only when fn
// reports a change.
func (s *FileStore) modify(fn func(m map[string]string) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	lock := flock.New(s.Path() + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.Path(), err)
	}
	defer func() { _ = lock.Unlock() }()

	m, err := s.load()
	if err != nil {
		return err
	}
	changed, err := fn(m)
	if err != nil || !changed {
		return err
	}
	return s.save(m)
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	m := map[string]string{}
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path(), err)
	}
	return m, nil
}

// save writes to a uniquely named temp file and renames it over the store
// file.
func (s *FileStore) save(m map[string]string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(s.dir, StoreFileName+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
