package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
)

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nested"))

	v, ok, err := s.Get("timerEndTime")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || v != "" {
		t.Errorf("Get on missing file = (%q, %v), want empty", v, ok)
	}

	if err := s.Remove("timerEndTime"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Errorf("Remove of absent keys should not create the file, stat err = %v", err)
	}
}

func TestFileStore_SetGetRemove(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	if err := s.SetMany([][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	if err := s.Set("b", "two"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A second instance on the same directory sees the writes.
	other := NewFileStore(dir)
	for key, want := range map[string]string{"a": "1", "b": "two", "c": "3"} {
		got, ok, err := other.Get(key)
		if err != nil || !ok || got != want {
			t.Errorf("Get(%q) = (%q, %v, %v), want %q", key, got, ok, err, want)
		}
	}

	if err := s.Remove("a", "c", "missing"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := other.Get("a"); ok {
		t.Error("a should be removed")
	}
	if v, ok, _ := other.Get("b"); !ok || v != "two" {
		t.Errorf("b = (%q, %v), want two", v, ok)
	}

	assertNoTempFiles(t, s)
}

func assertNoTempFiles(t *testing.T, s *FileStore) {
	t.Helper()
	matches, err := filepath.Glob(s.Path() + ".*")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range matches {
		if m != s.Path()+".lock" {
			t.Errorf("temp file left behind: %s", m)
		}
	}
}

func TestFileStore_ConcurrentInstancesKeepAllWrites(t *testing.T) {
	dir := t.TempDir()
	stores := []*FileStore{NewFileStore(dir), NewFileStore(dir)}
	const perStore = 100

	var wg sync.WaitGroup
	errs := make(chan error, len(stores)*perStore)
	for i, s := range stores {
		wg.Add(1)
		go func(i int, s *FileStore) {
			defer wg.Done()
			for n := 0; n < perStore; n++ {
				if err := s.Set(fmt.Sprintf("k%d-%d", i, n), strconv.Itoa(n)); err != nil {
					errs <- err
				}
			}
		}(i, s)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Set: %v", err)
	}

	reader := NewFileStore(dir)
	missing := 0
	for i := range stores {
		for n := 0; n < perStore; n++ {
			if _, ok, err := reader.Get(fmt.Sprintf("k%d-%d", i, n)); err != nil || !ok {
				missing++
			}
		}
	}
	if missing != 0 {
		t.Errorf("missing keys = %d of %d", missing, len(stores)*perStore)
	}
	assertNoTempFiles(t, reader)
}

func TestFileStore_Update(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	appendOne := func(old string, ok bool) (string, error) {
		if !ok {
			return "1", nil
		}
		n, err := strconv.Atoi(old)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n + 1), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			other := NewFileStore(dir)
			for n := 0; n < 25; n++ {
				if err := other.Update("count", appendOne); err != nil {
					t.Errorf("Update: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	if v, _, _ := s.Get("count"); v != "100" {
		t.Errorf("count = %q, want 100", v)
	}

	errBoom := errors.New("boom")
	err := s.Update("count", func(string, bool) (string, error) { return "", errBoom })
	if !errors.Is(err, errBoom) {
		t.Errorf("Update err = %v, want %v", err, errBoom)
	}
	if v, _, _ := s.Get("count"); v != "100" {
		t.Errorf("failed Update changed count to %q", v)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.Get("a"); err == nil {
		t.Error("Get on corrupt file should fail")
	}
	if err := s.Set("a", "1"); err == nil {
		t.Error("Set on corrupt file should fail rather than overwrite it")
	}
}

func TestFileStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	if err := os.WriteFile(s.Path(), nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := s.Get("a"); err != nil || ok {
		t.Errorf("Get on empty file = (%v, %v), want (false, nil)", ok, err)
	}
}
