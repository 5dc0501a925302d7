package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher_NotifiesOnStoreWrite(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	changed := make(chan struct{}, 8)
	w := NewWatcher(s.Path(), 10*time.Millisecond, func() { changed <- struct{}{} }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := s.Set("timerEndTime", "2025-01-01T00:00:00.000Z"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification after store write")
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	var calls atomic.Int32
	w := NewWatcher(s.Path(), 10*time.Millisecond, func() { calls.Add(1) }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if n := calls.Load(); n != 0 {
		t.Errorf("onChange called %d times for an unrelated file", n)
	}
}
