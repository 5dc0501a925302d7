// Package adapters selects and opens the configured store backend.
package adapters

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bft-labs/tiltapp/internal/adapters/fs"
	"github.com/bft-labs/tiltapp/internal/adapters/sqlite"
	"github.com/bft-labs/tiltapp/internal/domain"
	"github.com/bft-labs/tiltapp/internal/ports"
)

// Supported store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// StoreHandle is an opened store together with the file that backs it.
type StoreHandle struct {
	Store ports.Store

	// Path is the file to watch for changes made by other processes.
	Path string

	close func() error
}

// Close releases the backend. Safe to call on file stores.
func (h *StoreHandle) Close() error {
	if h.close == nil {
		return nil
	}
	return h.close()
}

// OpenStore opens backend inside dir. An empty backend means file.
func OpenStore(backend, dir string) (*StoreHandle, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		s := fs.NewFileStore(dir)
		return &StoreHandle{Store: s, Path: s.Path()}, nil
	case BackendSQLite:
		s, err := sqlite.Open(filepath.Join(dir, sqlite.DBFileName))
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return &StoreHandle{Store: s, Path: s.Path(), close: s.Close}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, backend)
	}
}
