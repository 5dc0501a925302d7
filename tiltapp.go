// Package tiltapp provides the break timer and emotion journal of TiltApp for
// embedding in other Go programs.
//
// Example usage:
//
//	t, err := tiltapp.Open(tiltapp.Config{StateDir: "/path/to/state"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Close()
//	t.CheckRestore()
//	if err := t.Start(5); err != nil {
//	    log.Fatal(err)
//	}
package tiltapp

import (
	"fmt"

	"github.com/bft-labs/tiltapp/internal/adapters"
	"github.com/bft-labs/tiltapp/internal/app"
	"github.com/bft-labs/tiltapp/internal/domain"
	"github.com/bft-labs/tiltapp/internal/emotionlog"
)

// Re-exported engine types.
type (
	Engine       = app.Engine
	Option       = app.Option
	Snapshot     = app.Snapshot
	State        = app.State
	EventHandler = app.EventHandler
	RenderSink   = app.RenderSink
	LogEntry     = domain.LogEntry
)

// Engine states.
const (
	StateIdle    = app.StateIdle
	StateRunning = app.StateRunning
)

// Engine options.
var (
	WithClock          = app.WithClock
	WithLogger         = app.WithLogger
	WithNotifier       = app.WithNotifier
	WithEventHandler   = app.WithEventHandler
	WithRenderSink     = app.WithRenderSink
	WithTickInterval   = app.WithTickInterval
	WithManualTicks    = app.WithManualTicks
	WithDefaultMinutes = app.WithDefaultMinutes
)

// Config selects where state is kept.
type Config struct {
	// StateDir holds the store. Required.
	StateDir string

	// Backend is "file" (default) or "sqlite".
	Backend string
}

// TiltApp is an engine and journal sharing one opened store.
type TiltApp struct {
	*app.Engine
	Journal *emotionlog.Log

	store *adapters.StoreHandle
}

// Open opens the store and builds an idle engine over it. Call CheckRestore
// to pick up a break saved by an earlier process.
func Open(cfg Config, opts ...Option) (*TiltApp, error) {
	if cfg.StateDir == "" {
		return nil, fmt.Errorf("tiltapp: state dir is required")
	}
	h, err := adapters.OpenStore(cfg.Backend, cfg.StateDir)
	if err != nil {
		return nil, err
	}
	return &TiltApp{
		Engine:  app.NewEngine(h.Store, opts...),
		Journal: emotionlog.New(h.Store, nil),
		store:   h,
	}, nil
}

// StorePath is the file backing the store. Watch it to notice other
// processes and call Reconcile.
func (t *TiltApp) StorePath() string {
	return t.store.Path
}

// Close stops the ticker and releases the store. A running break stays
// persisted.
func (t *TiltApp) Close() error {
	t.Engine.Close()
	return t.store.Close()
}
