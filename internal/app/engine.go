package app

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bft-labs/tiltapp/internal/domain"
	"github.com/bft-labs/tiltapp/internal/ports"
	"github.com/bft-labs/tiltapp/pkg/log"
)

// Engine owns the break timer. Remaining time is always derived from the
// persisted deadline and the clock, never counted down in memory.
//
// All state is guarded by mu. Start, Stop and completion cancel the ticker
// goroutine of the current run before mutating state, and every run carries a
// generation number so a tick that was already in flight for a cancelled run
// is ignored.
type Engine struct {
	store ports.Store
	opts  options

	mu    sync.Mutex
	state domain.TimerState
	gen   uint64
	done  chan struct{}
	wg    sync.WaitGroup

	// dispatching is non-zero while a ticker goroutine runs a tick and its
	// callbacks.
	dispatching atomic.Int32
}

// NewEngine creates an idle engine armed with the default duration.
func NewEngine(store ports.Store, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		store: store,
		opts:  o,
		state: domain.TimerState{
			DurationMinutes: o.defaultMinutes,
			TotalSeconds:    o.defaultMinutes * 60,
		},
	}
}

// Start begins a run of the given length, stopping any run in progress first.
// The deadline triple is persisted before the ticker is armed. A failed write
// is logged and the run continues in memory.
func (e *Engine) Start(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidDuration, minutes)
	}

	e.mu.Lock()
	var events []transition
	if e.state.Running() {
		e.cancelLocked()
		e.clearLocked()
		events = append(events, transition{StateRunning, StateIdle, ReasonStopped})
	}

	// The store keeps milliseconds; truncating keeps memory and disk identical.
	now := e.opts.clock.Now().Truncate(time.Millisecond)
	e.state = domain.TimerState{
		DurationMinutes: minutes,
		TotalSeconds:    minutes * 60,
		EndTime:         now.Add(time.Duration(minutes) * time.Minute),
	}
	e.persistLocked()
	e.armLocked()
	events = append(events, transition{StateIdle, StateRunning, ReasonStarted})
	end := e.state.EndTime
	e.mu.Unlock()

	e.opts.logger.Info("timer started",
		log.Int("minutes", minutes),
		log.Time("end_time", end),
	)
	e.emit(events)
	e.Tick()
	return nil
}

// Stop cancels the current run and clears the persisted record. Calling it
// while idle only re-renders the armed duration.
func (e *Engine) Stop() {
	e.mu.Lock()
	wasRunning := e.state.Running()
	e.cancelLocked()
	e.clearLocked()
	snap := e.snapshotLocked()
	e.mu.Unlock()

	if wasRunning {
		e.opts.logger.Info("timer stopped")
		e.emit([]transition{{StateRunning, StateIdle, ReasonStopped}})
	}
	e.opts.sink.Render(snap)
}

// Tick returns the seconds left in the current run, or the armed duration
// when idle. The first tick that observes zero on an active run completes it.
func (e *Engine) Tick() int {
	return e.tick(0, false)
}

// Select changes the armed duration. It is refused while a run is active.
func (e *Engine) Select(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidDuration, minutes)
	}

	e.mu.Lock()
	if e.state.Running() {
		e.mu.Unlock()
		return domain.ErrTimerRunning
	}
	e.state.DurationMinutes = minutes
	e.state.TotalSeconds = minutes * 60
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.opts.sink.Render(snap)
	return nil
}

// Snapshot returns the current display values without completing anything.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// State reports whether a run is active.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Running() {
		return StateRunning
	}
	return StateIdle
}

// Close stops the ticker goroutine and waits for it to exit. The persisted
// run is left alone so a later process can restore it.
//
// Called from inside an engine callback, Close does not wait: the ticker
// goroutine delivering the callback exits once the callback returns.
func (e *Engine) Close() {
	e.mu.Lock()
	e.cancelLocked()
	e.mu.Unlock()
	if e.dispatching.Load() > 0 {
		return
	}
	e.wg.Wait()
}

func (e *Engine) tick(gen uint64, fromTicker bool) int {
	e.mu.Lock()
	if fromTicker && gen != e.gen {
		e.mu.Unlock()
		return 0
	}
	snap := e.snapshotLocked()
	completed := false
	if snap.State == StateRunning && snap.Remaining == 0 {
		e.cancelLocked()
		e.clearLocked()
		completed = true
	}
	e.mu.Unlock()

	e.opts.sink.Render(snap)
	if completed {
		e.complete()
	}
	return snap.Remaining
}

// complete runs the side effects of a finished break. The run is already
// cleared, so nothing here can fire twice for it.
func (e *Engine) complete() {
	e.opts.logger.Info("break complete")
	e.emit([]transition{{StateRunning, StateIdle, ReasonCompleted}})
	e.opts.sink.Render(e.Snapshot())

	if e.opts.notifier != nil {
		if err := e.opts.notifier.Notify(CompletionMessage); err != nil {
			e.opts.logger.Warn("completion notification failed", log.Err(err))
		}
	}
	e.opts.events.OnComplete()
}

// armLocked starts the ticker goroutine for the current generation.
func (e *Engine) armLocked() {
	if e.opts.manualTicks {
		return
	}
	done := make(chan struct{})
	e.done = done
	gen := e.gen
	ticker := e.opts.clock.NewTicker(e.opts.tickInterval)

	e.wg.Add(1)
	go e.loop(ticker, done, gen)
}

func (e *Engine) loop(ticker clockwork.Ticker, done <-chan struct{}, gen uint64) {
	defer e.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.Chan():
			e.dispatching.Add(1)
			e.tick(gen, true)
			e.dispatching.Add(-1)
		}
	}
}

// cancelLocked retires the current generation and its ticker goroutine.
func (e *Engine) cancelLocked() {
	if e.done != nil {
		close(e.done)
		e.done = nil
	}
	e.gen++
}

// clearLocked drops the deadline and the persisted triple.
func (e *Engine) clearLocked() {
	e.state.EndTime = time.Time{}
	if err := e.store.Remove(domain.TimerKeys...); err != nil {
		e.opts.logger.Warn("failed to clear persisted timer", log.Err(err))
	}
}

func (e *Engine) persistLocked() {
	pairs := domain.NewTimerRecord(e.state).Pairs()

	var err error
	if bs, ok := e.store.(ports.BatchSetter); ok {
		err = bs.SetMany(pairs)
	} else {
		for _, p := range pairs {
			if err = e.store.Set(p[0], p[1]); err != nil {
				break
			}
		}
	}
	if err != nil {
		e.opts.logger.Warn("failed to persist timer; continuing in memory", log.Err(err))
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	s := Snapshot{DurationMinutes: e.state.DurationMinutes}
	if !e.state.Running() {
		s.State = StateIdle
		s.Remaining = e.state.ArmedSeconds()
		s.Band = BandPrimary
		return s
	}

	s.State = StateRunning
	s.EndTime = e.state.EndTime
	s.Remaining = remainingSeconds(e.state.EndTime, e.opts.clock.Now())
	s.Total = e.storedTotalLocked()
	s.Progress = float64(s.Remaining) / float64(s.Total)
	s.Band = BandFor(s.Progress)
	return s
}

// storedTotalLocked reads the progress denominator back from the store so a
// reload mid-run keeps the original total; memory is the fallback.
func (e *Engine) storedTotalLocked() int {
	fallback := e.state.TotalSeconds
	if fallback <= 0 {
		fallback = e.state.ArmedSeconds()
	}
	v, ok, err := e.store.Get(domain.KeyTotalTimerSeconds)
	if err != nil {
		e.opts.logger.Debug("reading stored total failed", log.Err(err))
		return fallback
	}
	if !ok {
		return fallback
	}
	return domain.ParsePositiveInt(v, fallback)
}

func (e *Engine) emit(events []transition) {
	for _, t := range events {
		e.opts.logger.Debug("state transition",
			log.String("from", t.from.String()),
			log.String("to", t.to.String()),
			log.String("reason", t.reason),
		)
		e.opts.events.OnStateChange(t.from, t.to, t.reason)
	}
}
