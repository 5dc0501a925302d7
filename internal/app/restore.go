package app

import (
	"time"

	"github.com/bft-labs/tiltapp/internal/domain"
	"github.com/bft-labs/tiltapp/pkg/log"
)

// CheckRestore adopts a persisted run at boot. A deadline still in the future
// becomes the active run; an expired or unreadable one is removed without
// firing completion. It reports whether a run was restored and does nothing
// if the engine is already running.
func (e *Engine) CheckRestore() bool {
	e.mu.Lock()
	if e.state.Running() {
		e.mu.Unlock()
		return false
	}

	rec, present, err := e.readRecordLocked()
	if err != nil {
		e.mu.Unlock()
		e.opts.logger.Warn("could not read persisted timer", log.Err(err))
		return false
	}
	if !present {
		e.mu.Unlock()
		return false
	}

	s, ok := rec.Decode()
	if !ok || !s.EndTime.After(e.opts.clock.Now()) {
		e.clearLocked()
		e.mu.Unlock()
		e.opts.logger.Info("discarded expired timer",
			log.String("end_time", rec.EndTime),
		)
		return false
	}

	e.adoptLocked(s)
	e.mu.Unlock()

	e.opts.logger.Info("timer restored",
		log.Int("minutes", s.DurationMinutes),
		log.Time("end_time", s.EndTime),
	)
	e.emit([]transition{{StateIdle, StateRunning, ReasonRestored}})
	e.Tick()
	return true
}

// Reconcile brings the engine in line with the store after another process
// changed it. A vanished record stops the local run, a different future
// deadline is adopted, and stale records are cleaned up. Completion never
// fires from here. It reports whether the engine or the store changed.
func (e *Engine) Reconcile() bool {
	e.mu.Lock()
	rec, present, err := e.readRecordLocked()
	if err != nil {
		e.mu.Unlock()
		e.opts.logger.Warn("could not read persisted timer", log.Err(err))
		return false
	}

	running := e.state.Running()
	var events []transition

	switch {
	case !present:
		if !running {
			e.mu.Unlock()
			return false
		}
		e.cancelLocked()
		// Another process already removed the record.
		e.state.EndTime = time.Time{}
		events = append(events, transition{StateRunning, StateIdle, ReasonReconciled})

	default:
		s, ok := rec.Decode()
		future := ok && s.EndTime.After(e.opts.clock.Now())
		same := ok && running && s.EndTime.Equal(e.state.EndTime)

		switch {
		case same:
			// Our own run; the ticker completes it.
			e.mu.Unlock()
			return false
		case future:
			if running {
				e.cancelLocked()
			} else {
				events = append(events, transition{StateIdle, StateRunning, ReasonReconciled})
			}
			e.adoptLocked(s)
		default:
			if running {
				e.cancelLocked()
				events = append(events, transition{StateRunning, StateIdle, ReasonReconciled})
			}
			e.clearLocked()
		}
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.opts.logger.Info("timer reconciled with store",
		log.String("state", snap.State.String()),
	)
	e.emit(events)
	e.opts.sink.Render(snap)
	return true
}

// adoptLocked makes s the active run without writing it back.
func (e *Engine) adoptLocked(s domain.TimerState) {
	e.state = s
	e.armLocked()
}

// readRecordLocked loads the timer triple. present follows timerEndTime only;
// the other two keys are optional and default on decode.
func (e *Engine) readRecordLocked() (rec domain.TimerRecord, present bool, err error) {
	end, ok, err := e.store.Get(domain.KeyTimerEndTime)
	if err != nil || !ok {
		return rec, false, err
	}
	rec.EndTime = end

	if v, ok, err := e.store.Get(domain.KeyTimerDuration); err == nil && ok {
		rec.Duration = v
	}
	if v, ok, err := e.store.Get(domain.KeyTotalTimerSeconds); err == nil && ok {
		rec.TotalSeconds = v
	}
	return rec, true, nil
}
