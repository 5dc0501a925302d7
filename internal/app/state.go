package app

// State is the engine's lifecycle state. Exactly one holds at any time.
type State int

const (
	StateIdle State = iota
	StateRunning
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

// Transition reasons passed to EventHandler.OnStateChange.
const (
	ReasonStarted    = "started"
	ReasonStopped    = "stopped"
	ReasonRestored   = "restored"
	ReasonCompleted  = "completed"
	ReasonReconciled = "reconciled"
)

// EventHandler receives engine signals. The presentation layer uses
// OnStateChange to enable or disable duration controls.
// Calls are made without the engine lock held, on the caller's goroutine for
// Start, Stop and Tick and on the ticker goroutine for completions it detects.
// A handler may call back into the engine, Close included.
type EventHandler interface {
	OnStateChange(previous, current State, reason string)

	// OnComplete is called once per run, after the run has been cleared and
	// the notifier has been invoked.
	OnComplete()
}

// RenderSink consumes a Snapshot on every tick and on every state change.
type RenderSink interface {
	Render(Snapshot)
}

type transition struct {
	from, to State
	reason   string
}

type noopEvents struct{}

func (noopEvents) OnStateChange(State, State, string) {}
func (noopEvents) OnComplete()                        {}

type noopSink struct{}

func (noopSink) Render(Snapshot) {}
