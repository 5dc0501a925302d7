package app

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bft-labs/tiltapp/internal/domain"
	"github.com/bft-labs/tiltapp/internal/ports"
	"github.com/bft-labs/tiltapp/pkg/log"
)

// DefaultTickInterval is the period of the internal countdown ticker.
const DefaultTickInterval = time.Second

// CompletionMessage is what the notifier shows when a break ends.
const CompletionMessage = "Break time is over! 🕒"

// Option configures an Engine.
type Option func(*options)

type options struct {
	clock          clockwork.Clock
	logger         log.Logger
	notifier       ports.Notifier
	events         EventHandler
	sink           RenderSink
	tickInterval   time.Duration
	manualTicks    bool
	defaultMinutes int
}

func defaultOptions() options {
	return options{
		clock:          clockwork.NewRealClock(),
		logger:         log.NewNoopLogger(),
		events:         noopEvents{},
		sink:           noopSink{},
		tickInterval:   DefaultTickInterval,
		defaultMinutes: domain.DefaultDurationMinutes,
	}
}

// WithClock sets the time source. Tests pass a clockwork.FakeClock.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNotifier sets the collaborator told about completed breaks.
func WithNotifier(n ports.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithEventHandler registers a receiver for state changes and completion.
func WithEventHandler(h EventHandler) Option {
	return func(o *options) {
		if h != nil {
			o.events = h
		}
	}
}

// WithRenderSink registers the presentation sink.
func WithRenderSink(s RenderSink) Option {
	return func(o *options) {
		if s != nil {
			o.sink = s
		}
	}
}

// WithTickInterval overrides the one second countdown period.
func WithTickInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.tickInterval = d
		}
	}
}

// WithManualTicks disables the internal ticker; the caller drives Tick.
func WithManualTicks() Option {
	return func(o *options) {
		o.manualTicks = true
	}
}

// WithDefaultMinutes sets the armed duration an idle engine starts with.
func WithDefaultMinutes(m int) Option {
	return func(o *options) {
		if m > 0 {
			o.defaultMinutes = m
		}
	}
}
