package app

import "time"

// Band is the colour band of the progress display.
type Band string

const (
	BandPrimary Band = "primary"
	BandWarning Band = "warning"
	BandError   Band = "error"
)

// BandFor maps a remaining/total ratio to a band.
func BandFor(progress float64) Band {
	switch {
	case progress <= 0.25:
		return BandError
	case progress <= 0.5:
		return BandWarning
	default:
		return BandPrimary
	}
}

// Snapshot is everything the presentation layer needs for one frame.
type Snapshot struct {
	State State

	// Remaining is the countdown in whole seconds. When idle it is the armed
	// duration.
	Remaining int

	// Total is the progress denominator, zero when idle.
	Total int

	// Progress is Remaining/Total, zero when idle (empty ring).
	Progress float64
	Band     Band

	DurationMinutes int

	// EndTime is the deadline of the run, zero when idle.
	EndTime time.Time
}

// remainingSeconds rounds end-now to the nearest second, never below zero.
func remainingSeconds(end, now time.Time) int {
	d := end.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d.Round(time.Second) / time.Second)
}
