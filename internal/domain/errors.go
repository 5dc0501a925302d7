package domain

import "errors"

// Errors returned across tiltapp. Check them with errors.Is.
var (
	// ErrInvalidDuration is returned when a timer duration is not a positive
	// number of minutes.
	ErrInvalidDuration = errors.New("tiltapp: duration must be a positive number of minutes")

	// ErrTimerRunning is returned when the armed duration is changed while a
	// run is active.
	ErrTimerRunning = errors.New("tiltapp: timer is running")

	// ErrEmptyEmotion is returned when an emotion log entry has no emotion.
	ErrEmptyEmotion = errors.New("tiltapp: emotion is required")

	// ErrCorruptLog is returned when the persisted emotion log cannot be decoded.
	ErrCorruptLog = errors.New("tiltapp: emotion log is corrupt")

	// ErrUnknownPlatform is returned for an unsupported share target.
	ErrUnknownPlatform = errors.New("tiltapp: unknown share platform")

	// ErrUnknownBackend is returned for an unsupported store backend.
	ErrUnknownBackend = errors.New("tiltapp: unknown store backend")
)
