package domain

import "time"

// LogEntry is one emotion log record. Emoji is optional.
type LogEntry struct {
	ID        string    `json:"id,omitempty"`
	Emotion   string    `json:"emotion"`
	Emoji     string    `json:"emoji,omitempty"`
	Notes     string    `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}
