package domain

import (
	"strconv"
	"strings"
	"time"
)

// Persisted keys. The three timer keys are always written and removed together.
const (
	KeyTimerEndTime      = "timerEndTime"
	KeyTimerDuration     = "timerDuration"
	KeyTotalTimerSeconds = "totalTimerSeconds"
	KeyEmotionalLogs     = "emotionalLogs"
)

// TimerKeys lists the keys that make up a persisted run.
var TimerKeys = []string{KeyTimerEndTime, KeyTimerDuration, KeyTotalTimerSeconds}

// DefaultDurationMinutes is the armed duration at boot and the fallback when a
// persisted duration cannot be read.
const DefaultDurationMinutes = 5

// endTimeLayout is ISO-8601 with millisecond precision in UTC.
const endTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// TimerState is the in-memory break timer. EndTime is the zero time when idle.
type TimerState struct {
	DurationMinutes int
	TotalSeconds    int
	EndTime         time.Time
}

// Running reports whether a deadline is set.
func (s TimerState) Running() bool {
	return !s.EndTime.IsZero()
}

// ArmedSeconds is what an idle timer displays.
func (s TimerState) ArmedSeconds() int {
	return s.DurationMinutes * 60
}

// TimerRecord is the string form of a run as it sits in the store.
type TimerRecord struct {
	EndTime      string
	Duration     string
	TotalSeconds string
}

// NewTimerRecord encodes a running state.
func NewTimerRecord(s TimerState) TimerRecord {
	return TimerRecord{
		EndTime:      FormatEndTime(s.EndTime),
		Duration:     strconv.Itoa(s.DurationMinutes),
		TotalSeconds: strconv.Itoa(s.TotalSeconds),
	}
}

// Pairs returns the record as key/value pairs in TimerKeys order.
func (r TimerRecord) Pairs() [][2]string {
	return [][2]string{
		{KeyTimerEndTime, r.EndTime},
		{KeyTimerDuration, r.Duration},
		{KeyTotalTimerSeconds, r.TotalSeconds},
	}
}

// Decode rebuilds a TimerState. ok is false when there is no usable deadline.
// A missing or unparsable duration falls back to DefaultDurationMinutes and a
// missing or unparsable total falls back to duration*60.
func (r TimerRecord) Decode() (s TimerState, ok bool) {
	end, err := ParseEndTime(r.EndTime)
	if err != nil {
		return TimerState{}, false
	}
	s.EndTime = end
	s.DurationMinutes = ParsePositiveInt(r.Duration, DefaultDurationMinutes)
	s.TotalSeconds = ParsePositiveInt(r.TotalSeconds, s.DurationMinutes*60)
	return s, true
}

// FormatEndTime renders a deadline for storage.
func FormatEndTime(t time.Time) string {
	return t.UTC().Format(endTimeLayout)
}

// ParseEndTime accepts any RFC 3339 timestamp, with or without fractional
// seconds.
func ParseEndTime(v string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
}

// ParsePositiveInt parses a decimal integer, returning def when v is empty,
// malformed or not positive.
func ParsePositiveInt(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
