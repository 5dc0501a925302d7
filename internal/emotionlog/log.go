// Package emotionlog records how the player feels between hands.
package emotionlog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/bft-labs/tiltapp/internal/domain"
	"github.com/bft-labs/tiltapp/internal/ports"
)

// SuccessMessage is shown after an entry is saved.
const SuccessMessage = "Emotion logged successfully! 👍"

// Log is the emotion journal kept under the emotionalLogs key.
type Log struct {
	store ports.Store
	clock clockwork.Clock

	mu sync.Mutex
}

// New returns a Log over store. A nil clock uses wall time.
func New(store ports.Store, clock clockwork.Clock) *Log {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Log{store: store, clock: clock}
}

// Add appends an entry stamped with the current time. Existing data that
// cannot be decoded is left untouched and ErrCorruptLog is returned.
//
// Stores implementing ports.Updater append atomically across processes.
// Other stores are only serialised within this Log.
func (l *Log) Add(emotion, emoji, notes string) (domain.LogEntry, error) {
	emotion = strings.TrimSpace(emotion)
	if emotion == "" {
		return domain.LogEntry{}, domain.ErrEmptyEmotion
	}

	e := domain.LogEntry{
		ID:        uuid.NewString(),
		Emotion:   emotion,
		Emoji:     strings.TrimSpace(emoji),
		Notes:     strings.TrimSpace(notes),
		Timestamp: l.clock.Now().UTC(),
	}
	appendEntry := func(raw string, ok bool) (string, error) {
		entries, err := decode(raw, ok)
		if err != nil {
			return "", err
		}
		b, err := json.Marshal(append(entries, e))
		if err != nil {
			return "", fmt.Errorf("encode emotion log: %w", err)
		}
		return string(b), nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if u, ok := l.store.(ports.Updater); ok {
		if err := u.Update(domain.KeyEmotionalLogs, appendEntry); err != nil {
			return domain.LogEntry{}, fmt.Errorf("save emotion log: %w", err)
		}
		return e, nil
	}

	raw, ok, err := l.store.Get(domain.KeyEmotionalLogs)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("read emotion log: %w", err)
	}
	v, err := appendEntry(raw, ok)
	if err != nil {
		return domain.LogEntry{}, err
	}
	if err := l.store.Set(domain.KeyEmotionalLogs, v); err != nil {
		return domain.LogEntry{}, fmt.Errorf("save emotion log: %w", err)
	}
	return e, nil
}

// List returns all entries, newest first.
func (l *Log) List() ([]domain.LogEntry, error) {
	l.mu.Lock()
	entries, err := l.load()
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}

func (l *Log) load() ([]domain.LogEntry, error) {
	v, ok, err := l.store.Get(domain.KeyEmotionalLogs)
	if err != nil {
		return nil, fmt.Errorf("read emotion log: %w", err)
	}
	return decode(v, ok)
}

func decode(v string, ok bool) ([]domain.LogEntry, error) {
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}

	var entries []domain.LogEntry
	if err := json.Unmarshal([]byte(v), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptLog, err)
	}
	return entries, nil
}
