// Package display renders timer snapshots and journal entries as text.
package display

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bft-labs/tiltapp/internal/app"
	"github.com/bft-labs/tiltapp/internal/domain"
	"github.com/bft-labs/tiltapp/internal/tips"
)

// DefaultBarWidth is the number of cells in the progress bar.
const DefaultBarWidth = 30

// Clock formats seconds as MM:SS. Minutes are not wrapped at 60.
func Clock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

// Bar draws progress (0..1) as a fixed-width bar.
func Bar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	progress = math.Max(0, math.Min(1, progress))
	filled := int(math.Round(progress * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// Line is the one-line status for a snapshot.
func Line(s app.Snapshot, width int) string {
	if s.State != app.StateRunning {
		return fmt.Sprintf("%s %s idle, %d min armed", Clock(s.Remaining), Bar(0, width), s.DurationMinutes)
	}
	return fmt.Sprintf("%s %s %3.0f%%", Clock(s.Remaining), Bar(s.Progress, width), s.Progress*100)
}

// LogEntry formats a journal entry with its age relative to now.
func LogEntry(e domain.LogEntry, now time.Time) string {
	var b strings.Builder
	if e.Emoji != "" {
		b.WriteString(e.Emoji)
		b.WriteByte(' ')
	}
	b.WriteString(e.Emotion)
	fmt.Fprintf(&b, "  %s (%s)",
		e.Timestamp.Local().Format("2006-01-02 15:04"),
		humanize.RelTime(e.Timestamp, now, "ago", "from now"),
	)
	if e.Notes != "" {
		b.WriteString("\n    ")
		b.WriteString(e.Notes)
	}
	return b.String()
}

// Tip formats one tip as a title line followed by its content.
func Tip(t tips.Tip) string {
	s := fmt.Sprintf("%s %s\n    %s", t.Emoji, t.Title, t.Content)
	if t.Link != "" {
		s += "\n    Learn more: " + t.Link
	}
	return s
}
