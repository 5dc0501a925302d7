package display

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/bft-labs/tiltapp/internal/app"
)

const (
	clearLine = "\r\033[K"
	resetSGR  = "\033[0m"
)

var bandColors = map[app.Band]string{
	app.BandPrimary: "\033[36m",
	app.BandWarning: "\033[33m",
	app.BandError:   "\033[31m",
}

// Terminal is an app.RenderSink that keeps the status on one line of a TTY.
// On anything else it prints a line per change.
type Terminal struct {
	out   io.Writer
	width int

	inline bool
	color  bool

	mu    sync.Mutex
	last  string
	drawn bool
}

// NewTerminal writes to out. Line rewriting and colour are enabled when out
// is a terminal.
func NewTerminal(out io.Writer) *Terminal {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Terminal{out: out, width: DefaultBarWidth, inline: tty, color: tty}
}

// Render implements app.RenderSink.
func (t *Terminal) Render(s app.Snapshot) {
	line := Line(s, t.width)

	t.mu.Lock()
	defer t.mu.Unlock()
	if line == t.last {
		return
	}
	t.last = line

	if t.color {
		line = bandColors[s.Band] + line + resetSGR
	}
	if t.inline {
		fmt.Fprint(t.out, clearLine+line)
		t.drawn = true
		return
	}
	fmt.Fprintln(t.out, line)
}

// Finish ends an inline status line so later output starts on a fresh line.
func (t *Terminal) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inline && t.drawn {
		fmt.Fprintln(t.out)
		t.drawn = false
	}
	t.last = ""
}
