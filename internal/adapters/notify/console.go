// Package notify contains Notifier adapters.
package notify

import (
	"fmt"
	"io"

	"github.com/bft-labs/tiltapp/pkg/log"
)

// bell is the ASCII BEL control character; terminals render it as a sound.
const bell = "\a"

// Config controls the console notifier.
type Config struct {
	// Sound rings the terminal bell after the message.
	Sound bool

	// SoundOut receives the bell. Defaults to the message writer.
	SoundOut io.Writer

	Logger log.Logger
}

// Console prints notifications to a terminal.
type Console struct {
	out      io.Writer
	sound    bool
	soundOut io.Writer
	logger   log.Logger
}

// NewConsole creates a console notifier writing to out.
func NewConsole(out io.Writer, cfg Config) *Console {
	c := &Console{
		out:      out,
		sound:    cfg.Sound,
		soundOut: cfg.SoundOut,
		logger:   cfg.Logger,
	}
	if c.soundOut == nil {
		c.soundOut = out
	}
	if c.logger == nil {
		c.logger = log.NewNoopLogger()
	}
	return c
}

// Notify prints message. A failed bell is logged and otherwise ignored.
func (c *Console) Notify(message string) error {
	if _, err := fmt.Fprintf(c.out, "\n%s\n", message); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	if c.sound {
		if _, err := io.WriteString(c.soundOut, bell); err != nil {
			c.logger.Warn("sound playback failed", log.Err(err))
		}
	}
	return nil
}
