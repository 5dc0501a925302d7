package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/tiltapp/internal/adapters"
	"github.com/bft-labs/tiltapp/internal/domain"
)

// DefaultPageURL is the link handed out by the share command.
const DefaultPageURL = "https://tiltapp.io"

// Config holds CLI configuration for tiltapp.
type Config struct {
	StateDir     string
	StoreBackend string

	DefaultMinutes int
	TickInterval   time.Duration
	Sound          bool

	PageURL string

	LogLevel string
	LogFile  string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		StoreBackend:   adapters.BackendFile,
		DefaultMinutes: domain.DefaultDurationMinutes,
		TickInterval:   time.Second,
		Sound:          true,
		PageURL:        DefaultPageURL,
		LogLevel:       "info",
		StateDir:       "", // Derived from the home directory during Validate
	}
}

// DefaultStateDir returns ~/.tiltapp, or .tiltapp when there is no home.
func DefaultStateDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".tiltapp")
	}
	return ".tiltapp"
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.StateDir == "" {
		c.StateDir = DefaultStateDir()
	}

	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case "":
		c.StoreBackend = adapters.BackendFile
	case adapters.BackendFile, adapters.BackendSQLite:
	default:
		return fmt.Errorf("store-backend: %w: %q", domain.ErrUnknownBackend, c.StoreBackend)
	}

	if c.DefaultMinutes <= 0 {
		return fmt.Errorf("default minutes must be positive")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}

	if c.PageURL == "" {
		c.PageURL = DefaultPageURL
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString is setInt for environment variables.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
