package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	StateDir       string `toml:"state_dir"`
	StoreBackend   string `toml:"store_backend"`
	DefaultMinutes int    `toml:"default_minutes"`
	TickInterval   string `toml:"tick_interval"`
	Sound          *bool  `toml:"sound"`
	PageURL        string `toml:"page_url"`
	LogLevel       string `toml:"log_level"`
	LogFile        string `toml:"log_file"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.tiltapp/config.toml, or "" without a home.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".tiltapp", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("store", fc.StoreBackend, &cfg.StoreBackend)
	s.setString("page-url", fc.PageURL, &cfg.PageURL)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)

	s.setInt("default-minutes", fc.DefaultMinutes, &cfg.DefaultMinutes)
	if err := s.setDuration("tick", fc.TickInterval, &cfg.TickInterval); err != nil {
		return err
	}

	s.setBool("sound", fc.Sound, &cfg.Sound)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
