package cliconfig

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// ApplyEnvConfig applies configuration from environment variables (TILTAPP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("state-dir", os.Getenv("TILTAPP_STATE_DIR"), &cfg.StateDir)
	s.setString("store", os.Getenv("TILTAPP_STORE_BACKEND"), &cfg.StoreBackend)
	s.setString("page-url", os.Getenv("TILTAPP_PAGE_URL"), &cfg.PageURL)
	s.setString("log-level", os.Getenv("TILTAPP_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-file", os.Getenv("TILTAPP_LOG_FILE"), &cfg.LogFile)

	if err := s.setIntFromString("default-minutes", os.Getenv("TILTAPP_DEFAULT_MINUTES"), &cfg.DefaultMinutes); err != nil {
		return err
	}
	if err := s.setDuration("tick", os.Getenv("TILTAPP_TICK_INTERVAL"), &cfg.TickInterval); err != nil {
		return err
	}

	s.setBoolFromString("sound", os.Getenv("TILTAPP_SOUND"), &cfg.Sound)

	return nil
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
