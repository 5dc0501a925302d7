package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				StateDir:       "/test/state",
				StoreBackend:   "sqlite",
				DefaultMinutes: 10,
				TickInterval:   "500ms",
				Sound:          &falseVal,
				PageURL:        "https://example.com/tilt",
				LogLevel:       "debug",
				LogFile:        "/var/log/tiltapp.log",
			},
			changed: map[string]bool{},
			initial: Config{Sound: true},
			expected: Config{
				StateDir:       "/test/state",
				StoreBackend:   "sqlite",
				DefaultMinutes: 10,
				TickInterval:   500 * time.Millisecond,
				Sound:          false,
				PageURL:        "https://example.com/tilt",
				LogLevel:       "debug",
				LogFile:        "/var/log/tiltapp.log",
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				StateDir:       "/config/state",
				DefaultMinutes: 15,
				Sound:          &trueVal,
			},
			changed: map[string]bool{"state-dir": true, "sound": true},
			initial: Config{
				StateDir: "/flag/state",
				Sound:    false,
			},
			expected: Config{
				StateDir:       "/flag/state", // unchanged because flag was set
				DefaultMinutes: 15,
				Sound:          false,
			},
			wantErr: false,
		},
		{
			name: "zero values leave defaults",
			fileConfig: FileConfig{
				DefaultMinutes: 0,
			},
			changed: map[string]bool{},
			initial: Config{DefaultMinutes: 5, TickInterval: time.Second, Sound: true},
			expected: Config{
				DefaultMinutes: 5,
				TickInterval:   time.Second,
				Sound:          true,
			},
			wantErr: false,
		},
		{
			name: "returns error for invalid duration",
			fileConfig: FileConfig{
				TickInterval: "soon",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()

	validPath := filepath.Join(tmpDir, "config.toml")
	validContent := strings.Join([]string{
		`state_dir = "/data/tilt"`,
		`store_backend = "sqlite"`,
		`default_minutes = 15`,
		`tick_interval = "250ms"`,
		`sound = false`,
		`page_url = "https://example.com"`,
		`log_level = "warn"`,
		`log_file = "/tmp/tilt.log"`,
	}, "\n")
	if err := os.WriteFile(validPath, []byte(validContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fc, err := LoadFileConfig(validPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}
	if fc.StateDir != "/data/tilt" {
		t.Errorf("StateDir = %v, want /data/tilt", fc.StateDir)
	}
	if fc.StoreBackend != "sqlite" {
		t.Errorf("StoreBackend = %v, want sqlite", fc.StoreBackend)
	}
	if fc.DefaultMinutes != 15 {
		t.Errorf("DefaultMinutes = %v, want 15", fc.DefaultMinutes)
	}
	if fc.TickInterval != "250ms" {
		t.Errorf("TickInterval = %v, want 250ms", fc.TickInterval)
	}
	if fc.Sound == nil || *fc.Sound {
		t.Errorf("Sound = %v, want false", fc.Sound)
	}
	if fc.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn", fc.LogLevel)
	}

	invalidPath := filepath.Join(tmpDir, "invalid.toml")
	if err := os.WriteFile(invalidPath, []byte("default_minutes = [oops"), 0o644); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}
	if _, err := LoadFileConfig(invalidPath); err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}

	if _, err := LoadFileConfig(filepath.Join(tmpDir, "missing.toml")); err == nil {
		t.Error("LoadFileConfig() expected error for missing file")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	p := DefaultConfigPath()
	if p == "" {
		t.Skip("no home directory")
	}
	if !strings.HasSuffix(p, filepath.Join(".tiltapp", "config.toml")) {
		t.Errorf("DefaultConfigPath() = %v", p)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	p := filepath.Join(tmpDir, "x")
	if FileExists(p) {
		t.Error("FileExists() = true for missing file")
	}
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(p) {
		t.Error("FileExists() = false for existing file")
	}
}
