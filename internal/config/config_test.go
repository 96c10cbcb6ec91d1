package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Team.DefaultTargetReadiness != 70 {
		t.Errorf("Team.DefaultTargetReadiness = %v, want 70", cfg.Team.DefaultTargetReadiness)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "text")
	}

	// Database path is empty by default so the store picks its own location
	if cfg.Database.Path != "" {
		t.Errorf("Database.Path should be empty, got %q", cfg.Database.Path)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errContains string
	}{
		{
			name:        "defaults",
			config:      DefaultConfig(),
			expectError: false,
		},
		{
			name:        "zero values",
			config:      Config{},
			expectError: false,
		},
		{
			name: "target over 100",
			config: Config{
				Team: TeamConfig{DefaultTargetReadiness: 101},
			},
			expectError: true,
			errContains: "default_target_readiness",
		},
		{
			name: "unknown log level",
			config: Config{
				Log: LogConfig{Level: "verbose"},
			},
			expectError: true,
			errContains: "log.level",
		},
		{
			name: "unknown log format",
			config: Config{
				Log: LogConfig{Level: "debug", Format: "xml"},
			},
			expectError: true,
			errContains: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := LogConfig{Level: tt.level}.SlogLevel()
		if err != nil {
			t.Errorf("SlogLevel(%q) error = %v", tt.level, err)
		}
		if got != tt.expected {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.expected)
		}
	}
}

func TestLoadSave(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := Load(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("Load() error = %v, want ErrNoConfig", err)
	}

	if err := CreateExample(); err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Team.DefaultTargetReadiness != 70 {
		t.Errorf("Team.DefaultTargetReadiness = %v, want 70", cfg.Team.DefaultTargetReadiness)
	}

	cfg.Database.Path = "/tmp/gameready-test.db"
	cfg.Team.DefaultTargetReadiness = 65
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// CreateExample must not overwrite an existing file
	if err := CreateExample(); err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}
	cfg, _ = Load()
	if cfg.Database.Path != "/tmp/gameready-test.db" || cfg.Team.DefaultTargetReadiness != 65 {
		t.Errorf("Load() after Save() = %+v", cfg)
	}
}

func TestLoad_FillsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".gameready")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"log":{"format":"json"}}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" || cfg.Team.DefaultTargetReadiness != 70 {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDBPath, "/data/gr.db")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvDefaultTarget, "not-a-number")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Database.Path != "/data/gr.db" {
		t.Errorf("Database.Path = %q, want /data/gr.db", cfg.Database.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
	if cfg.Team.DefaultTargetReadiness != 70 {
		t.Errorf("Team.DefaultTargetReadiness = %d, want 70 (bad env value ignored)", cfg.Team.DefaultTargetReadiness)
	}
}
