package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TADA_DATA_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage != "file" {
		t.Fatalf("expected file storage, got %q", cfg.Storage)
	}
	if cfg.DataDir != filepath.Join(home, ".tada") {
		t.Fatalf("expected data dir under home, got %q", cfg.DataDir)
	}
	if cfg.APITimeout != 10*time.Second || cfg.InitTimeout != 5*time.Second {
		t.Fatalf("unexpected timeouts %v / %v", cfg.APITimeout, cfg.InitTimeout)
	}
	if cfg.Theme != "dark" {
		t.Fatalf("expected dark theme, got %q", cfg.Theme)
	}
	if lvl, _ := cfg.Level(); lvl != log.InfoLevel {
		t.Fatalf("expected info level, got %v", lvl)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TADA_STORAGE", "sqlite")
	t.Setenv("TADA_DATA_DIR", "/tmp/tada-test")
	t.Setenv("TADA_API_TIMEOUT", "250ms")
	t.Setenv("TADA_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage != "sqlite" || cfg.DataDir != "/tmp/tada-test" {
		t.Fatalf("unexpected storage config %+v", cfg)
	}
	if cfg.APITimeout != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", cfg.APITimeout)
	}
	if lvl, _ := cfg.Level(); lvl != log.DebugLevel {
		t.Fatalf("expected debug level, got %v", lvl)
	}
}

func TestLoadBadDuration(t *testing.T) {
	t.Setenv("TADA_API_TIMEOUT", "soon")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadBadLogLevel(t *testing.T) {
	t.Setenv("TADA_DATA_DIR", t.TempDir())
	t.Setenv("TADA_LOG_LEVEL", "loud")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}
