package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestNew_DataDirOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	v := NewViper()
	v.Set(KeyDataDir, dir)

	cfg, err := New(v)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.AppDataDir != dir {
		t.Errorf("Expected AppDataDir %s, got %s", dir, cfg.AppDataDir)
	}
	if cfg.DatabasePath != filepath.Join(dir, "settings.sqlite3") {
		t.Errorf("Unexpected DatabasePath %s", cfg.DatabasePath)
	}
	if cfg.BookmarksPath != filepath.Join(dir, "bookmarks.json") {
		t.Errorf("Unexpected BookmarksPath %s", cfg.BookmarksPath)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected data directory to be created: %v", err)
	}
	if cfg.Organization != "Matoking" || cfg.Application != "Filetug" {
		t.Errorf("Unexpected scope %s/%s", cfg.Organization, cfg.Application)
	}
}

func TestNew_EnvOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "env-data")
	t.Setenv("FILETUG_DATA_DIR", dir)

	cfg, err := New(NewViper())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.AppDataDir != dir {
		t.Errorf("Expected AppDataDir %s, got %s", dir, cfg.AppDataDir)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		logger := newLogger(tt.level)
		if !logger.Enabled(context.Background(), tt.want) {
			t.Errorf("newLogger(%q) should enable %v", tt.level, tt.want)
		}
		if tt.want > slog.LevelDebug && logger.Enabled(context.Background(), tt.want-4) {
			t.Errorf("newLogger(%q) should not enable %v", tt.level, tt.want-4)
		}
	}
}

func TestHomeDir(t *testing.T) {
	if HomeDir() == "" {
		t.Error("Expected non-empty home directory")
	}
}

func TestNew_CheckModTime(t *testing.T) {
	t.Setenv("FILETUG_THUMBNAIL_CHECK_MTIME", "true")

	v := NewViper()
	v.Set(KeyDataDir, t.TempDir())
	cfg, err := New(v)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !cfg.CheckThumbnailModTime {
		t.Error("Expected mtime checking to be enabled from the environment")
	}
}
