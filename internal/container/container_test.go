package container

import (
	"os"
	"path/filepath"
	"testing"

	"filetug/internal/config"
	settingsDomain "filetug/internal/domain/settings"
	thumbnailDomain "filetug/internal/domain/thumbnail"
)

func newTestContainer(t *testing.T, dataDir string) *Container {
	t.Helper()
	v := config.NewViper()
	v.Set(config.KeyDataDir, dataDir)
	v.Set(config.KeyLogLevel, "error")

	cfg, err := config.New(v)
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNew(t *testing.T) {
	c := newTestContainer(t, t.TempDir())
	defer c.Close()

	if c.GetSettingsStore() == nil || c.GetBookmarkService() == nil ||
		c.GetThumbnailService() == nil || c.GetPrefetchService() == nil {
		t.Fatal("Expected all services to be created")
	}
	if c.GetConfig() == nil {
		t.Error("Expected config")
	}
}

func TestSettingsSurviveRestart(t *testing.T) {
	dataDir := t.TempDir()

	c := newTestContainer(t, dataDir)
	c.GetSettingsStore().Set(settingsDomain.KeySortBy, settingsDomain.SortByType)
	if err := c.GetBookmarkService().Add("/sdcard/DCIM", "Camera"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	c = newTestContainer(t, dataDir)
	defer c.Close()
	if got := c.GetSettingsStore().Get(settingsDomain.KeySortBy); got != settingsDomain.SortByType {
		t.Errorf("Expected sortBy to survive restart, got %v", got)
	}
	if !c.GetBookmarkService().Contains("/sdcard/DCIM") {
		t.Error("Expected bookmark to survive restart")
	}
}

func TestThumbnailGateIsSettingsStore(t *testing.T) {
	c := newTestContainer(t, t.TempDir())
	defer c.Close()

	dir := t.TempDir()
	src := filepath.Join(dir, "missing.png")

	if _, ok := c.GetThumbnailService().Thumbnail(src, thumbnailDomain.DefaultSize); ok {
		t.Error("Expected no thumbnail while caching is disabled")
	}
	if _, err := os.Stat(filepath.Join(dir, ".thumbs")); !os.IsNotExist(err) {
		t.Error("Expected no cache directory while caching is disabled")
	}

	c.GetSettingsStore().Set(settingsDomain.KeyCacheThumbnails, true)
	c.GetThumbnailService().Thumbnail(src, thumbnailDomain.DefaultSize)
	if _, err := os.Stat(filepath.Join(dir, ".thumbs")); err != nil {
		t.Error("Expected the cache directory once caching is enabled")
	}
}
