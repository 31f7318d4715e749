package application

import (
	"context"
	"testing"

	"filetug/internal/config"
	"filetug/internal/container"
)

func TestOnShutdownWithoutStartup(t *testing.T) {
	v := config.NewViper()
	v.Set(config.KeyDataDir, t.TempDir())
	cfg, err := config.New(v)
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	c, err := container.New(cfg)
	if err != nil {
		t.Fatalf("container.New failed: %v", err)
	}

	app := NewApp(c)
	if app == nil {
		t.Fatal("Expected App instance, got nil")
	}
	app.OnShutdown(context.Background())
}
