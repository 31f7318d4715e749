package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"filetug/internal/common"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	KeyDataDir      = "data_dir"
	KeyLogLevel     = "log_level"
	KeyCheckModTime = "thumbnail_check_mtime"
)

// Config holds process configuration
type Config struct {
	AppDataDir    string
	DatabasePath  string
	BookmarksPath string
	Organization  string
	Application   string
	Logger        *slog.Logger

	// Regenerate thumbnails whose source changed after they were cached
	CheckThumbnailModTime bool
}

// NewViper returns a viper instance reading FILETUG_* environment variables
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("filetug")
	v.AutomaticEnv()
	v.SetDefault(KeyLogLevel, "info")
	return v
}

// New creates a new configuration instance
func New(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Organization: common.Organization,
		Application:  common.Application,
		Logger:       newLogger(v.GetString(KeyLogLevel)),

		CheckThumbnailModTime: v.GetBool(KeyCheckModTime),
	}

	if err := cfg.setupDirectories(v.GetString(KeyDataDir)); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setupDirectories(dataDir string) error {
	if dataDir == "" {
		dir, err := defaultAppDataDir(c.Organization, c.Application)
		if err != nil {
			return err
		}
		dataDir = dir
	}

	expanded, err := homedir.Expand(dataDir)
	if err != nil {
		return fmt.Errorf("expanding data directory: %w", err)
	}
	c.AppDataDir = expanded

	if err := os.MkdirAll(c.AppDataDir, common.DefaultDirPermissions); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	c.DatabasePath = filepath.Join(c.AppDataDir, "settings.sqlite3")
	c.BookmarksPath = filepath.Join(c.AppDataDir, "bookmarks.json")
	return nil
}

// HomeDir returns the user's home directory, falling back to the filesystem
// root when it cannot be determined.
func HomeDir() string {
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return string(filepath.Separator)
	}
	return home
}

func defaultAppDataDir(organization, application string) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", application), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, organization, application), nil
		}
		return filepath.Join(home, "AppData", "Roaming", organization, application), nil
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, organization, application), nil
		}
		return filepath.Join(home, ".local", "share", organization, application), nil
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
