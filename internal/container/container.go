package container

import (
	"fmt"
	"log/slog"

	"filetug/internal/config"
	"filetug/internal/database"
	bookmarksDomain "filetug/internal/domain/bookmarks"
	settingsDomain "filetug/internal/domain/settings"
	thumbnailDomain "filetug/internal/domain/thumbnail"
	"filetug/internal/services"

	"gorm.io/gorm"
)

// Container holds all dependencies for the application
type Container struct {
	config *config.Config
	db     *gorm.DB
	logger *slog.Logger

	// Services
	settingsStore    *services.SettingsStore
	bookmarkService  *services.BookmarkService
	thumbnailService *services.ThumbnailService
	prefetchService  *services.PrefetchService
}

// New opens the settings database and creates all services
func New(cfg *config.Config) (*Container, error) {
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	c := &Container{
		config: cfg,
		db:     db,
		logger: cfg.Logger,
	}

	c.initServices()
	return c, nil
}

// initServices initializes all services with their dependencies
func (c *Container) initServices() {
	repo := database.NewSettingsRepository(c.db, c.config.Organization, c.config.Application)
	c.settingsStore = services.NewSettingsStore(repo, config.HomeDir(), c.logger)
	c.bookmarkService = services.NewBookmarkService(c.config.BookmarksPath, c.logger)

	// The settings store is the cache gate, so toggling cacheThumbnails
	// applies to the very next request
	c.thumbnailService = services.NewThumbnailService(c.settingsStore, c.logger, services.ThumbnailOptions{
		CheckModTime: c.config.CheckThumbnailModTime,
	})
	c.prefetchService = services.NewPrefetchService(c.thumbnailService, c.logger)
}

// GetSettingsStore returns the settings store
func (c *Container) GetSettingsStore() settingsDomain.Store {
	return c.settingsStore
}

// GetBookmarkService returns the bookmark service
func (c *Container) GetBookmarkService() bookmarksDomain.Service {
	return c.bookmarkService
}

// GetThumbnailService returns the thumbnail cache
func (c *Container) GetThumbnailService() *services.ThumbnailService {
	return c.thumbnailService
}

// GetPrefetchService returns the directory prefetcher
func (c *Container) GetPrefetchService() thumbnailDomain.Prefetcher {
	return c.prefetchService
}

// GetConfig returns the application configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// Close releases the database connection
func (c *Container) Close() error {
	return database.Close(c.db)
}
