package application

import (
	"context"

	"filetug/internal/container"
	bookmarksDomain "filetug/internal/domain/bookmarks"
	thumbnailDomain "filetug/internal/domain/thumbnail"
	"filetug/internal/transport"
)

type App struct {
	ctx         context.Context
	container   *container.Container
	wailsApp    *transport.WailsApp
	unsubscribe func()
}

func NewApp(c *container.Container) *App {
	return &App{container: c}
}

func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx
	logger := a.container.GetConfig().Logger

	// Initialize transport layer
	a.wailsApp = transport.NewWailsApp(
		ctx,
		a.container.GetSettingsStore(),
		a.container.GetBookmarkService(),
		a.container.GetPrefetchService(),
		logger,
	)
	a.unsubscribe = transport.ForwardSettingsEvents(a.container.GetSettingsStore(), a.wailsApp.Events())

	cfg := a.container.GetConfig()
	logger.Info("Wails app initialized successfully")
	logger.Info("Application configuration",
		"data_directory", cfg.AppDataDir,
		"database_path", cfg.DatabasePath,
		"bookmarks_path", cfg.BookmarksPath,
		"check_thumbnail_mtime", cfg.CheckThumbnailModTime)
}

func (a *App) OnShutdown(ctx context.Context) {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if err := a.container.Close(); err != nil {
		a.container.GetConfig().Logger.Error("Failed to close database", "error", err)
	}
}

func (a *App) GetSettings() map[string]any {
	return a.wailsApp.GetSettings()
}

func (a *App) UpdateSetting(key string, value any) (bool, error) {
	return a.wailsApp.UpdateSetting(key, value)
}

func (a *App) MoveUp() string {
	return a.wailsApp.MoveUp()
}

func (a *App) ChooseDirectory() (string, error) {
	return a.wailsApp.ChooseDirectory()
}

func (a *App) GetBookmarks() []bookmarksDomain.Bookmark {
	return a.wailsApp.GetBookmarks()
}

func (a *App) AddBookmark(path, title string) error {
	return a.wailsApp.AddBookmark(path, title)
}

func (a *App) RemoveBookmark(path string) error {
	return a.wailsApp.RemoveBookmark(path)
}

func (a *App) IsBookmarked(path string) bool {
	return a.wailsApp.IsBookmarked(path)
}

// PrefetchThumbnails warms the cache for the current directory at grid size
func (a *App) PrefetchThumbnails() thumbnailDomain.BatchResult {
	return a.wailsApp.PrefetchThumbnails(transport.PrefetchRequest{
		Width:  GridThumbnailSize,
		Height: GridThumbnailSize,
	})
}

// PrefetchDirectory warms the cache for dir at the given size
func (a *App) PrefetchDirectory(dir string, width, height int) thumbnailDomain.BatchResult {
	return a.wailsApp.PrefetchThumbnails(transport.PrefetchRequest{
		Dir:    dir,
		Width:  width,
		Height: height,
	})
}
