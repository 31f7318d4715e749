package transport

import (
	"context"
	"log/slog"

	"filetug/internal/common"
	bookmarksDomain "filetug/internal/domain/bookmarks"
	settingsDomain "filetug/internal/domain/settings"
	thumbnailDomain "filetug/internal/domain/thumbnail"
)

type WailsApp struct {
	ctx        context.Context
	settings   settingsDomain.Store
	bookmarks  bookmarksDomain.Service
	prefetcher thumbnailDomain.Prefetcher
	dialogs    DialogHandler
	events     EventEmitter
	logger     *slog.Logger
}

func NewWailsApp(
	ctx context.Context,
	settings settingsDomain.Store,
	bookmarks bookmarksDomain.Service,
	prefetcher thumbnailDomain.Prefetcher,
	logger *slog.Logger,
) *WailsApp {
	return newWailsApp(ctx, settings, bookmarks, prefetcher, NewDialogsHandler(ctx), NewEventEmitter(ctx), logger)
}

func newWailsApp(
	ctx context.Context,
	settings settingsDomain.Store,
	bookmarks bookmarksDomain.Service,
	prefetcher thumbnailDomain.Prefetcher,
	dialogs DialogHandler,
	events EventEmitter,
	logger *slog.Logger,
) *WailsApp {
	return &WailsApp{
		ctx:        ctx,
		settings:   settings,
		bookmarks:  bookmarks,
		prefetcher: prefetcher,
		dialogs:    dialogs,
		events:     events,
		logger:     logger,
	}
}

// Events returns the emitter used for runtime events
func (a *WailsApp) Events() EventEmitter {
	return a.events
}

func (a *WailsApp) GetSettings() map[string]any {
	snapshot := a.settings.Snapshot()
	out := make(map[string]any, len(snapshot))
	for k, v := range snapshot {
		out[string(k)] = v
	}
	return out
}

// UpdateSetting applies a single value coming from the frontend. Invalid
// values are ignored and reported as unchanged; unknown keys are an error.
func (a *WailsApp) UpdateSetting(key string, value any) (bool, error) {
	k := settingsDomain.Key(key)
	if !isKnownKey(k) {
		return false, common.NewSettingsError("update", key, common.ErrUnknownSetting)
	}
	return a.settings.Set(k, value), nil
}

// MoveUp navigates to the parent directory and returns the new path
func (a *WailsApp) MoveUp() string {
	a.settings.MoveUp()
	return a.settings.DirPath()
}

// ChooseDirectory opens a native directory picker starting at the current
// directory. Cancelling keeps the current directory.
func (a *WailsApp) ChooseDirectory() (string, error) {
	current := a.settings.DirPath()
	selection, err := a.dialogs.OpenDirectoryDialog(current)
	if err != nil {
		a.logger.Error("Directory dialog failed", "error", err)
		return current, err
	}
	if selection == "" {
		return current, nil
	}
	a.settings.SetDirPath(selection)
	return a.settings.DirPath(), nil
}

func (a *WailsApp) GetBookmarks() []bookmarksDomain.Bookmark {
	return a.bookmarks.List()
}

func (a *WailsApp) AddBookmark(path, title string) error {
	if path == "" {
		return common.ErrDirectoryRequired
	}
	return a.bookmarks.Add(path, title)
}

func (a *WailsApp) RemoveBookmark(path string) error {
	return a.bookmarks.Remove(path)
}

func (a *WailsApp) IsBookmarked(path string) bool {
	return a.bookmarks.Contains(path)
}

// PrefetchThumbnails warms the thumbnail cache for a directory, emitting
// thumbnails:progress after each file
func (a *WailsApp) PrefetchThumbnails(request PrefetchRequest) thumbnailDomain.BatchResult {
	dir := request.Dir
	if dir == "" {
		dir = a.settings.DirPath()
	}
	size := thumbnailDomain.Size{Width: request.Width, Height: request.Height}

	return a.prefetcher.Prefetch(a.ctx, dir, size, func(item thumbnailDomain.ItemResult) {
		a.events.Emit(common.EventThumbnailProgress, item)
	})
}

func isKnownKey(key settingsDomain.Key) bool {
	for _, k := range settingsDomain.AllKeys {
		if k == key {
			return true
		}
	}
	return false
}
