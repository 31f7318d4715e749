package transport

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"sync"

	settingsDomain "filetug/internal/domain/settings"
	thumbnailDomain "filetug/internal/domain/thumbnail"
	"filetug/internal/services"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopRepo struct{}

func (nopRepo) Load() (map[settingsDomain.Key]string, error) { return nil, nil }
func (nopRepo) Save(settingsDomain.Key, string) error        { return nil }

func newStore() *services.SettingsStore {
	return services.NewSettingsStore(nopRepo{}, "/home/nemo/photos", discardLogger())
}

type emitted struct {
	name string
	data []any
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []emitted
}

func (e *recordingEmitter) Emit(eventName string, data ...any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emitted{name: eventName, data: data})
}

func (e *recordingEmitter) names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, len(e.events))
	for i, ev := range e.events {
		names[i] = ev.name
	}
	return names
}

type fakeDialogs struct {
	selection  string
	err        error
	defaultDir string
}

func (d *fakeDialogs) OpenDirectoryDialog(defaultDir string) (string, error) {
	d.defaultDir = defaultDir
	return d.selection, d.err
}

var errDialog = errors.New("dialog unavailable")

type fakeProvider struct {
	img       image.Image
	requested []thumbnailDomain.Size
}

func (p *fakeProvider) Thumbnail(_ string, size thumbnailDomain.Size) (image.Image, bool) {
	p.requested = append(p.requested, size)
	return p.img, p.img != nil
}

type fakePrefetcher struct {
	dir  string
	size thumbnailDomain.Size
}

func (p *fakePrefetcher) Prefetch(_ context.Context, dir string, size thumbnailDomain.Size, progress func(thumbnailDomain.ItemResult)) thumbnailDomain.BatchResult {
	p.dir, p.size = dir, size
	items := []thumbnailDomain.ItemResult{
		{ItemID: "1", Filename: "a.jpg", Status: thumbnailDomain.StatusCompleted},
		{ItemID: "2", Filename: "b.png", Status: thumbnailDomain.StatusSkipped},
	}
	for _, item := range items {
		progress(item)
	}
	return thumbnailDomain.BatchResult{Success: true, Results: items, Total: 2, Completed: 1, Skipped: 1}
}
