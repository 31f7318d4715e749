package transport

import (
	"context"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

type dialogsHandler struct {
	ctx context.Context
}

func NewDialogsHandler(ctx context.Context) DialogHandler {
	return &dialogsHandler{
		ctx: ctx,
	}
}

func (h *dialogsHandler) OpenDirectoryDialog(defaultDir string) (string, error) {
	selection, err := wailsruntime.OpenDirectoryDialog(h.ctx, wailsruntime.OpenDialogOptions{
		Title:                "Select directory",
		DefaultDirectory:     defaultDir,
		ShowHiddenFiles:      true,
		CanCreateDirectories: false,
	})

	if err != nil {
		return "", err
	}

	return selection, nil
}

type runtimeEmitter struct {
	ctx context.Context
}

// NewEventEmitter returns an emitter backed by the Wails runtime. ctx must be
// the context passed to OnStartup.
func NewEventEmitter(ctx context.Context) EventEmitter {
	return &runtimeEmitter{ctx: ctx}
}

func (e *runtimeEmitter) Emit(eventName string, data ...any) {
	wailsruntime.EventsEmit(e.ctx, eventName, data...)
}
