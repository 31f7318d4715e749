package transport

// Transport layer types for Wails API

// PrefetchRequest asks for every image in Dir to be cached at the given size.
// An empty Dir means the current directory.
type PrefetchRequest struct {
	Dir    string `json:"dir"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Dialog interface for system dialogs
type DialogHandler interface {
	OpenDirectoryDialog(defaultDir string) (string, error)
}

// EventEmitter publishes runtime events to the frontend
type EventEmitter interface {
	Emit(eventName string, data ...any)
}
