package transport

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	thumbnailDomain "filetug/internal/domain/thumbnail"
	"filetug/internal/imaging"
)

// ThumbnailPath is the URL the frontend loads thumbnails from
const ThumbnailPath = "/thumbnail"

// ThumbnailHandler serves cached thumbnails to the webview. Any request it
// cannot answer with an image gets a 404 so the UI shows the original file.
type ThumbnailHandler struct {
	provider thumbnailDomain.Provider
	logger   *slog.Logger
}

func NewThumbnailHandler(provider thumbnailDomain.Provider, logger *slog.Logger) *ThumbnailHandler {
	return &ThumbnailHandler{
		provider: provider,
		logger:   logger,
	}
}

func (h *ThumbnailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != ThumbnailPath {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	path := query.Get("path")
	if path == "" {
		http.Error(w, "missing path", http.StatusBadRequest)
		return
	}
	width, err := dimension(query.Get("w"))
	if err != nil {
		http.Error(w, "invalid width", http.StatusBadRequest)
		return
	}
	height, err := dimension(query.Get("h"))
	if err != nil {
		http.Error(w, "invalid height", http.StatusBadRequest)
		return
	}

	img, ok := h.provider.Thumbnail(path, thumbnailDomain.Size{Width: width, Height: height})
	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := imaging.EncodePNG(&buf, img); err != nil {
		h.logger.Error("Failed to encode thumbnail response", "path", path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		w.Write(buf.Bytes())
	}
}

// dimension parses a size parameter; missing means default
func dimension(s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	d, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if !thumbnailDomain.ValidDimension(d) {
		return 0, fmt.Errorf("dimension %d out of range", d)
	}
	return d, nil
}
