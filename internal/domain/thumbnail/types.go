package thumbnail

import (
	"context"
	"image"
	"path/filepath"
	"strings"

	"filetug/internal/common"
)

// Size is the requested thumbnail box. Non-positive dimensions mean "use
// the default".
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultSize is what callers get when they pass -1 for both dimensions.
var DefaultSize = Size{Width: common.DefaultThumbnailSize, Height: common.DefaultThumbnailSize}

// Normalize replaces missing dimensions with the default and caps both at
// MaxThumbnailSize.
func (s Size) Normalize() Size {
	s.Width = normalizeDimension(s.Width)
	s.Height = normalizeDimension(s.Height)
	return s
}

// ValidDimension reports whether d may be passed as a requested dimension
func ValidDimension(d int) bool {
	return d >= -1 && d <= common.MaxThumbnailSize
}

func normalizeDimension(d int) int {
	if d <= 0 {
		return common.DefaultThumbnailSize
	}
	return min(d, common.MaxThumbnailSize)
}

var supportedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".svg":  {},
}

// IsSupported reports whether path has an image extension thumbnails can be
// generated for.
func IsSupported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// CacheDir returns the hidden cache directory for a source file.
func CacheDir(sourcePath string) string {
	return filepath.Join(filepath.Dir(sourcePath), common.ThumbnailDirName)
}

// CachePath returns the cache file location for a source file.
func CachePath(sourcePath string) string {
	return filepath.Join(CacheDir(sourcePath), CacheKey(sourcePath))
}

// CacheKey is the file name of the cache entry inside CacheDir.
func CacheKey(sourcePath string) string {
	return filepath.Base(sourcePath) + common.ThumbnailFileSuffix
}

// Gate decides whether the cache is enabled for the current request.
type Gate interface {
	CacheThumbnails() bool
}

// Provider returns a thumbnail or false when none could be produced and the
// caller has to fall back to the full image.
type Provider interface {
	Thumbnail(sourcePath string, size Size) (image.Image, bool)
}

type Prefetcher interface {
	Prefetch(ctx context.Context, dir string, size Size, progress func(ItemResult)) BatchResult
}

// Stats describes the cache folder of a single directory.
type Stats struct {
	Dir        string `json:"dir"`
	Entries    int    `json:"entries"`
	TotalBytes int64  `json:"totalBytes"`
}

// ItemResult is the outcome of one prefetch item.
type ItemResult struct {
	ItemID   string `json:"item_id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

const (
	StatusCompleted = "completed"
	StatusSkipped   = "skipped"
	StatusError     = "error"
)

// BatchResult summarises a prefetch run.
type BatchResult struct {
	Success   bool         `json:"success"`
	Results   []ItemResult `json:"results"`
	Total     int          `json:"total"`
	Completed int          `json:"completed"`
	Skipped   int          `json:"skipped"`
	Failed    int          `json:"failed"`
	Error     string       `json:"error,omitempty"`
}
