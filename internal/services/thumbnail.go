package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"filetug/internal/common"
	"filetug/internal/concurrency"
	"filetug/internal/domain/thumbnail"
	"filetug/internal/imaging"

	"github.com/peterbourgon/diskv/v3"
	"golang.org/x/sync/singleflight"
)

// ThumbnailOptions tunes cache validation
type ThumbnailOptions struct {
	// CheckModTime treats a cache entry older than its source as a miss.
	// Off by default: an entry stays valid for as long as it decodes.
	CheckModTime bool
}

// ThumbnailService produces thumbnails and caches them as PNG files in a
// hidden .thumbs folder next to each source image
type ThumbnailService struct {
	gate    thumbnail.Gate
	logger  *slog.Logger
	options ThumbnailOptions

	mu     sync.Mutex
	stores map[string]*diskv.Diskv

	inflight singleflight.Group
}

// NewThumbnailService creates a new thumbnail service. gate is consulted on
// every request.
func NewThumbnailService(gate thumbnail.Gate, logger *slog.Logger, options ThumbnailOptions) *ThumbnailService {
	return &ThumbnailService{
		gate:    gate,
		logger:  logger,
		options: options,
		stores:  make(map[string]*diskv.Diskv),
	}
}

// Thumbnail returns the cached thumbnail for sourcePath, generating it on a
// miss. It returns false when caching is disabled, the file is not a
// supported image or cannot be decoded; the caller then shows the original.
// Concurrent calls for the same file share one lookup, so a caller asking
// for a different size at the same moment receives the first caller's
// dimensions, just as an existing entry is returned whatever size is asked.
// The returned image may be shared between callers and must not be modified.
func (s *ThumbnailService) Thumbnail(sourcePath string, size thumbnail.Size) (image.Image, bool) {
	if !s.gate.CacheThumbnails() {
		return nil, false
	}
	if !thumbnail.IsSupported(sourcePath) {
		return nil, false
	}

	absPath, err := filepath.Abs(sourcePath)
	if err != nil {
		s.logger.Debug("Cannot resolve thumbnail source", "path", sourcePath, "error", err)
		return nil, false
	}
	size = size.Normalize()

	v, _, _ := s.inflight.Do(thumbnail.CachePath(absPath), func() (any, error) {
		return s.load(absPath, size), nil
	})
	img, ok := v.(image.Image)
	if !ok || img == nil {
		return nil, false
	}
	return img, true
}

func (s *ThumbnailService) load(sourcePath string, size thumbnail.Size) image.Image {
	cacheDir := thumbnail.CacheDir(sourcePath)
	if err := os.MkdirAll(cacheDir, common.DefaultDirPermissions); err != nil {
		s.logger.Warn("Failed to create thumbnail directory", "dir", cacheDir, "error", err)
	}

	store := s.storeFor(cacheDir)
	key := thumbnail.CacheKey(sourcePath)

	if img := s.readCached(store, sourcePath, key); img != nil {
		return img
	}

	src, err := imaging.Decode(sourcePath, size.Width, size.Height)
	if err != nil {
		s.logger.Debug("Cannot decode thumbnail source", "path", sourcePath, "error", err)
		return nil
	}
	scaled := imaging.Fill(src, size.Width, size.Height)

	var buf bytes.Buffer
	if err := imaging.EncodePNG(&buf, scaled); err != nil {
		s.logger.Warn("Failed to encode thumbnail", "path", sourcePath, "error", err)
		return scaled
	}
	if err := store.Write(key, buf.Bytes()); err != nil {
		s.logger.Warn("Failed to persist thumbnail", "path", sourcePath, "error", err)
	}

	return scaled
}

func (s *ThumbnailService) readCached(store *diskv.Diskv, sourcePath, key string) image.Image {
	rc, err := store.ReadStream(key, true)
	if err != nil {
		return nil
	}
	defer rc.Close()

	if s.options.CheckModTime && s.isStale(sourcePath) {
		s.logger.Debug("Thumbnail older than source", "path", sourcePath)
		return nil
	}

	img, _, err := image.Decode(rc)
	if err != nil {
		s.logger.Debug("Discarding unreadable thumbnail", "path", sourcePath, "error", err)
		return nil
	}
	return img
}

func (s *ThumbnailService) isStale(sourcePath string) bool {
	srcInfo, err := os.Stat(sourcePath)
	if err != nil {
		return false
	}
	cacheInfo, err := os.Stat(thumbnail.CachePath(sourcePath))
	if err != nil {
		return true
	}
	return cacheInfo.ModTime().Before(srcInfo.ModTime())
}

// storeFor returns the store rooted at cacheDir. Writes go to a temp file in
// the same directory and are renamed into place.
func (s *ThumbnailService) storeFor(cacheDir string) *diskv.Diskv {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.stores[cacheDir]; ok {
		return store
	}
	store := diskv.New(diskv.Options{
		BasePath:     cacheDir,
		TempDir:      cacheDir,
		Transform:    func(string) []string { return nil },
		CacheSizeMax: 0,
		PathPerm:     common.DefaultDirPermissions,
		FilePerm:     common.DefaultFilePermissions,
	})
	s.stores[cacheDir] = store
	return store
}

// Stats reports the cache entries stored for images in dir
func (s *ThumbnailService) Stats(dir string) (thumbnail.Stats, error) {
	cacheDir := filepath.Join(dir, common.ThumbnailDirName)
	stats := thumbnail.Stats{Dir: cacheDir}

	if _, err := os.Stat(cacheDir); err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("reading thumbnail directory: %w", err)
	}

	store := s.storeFor(cacheDir)
	cancel := make(chan struct{})
	defer close(cancel)

	for key := range store.Keys(cancel) {
		if !strings.HasSuffix(key, common.ThumbnailFileSuffix) {
			continue
		}
		info, err := os.Stat(filepath.Join(cacheDir, key))
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()
	}
	return stats, nil
}

// Purge removes the cache folder of dir. Thumbnail requests never delete
// entries; this exists for maintenance tools.
func (s *ThumbnailService) Purge(dir string) error {
	cacheDir := filepath.Join(dir, common.ThumbnailDirName)
	store := s.storeFor(cacheDir)
	if err := store.EraseAll(); err != nil {
		return fmt.Errorf("clearing thumbnail directory: %w", err)
	}
	return nil
}

// PrefetchService warms the cache for a whole directory, the way a grid view
// requests every visible cell at once
type PrefetchService struct {
	thumbnails thumbnail.Provider
	logger     *slog.Logger
}

// NewPrefetchService creates a new prefetch service
func NewPrefetchService(thumbnails thumbnail.Provider, logger *slog.Logger) *PrefetchService {
	return &PrefetchService{
		thumbnails: thumbnails,
		logger:     logger,
	}
}

// Prefetch generates thumbnails for every supported image directly inside
// dir
func (s *PrefetchService) Prefetch(ctx context.Context, dir string, size thumbnail.Size, progress func(thumbnail.ItemResult)) thumbnail.BatchResult {
	if dir == "" {
		return thumbnail.BatchResult{Error: common.ErrDirectoryRequired.Error()}
	}

	files, err := ListImages(dir)
	if err != nil {
		s.logger.Error("Failed to list directory", "dir", dir, "error", err)
		return thumbnail.BatchResult{Error: err.Error()}
	}
	if len(files) == 0 {
		return thumbnail.BatchResult{Success: true}
	}

	pool := concurrency.NewWorkerPool(func(_ context.Context, item concurrency.WorkItem) (string, error) {
		if _, ok := s.thumbnails.Thumbnail(item.FilePath, size); ok {
			return thumbnail.StatusCompleted, nil
		}
		return thumbnail.StatusSkipped, nil
	}, s.logger)

	result := pool.ProcessBatch(ctx, files, progress)
	s.logger.Info("Thumbnail prefetch finished",
		"dir", dir,
		"total", result.Total,
		"completed", result.Completed,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return result
}

// ListImages returns the supported image files directly inside dir, sorted
// by name
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !thumbnail.IsSupported(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
