package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"filetug/internal/common"
	"filetug/internal/domain/bookmarks"
)

// BookmarkService keeps directory bookmarks in a JSON file that is rewritten
// completely after every change
type BookmarkService struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]string
}

// NewBookmarkService loads the bookmark file at path. A missing file is an
// empty bookmark list; an unreadable one is logged and treated the same way.
func NewBookmarkService(path string, logger *slog.Logger) *BookmarkService {
	s := &BookmarkService{
		path:    path,
		logger:  logger,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to read bookmarks", "path", path, "error", err)
		}
		return s
	}

	var list []bookmarks.Bookmark
	if err := json.Unmarshal(data, &list); err != nil {
		logger.Warn("Ignoring corrupt bookmarks file", "path", path, "error", err)
		return s
	}
	for _, b := range list {
		s.entries[b.Path] = b.Title
	}

	return s
}

// List returns all bookmarks ordered by path
func (s *BookmarkService) List() []bookmarks.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked()
}

// Add stores a bookmark, replacing the title of an existing one for the same
// path
func (s *BookmarkService) Add(path, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[path] = title
	return s.saveLocked()
}

// Remove deletes the bookmark for path. Removing an unknown path does
// nothing.
func (s *BookmarkService) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[path]; !ok {
		return nil
	}
	delete(s.entries, path)
	return s.saveLocked()
}

// Contains reports whether path is bookmarked
func (s *BookmarkService) Contains(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[path]
	return ok
}

func (s *BookmarkService) listLocked() []bookmarks.Bookmark {
	list := make([]bookmarks.Bookmark, 0, len(s.entries))
	for path, title := range s.entries {
		list = append(list, bookmarks.Bookmark{Path: path, Title: title})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	return list
}

func (s *BookmarkService) saveLocked() error {
	data, err := json.MarshalIndent(s.listLocked(), "", "    ")
	if err != nil {
		return fmt.Errorf("encoding bookmarks: %w", err)
	}
	if err := common.WriteFileAtomic(s.path, data); err != nil {
		s.logger.Error("Failed to save bookmarks", "path", s.path, "error", err)
		return fmt.Errorf("saving bookmarks: %w", err)
	}
	return nil
}
