package settings

import (
	"fmt"

	"filetug/internal/common"
)

// Key names a persisted preference.
type Key string

const (
	KeyDirPath                Key = "dirPath"
	KeyDefaultViewMode        Key = "defaultViewMode"
	KeyShowShortcutsAtStartup Key = "showShortcutsAtStartup"
	KeyShowHiddenFiles        Key = "showHiddenFiles"
	KeyShowDirHeader          Key = "showDirHeader"
	KeyGalleryMode            Key = "galleryMode"
	KeyDisplayThumbnails      Key = "displayThumbnails"
	KeyCacheThumbnails        Key = "cacheThumbnails"
	KeySortBy                 Key = "sortBy"
	KeySortOrder              Key = "sortOrder"
	KeyDirOrder               Key = "dirOrder"
	KeyFileOverlayPeriod      Key = "fileOverlayPeriod"
	KeyBrowseAllFileTypes     Key = "browseAllFileTypes"
	KeyShowBlackBackground    Key = "showBlackBackground"
)

// AllKeys lists every recognised key in display order.
var AllKeys = []Key{
	KeyDirPath,
	KeyDefaultViewMode,
	KeyShowShortcutsAtStartup,
	KeyShowHiddenFiles,
	KeyShowDirHeader,
	KeyGalleryMode,
	KeyDisplayThumbnails,
	KeyCacheThumbnails,
	KeySortBy,
	KeySortOrder,
	KeyDirOrder,
	KeyFileOverlayPeriod,
	KeyBrowseAllFileTypes,
	KeyShowBlackBackground,
}

// Group is the coarse notification a change belongs to, in addition to the
// per-key one.
type Group string

const (
	GroupNone          Group = ""
	GroupDirectoryView Group = "directoryView"
	GroupFileDisplay   Group = "fileDisplay"
)

// Change is delivered to subscribers after a value has been stored.
type Change struct {
	Key   Key   `json:"key"`
	Value any   `json:"value"`
	Group Group `json:"group,omitempty"`
}

// Repository persists raw (JSON encoded) setting values.
type Repository interface {
	Load() (map[Key]string, error)
	Save(key Key, raw string) error
}

// Store is the live view of all settings shared by the UI and the thumbnail
// cache.
type Store interface {
	Get(key Key) any
	Set(key Key, value any) bool
	Snapshot() map[Key]any
	Subscribe(fn func(Change)) (unsubscribe func())
	DirPath() string
	SetDirPath(path string) bool
	MoveUp() bool
	CacheThumbnails() bool
}

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

func ParseViewMode(s string) (ViewMode, error) {
	switch v := ViewMode(s); v {
	case ViewGrid, ViewList:
		return v, nil
	}
	return "", fmt.Errorf("%w: view mode %q", common.ErrInvalidValue, s)
}

type SortBy string

const (
	SortByName SortBy = "name"
	SortByType SortBy = "type"
	SortBySize SortBy = "size"
	SortByTime SortBy = "time"
)

func ParseSortBy(s string) (SortBy, error) {
	switch v := SortBy(s); v {
	case SortByName, SortByType, SortBySize, SortByTime:
		return v, nil
	}
	return "", fmt.Errorf("%w: sort key %q", common.ErrInvalidValue, s)
}

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch v := SortOrder(s); v {
	case SortAscending, SortDescending:
		return v, nil
	}
	return "", fmt.Errorf("%w: sort order %q", common.ErrInvalidValue, s)
}

// DirOrder places directories before files, after them, or mixed in.
type DirOrder string

const (
	DirsFirst DirOrder = "first"
	DirsLast  DirOrder = "last"
	DirsMixed DirOrder = "none"
)

func ParseDirOrder(s string) (DirOrder, error) {
	switch v := DirOrder(s); v {
	case DirsFirst, DirsLast, DirsMixed:
		return v, nil
	}
	return "", fmt.Errorf("%w: directory order %q", common.ErrInvalidValue, s)
}
