package services

import (
	"encoding/json"
	"log/slog"
	"math"
	"path/filepath"
	"sync"

	"filetug/internal/common"
	"filetug/internal/domain/settings"
)

type definition struct {
	group  settings.Group
	def    func(homeDir string) any
	coerce func(any) (any, bool)
}

var definitions = map[settings.Key]definition{
	settings.KeyDirPath:                {settings.GroupNone, func(home string) any { return home }, coercePath},
	settings.KeyDefaultViewMode:        {settings.GroupDirectoryView, constant(settings.ViewGrid), coerceEnum(settings.ParseViewMode)},
	settings.KeyShowShortcutsAtStartup: {settings.GroupDirectoryView, constant(true), coerceBool},
	settings.KeyShowHiddenFiles:        {settings.GroupDirectoryView, constant(false), coerceBool},
	settings.KeyShowDirHeader:          {settings.GroupDirectoryView, constant(true), coerceBool},
	settings.KeyGalleryMode:            {settings.GroupDirectoryView, constant(true), coerceBool},
	settings.KeyDisplayThumbnails:      {settings.GroupNone, constant(true), coerceBool},
	settings.KeyCacheThumbnails:        {settings.GroupNone, constant(false), coerceBool},
	settings.KeySortBy:                 {settings.GroupDirectoryView, constant(settings.SortByName), coerceEnum(settings.ParseSortBy)},
	settings.KeySortOrder:              {settings.GroupDirectoryView, constant(settings.SortAscending), coerceEnum(settings.ParseSortOrder)},
	settings.KeyDirOrder:               {settings.GroupDirectoryView, constant(settings.DirsFirst), coerceEnum(settings.ParseDirOrder)},
	settings.KeyFileOverlayPeriod:      {settings.GroupFileDisplay, constant(2.0), coerceDuration},
	settings.KeyBrowseAllFileTypes:     {settings.GroupFileDisplay, constant(false), coerceBool},
	settings.KeyShowBlackBackground:    {settings.GroupFileDisplay, constant(true), coerceBool},
}

type subscriber struct {
	id int
	fn func(settings.Change)
}

// SettingsStore holds the user preferences of the running process. Values
// are loaded once from the repository, written through on every change and
// announced to subscribers.
type SettingsStore struct {
	repo   settings.Repository
	logger *slog.Logger

	mu          sync.RWMutex
	values      map[settings.Key]any
	subscribers []subscriber
	nextID      int

	writeMu sync.Mutex
}

// NewSettingsStore loads persisted values and falls back to defaults for
// anything missing or unreadable. homeDir is the default for dirPath.
func NewSettingsStore(repo settings.Repository, homeDir string, logger *slog.Logger) *SettingsStore {
	s := &SettingsStore{
		repo:   repo,
		logger: logger,
		values: make(map[settings.Key]any, len(definitions)),
	}

	for key, def := range definitions {
		s.values[key] = def.def(homeDir)
	}

	stored, err := repo.Load()
	if err != nil {
		logger.Error("Failed to load settings, using defaults", "error", common.NewSettingsError("load", "", err))
		return s
	}

	for key, raw := range stored {
		def, ok := definitions[key]
		if !ok {
			logger.Debug("Ignoring unknown stored setting", "key", key)
			continue
		}
		var decoded any
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			logger.Warn("Ignoring unreadable stored setting", "key", key, "error", err)
			continue
		}
		value, ok := def.coerce(decoded)
		if !ok {
			logger.Warn("Ignoring invalid stored setting", "key", key, "value", raw)
			continue
		}
		s.values[key] = value
	}

	return s
}

// Get returns the current value for key, or nil for unknown keys
func (s *SettingsStore) Get(key settings.Key) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Snapshot returns a copy of all current values
func (s *SettingsStore) Snapshot() map[settings.Key]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[settings.Key]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Set stores value for key and reports whether anything changed. Unknown
// keys, invalid values and values equal to the current one are ignored
// without notification. The repository write happens outside the read lock,
// so getters never wait for it. A failed write is logged; the new value stays
// in effect for this process.
func (s *SettingsStore) Set(key settings.Key, value any) bool {
	def, ok := definitions[key]
	if !ok {
		s.logger.Warn("Ignoring unknown setting", "key", key)
		return false
	}
	v, ok := def.coerce(value)
	if !ok {
		s.logger.Debug("Ignoring invalid setting value", "key", key, "value", value)
		return false
	}

	s.mu.Lock()
	if s.values[key] == v {
		s.mu.Unlock()
		return false
	}
	s.values[key] = v
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	// Writers persist the latest value under writeMu, so the repository ends
	// up with whichever value was applied last.
	s.writeMu.Lock()
	err := s.persist(key, s.Get(key))
	s.writeMu.Unlock()
	if err != nil {
		s.logger.Error("Failed to persist setting", "error", err)
	}

	change := settings.Change{Key: key, Value: v, Group: def.group}
	for _, sub := range subs {
		sub.fn(change)
	}
	return true
}

// Subscribe registers fn for change notifications. Callbacks run on the
// goroutine that called Set, after the store lock has been released.
func (s *SettingsStore) Subscribe(fn func(settings.Change)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// MoveUp navigates dirPath to its parent directory. Nothing happens at the
// filesystem root.
func (s *SettingsStore) MoveUp() bool {
	current := filepath.Clean(s.DirPath())
	parent := filepath.Dir(current)
	if parent == current {
		return false
	}
	return s.SetDirPath(parent)
}

func (s *SettingsStore) persist(key settings.Key, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return common.NewSettingsError("encode", string(key), err)
	}
	if err := s.repo.Save(key, string(raw)); err != nil {
		return common.NewSettingsError("save", string(key), err)
	}
	return nil
}

func (s *SettingsStore) boolValue(key settings.Key) bool {
	v, _ := s.Get(key).(bool)
	return v
}

func (s *SettingsStore) DirPath() string {
	v, _ := s.Get(settings.KeyDirPath).(string)
	return v
}

func (s *SettingsStore) DefaultViewMode() settings.ViewMode {
	v, _ := s.Get(settings.KeyDefaultViewMode).(settings.ViewMode)
	return v
}

func (s *SettingsStore) SortBy() settings.SortBy {
	v, _ := s.Get(settings.KeySortBy).(settings.SortBy)
	return v
}

func (s *SettingsStore) SortOrder() settings.SortOrder {
	v, _ := s.Get(settings.KeySortOrder).(settings.SortOrder)
	return v
}

func (s *SettingsStore) DirOrder() settings.DirOrder {
	v, _ := s.Get(settings.KeyDirOrder).(settings.DirOrder)
	return v
}

// FileOverlayPeriod is how long the file overlay stays visible, in seconds
func (s *SettingsStore) FileOverlayPeriod() float64 {
	v, _ := s.Get(settings.KeyFileOverlayPeriod).(float64)
	return v
}

func (s *SettingsStore) ShowShortcutsAtStartup() bool {
	return s.boolValue(settings.KeyShowShortcutsAtStartup)
}

func (s *SettingsStore) ShowHiddenFiles() bool { return s.boolValue(settings.KeyShowHiddenFiles) }
func (s *SettingsStore) ShowDirHeader() bool   { return s.boolValue(settings.KeyShowDirHeader) }
func (s *SettingsStore) GalleryMode() bool     { return s.boolValue(settings.KeyGalleryMode) }

func (s *SettingsStore) DisplayThumbnails() bool {
	return s.boolValue(settings.KeyDisplayThumbnails)
}

// CacheThumbnails is the gate of the thumbnail cache
func (s *SettingsStore) CacheThumbnails() bool {
	return s.boolValue(settings.KeyCacheThumbnails)
}

func (s *SettingsStore) BrowseAllFileTypes() bool {
	return s.boolValue(settings.KeyBrowseAllFileTypes)
}

func (s *SettingsStore) ShowBlackBackground() bool {
	return s.boolValue(settings.KeyShowBlackBackground)
}

func (s *SettingsStore) SetDirPath(path string) bool {
	return s.Set(settings.KeyDirPath, path)
}

func (s *SettingsStore) SetDefaultViewMode(mode settings.ViewMode) bool {
	return s.Set(settings.KeyDefaultViewMode, mode)
}

func (s *SettingsStore) SetSortBy(by settings.SortBy) bool {
	return s.Set(settings.KeySortBy, by)
}

func (s *SettingsStore) SetSortOrder(order settings.SortOrder) bool {
	return s.Set(settings.KeySortOrder, order)
}

func (s *SettingsStore) SetDirOrder(order settings.DirOrder) bool {
	return s.Set(settings.KeyDirOrder, order)
}

func (s *SettingsStore) SetFileOverlayPeriod(seconds float64) bool {
	return s.Set(settings.KeyFileOverlayPeriod, seconds)
}

func (s *SettingsStore) SetShowShortcutsAtStartup(show bool) bool {
	return s.Set(settings.KeyShowShortcutsAtStartup, show)
}

func (s *SettingsStore) SetShowHiddenFiles(show bool) bool {
	return s.Set(settings.KeyShowHiddenFiles, show)
}

func (s *SettingsStore) SetShowDirHeader(show bool) bool {
	return s.Set(settings.KeyShowDirHeader, show)
}

func (s *SettingsStore) SetGalleryMode(enabled bool) bool {
	return s.Set(settings.KeyGalleryMode, enabled)
}

func (s *SettingsStore) SetDisplayThumbnails(display bool) bool {
	return s.Set(settings.KeyDisplayThumbnails, display)
}

func (s *SettingsStore) SetCacheThumbnails(enabled bool) bool {
	return s.Set(settings.KeyCacheThumbnails, enabled)
}

func (s *SettingsStore) SetBrowseAllFileTypes(all bool) bool {
	return s.Set(settings.KeyBrowseAllFileTypes, all)
}

func (s *SettingsStore) SetShowBlackBackground(show bool) bool {
	return s.Set(settings.KeyShowBlackBackground, show)
}

func constant(v any) func(string) any {
	return func(string) any { return v }
}

func coerceBool(v any) (any, bool) {
	b, ok := v.(bool)
	return b, ok
}

func coercePath(v any) (any, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil, false
	}
	return s, true
}

func coerceDuration(v any) (any, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	default:
		return nil, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil, false
	}
	return f, true
}

func coerceEnum[T ~string](parse func(string) (T, error)) func(any) (any, bool) {
	return func(v any) (any, bool) {
		var s string
		switch x := v.(type) {
		case T:
			s = string(x)
		case string:
			s = x
		default:
			return nil, false
		}
		parsed, err := parse(s)
		if err != nil {
			return nil, false
		}
		return parsed, true
	}
}
