package common

const (
	// Thumbnail constants
	DefaultThumbnailSize = 120
	MaxThumbnailSize     = 1024
	MaxDecodePixels      = 40_000_000
	ThumbnailDirName     = ".thumbs"
	ThumbnailFileSuffix  = ".cache"
	MaxConcurrencyLimit  = 8

	// Settings persistence scope
	Organization = "Matoking"
	Application  = "Filetug"

	// File operation constants
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644

	// Event names
	EventSettingsChanged       = "settings:changed"
	EventDirectoryViewSettings = "settings:directoryView"
	EventFileDisplaySettings   = "settings:fileDisplay"
	EventThumbnailProgress     = "thumbnails:progress"
)
