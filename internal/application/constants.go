package application

const (
	// Window constants
	WindowTitle  = "Filetug"
	WindowWidth  = 480
	WindowHeight = 800

	// Thumbnails requested by the grid view
	GridThumbnailSize = 120
)
