package bookmarks

// Bookmark is a directory shortcut with a display title.
type Bookmark struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

type Service interface {
	List() []Bookmark
	Add(path, title string) error
	Remove(path string) error
	Contains(path string) bool
}
