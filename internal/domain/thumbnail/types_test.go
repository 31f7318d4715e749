package thumbnail

import (
	"path/filepath"
	"testing"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/photos/a.jpg", true},
		{"/photos/a.JPEG", true},
		{"/photos/a.Png", true},
		{"/photos/anim.gif", true},
		{"/photos/logo.svg", true},
		{"/photos/notes.txt", false},
		{"/photos/raw.webp", false},
		{"/photos/jpg", false},
		{"/photos/archive.jpg.zip", false},
	}

	for _, tt := range tests {
		if got := IsSupported(tt.path); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCachePath(t *testing.T) {
	src := filepath.Join("/photos", "a.jpg")
	want := filepath.Join("/photos", ".thumbs", "a.jpg.cache")

	if got := CachePath(src); got != want {
		t.Errorf("CachePath(%q) = %q, want %q", src, got, want)
	}
	if got := CacheDir(src); got != filepath.Join("/photos", ".thumbs") {
		t.Errorf("CacheDir(%q) = %q", src, got)
	}
}

func TestSizeNormalize(t *testing.T) {
	tests := []struct {
		in, want Size
	}{
		{Size{-1, -1}, Size{120, 120}},
		{Size{200, -1}, Size{200, 120}},
		{Size{0, 64}, Size{120, 64}},
		{Size{32, 48}, Size{32, 48}},
		{Size{1 << 31, 1 << 31}, Size{1024, 1024}},
		{Size{4096, 10}, Size{1024, 10}},
	}

	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("%+v.Normalize() = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestValidDimension(t *testing.T) {
	tests := []struct {
		d    int
		want bool
	}{
		{-1, true},
		{0, true},
		{120, true},
		{1024, true},
		{1025, false},
		{-2, false},
		{1 << 31, false},
	}

	for _, tt := range tests {
		if got := ValidDimension(tt.d); got != tt.want {
			t.Errorf("ValidDimension(%d) = %v, want %v", tt.d, got, tt.want)
		}
	}
}
