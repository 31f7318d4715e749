package transport

import (
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	thumbnailDomain "filetug/internal/domain/thumbnail"
)

func TestThumbnailHandler_ServesPNG(t *testing.T) {
	provider := &fakeProvider{img: image.NewNRGBA(image.Rect(0, 0, 32, 24))}
	handler := NewThumbnailHandler(provider, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/thumbnail?path=/photos/a.jpg&w=32&h=24", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	if img.Bounds().Size() != image.Pt(32, 24) {
		t.Errorf("Unexpected size %v", img.Bounds().Size())
	}
	if provider.requested[0] != (thumbnailDomain.Size{Width: 32, Height: 24}) {
		t.Errorf("Unexpected requested size %+v", provider.requested[0])
	}
}

func TestThumbnailHandler_DefaultSize(t *testing.T) {
	provider := &fakeProvider{img: image.NewNRGBA(image.Rect(0, 0, 1, 1))}
	handler := NewThumbnailHandler(provider, discardLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/thumbnail?path=/photos/a.jpg", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if provider.requested[0] != (thumbnailDomain.Size{Width: -1, Height: -1}) {
		t.Errorf("Expected missing dimensions to be passed as -1, got %+v", provider.requested[0])
	}
}

func TestThumbnailHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		img    image.Image
		want   int
	}{
		{"no thumbnail", http.MethodGet, "/thumbnail?path=/photos/notes.txt", nil, http.StatusNotFound},
		{"other path", http.MethodGet, "/index.css", image.NewNRGBA(image.Rect(0, 0, 1, 1)), http.StatusNotFound},
		{"missing path", http.MethodGet, "/thumbnail", nil, http.StatusBadRequest},
		{"bad width", http.MethodGet, "/thumbnail?path=/a.png&w=wide", nil, http.StatusBadRequest},
		{"bad height", http.MethodGet, "/thumbnail?path=/a.png&h=1.5", nil, http.StatusBadRequest},
		{"oversized box", http.MethodGet, "/thumbnail?path=/a.png&w=2147483648&h=2147483648", nil, http.StatusBadRequest},
		{"width above limit", http.MethodGet, "/thumbnail?path=/a.png&w=1025", nil, http.StatusBadRequest},
		{"negative height", http.MethodGet, "/thumbnail?path=/a.png&h=-5", nil, http.StatusBadRequest},
		{"post", http.MethodPost, "/thumbnail?path=/a.png", nil, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewThumbnailHandler(&fakeProvider{img: tt.img}, discardLogger())
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			if rec.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
