package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"filetug/internal/common"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Decode reads the image at path. Raster formats go through the standard
// decoders and are rejected when their header declares more than
// MaxDecodePixels. SVG files are rasterised just large enough to cover a
// width x height box.
func Decode(path string, width, height int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return decodeSVG(f, width, height)
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > common.MaxDecodePixels {
		return nil, fmt.Errorf("%w: %s is %dx%d", common.ErrUnsupportedImage, filepath.Base(path), cfg.Width, cfg.Height)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

func decodeSVG(r io.Reader, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnsupportedImage, err)
	}
	if width <= 0 || height <= 0 {
		width, height = common.DefaultThumbnailSize, common.DefaultThumbnailSize
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if !(vw > 0 && vh > 0) || math.IsInf(vw, 0) || math.IsInf(vh, 0) {
		vw, vh = float64(width), float64(height)
	}

	// cover-fit the view box into the requested box
	scale := math.Max(float64(width)/vw, float64(height)/vh)
	fw := math.Max(float64(width), math.Round(vw*scale))
	fh := math.Max(float64(height), math.Round(vh*scale))
	if fw*fh > common.MaxDecodePixels {
		return nil, fmt.Errorf("%w: svg view box %gx%g", common.ErrUnsupportedImage, icon.ViewBox.W, icon.ViewBox.H)
	}
	w, h := int(fw), int(fh)

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	return rgba, nil
}
