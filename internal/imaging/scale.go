package imaging

import (
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/nfnt/resize"
)

// Fill scales src so that it covers a width x height box while keeping its
// aspect ratio, then crops the overflow around the centre. The result is
// always exactly width x height.
func Fill(src image.Image, width, height int) image.Image {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw == 0 || sh == 0 || width <= 0 || height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	}

	// Compare sw/sh with width/height without floating point.
	var scaledW, scaledH int
	if sw*height >= sh*width {
		scaledH = height
		scaledW = max(width, roundDiv(sw*height, sh))
	} else {
		scaledW = width
		scaledH = max(height, roundDiv(sh*width, sw))
	}

	scaled := resize.Resize(uint(scaledW), uint(scaledH), src, resize.Lanczos3)

	sb := scaled.Bounds()
	offset := image.Pt(sb.Min.X+(sb.Dx()-width)/2, sb.Min.Y+(sb.Dy()-height)/2)

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), scaled, offset, draw.Src)
	return dst
}

// EncodePNG writes img as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}

func roundDiv(a, b int) int {
	return (a + b/2) / b
}
