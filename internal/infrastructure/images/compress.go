package images

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"

	"golang.org/x/image/draw"
)

const (
	// DefaultQuality is the JPEG quality used for uploads, in 0..1.
	DefaultQuality = 0.8
	// DefaultMaxWidth bounds both sides of an uploaded image.
	DefaultMaxWidth = 1200
)

// Compress decodes an image from src, scales it so neither side exceeds
// maxWidth and writes it to dst as JPEG. quality is in 0..1; out of range
// values fall back to DefaultQuality. Images already within bounds keep
// their size.
func Compress(src io.Reader, dst io.Writer, quality float64, maxWidth int) (Size, error) {
	if quality <= 0 || quality > 1 {
		quality = DefaultQuality
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return Size{}, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Size{}, fmt.Errorf("decode image: empty bounds")
	}

	ratio := min(float64(maxWidth)/float64(w), float64(maxWidth)/float64(h), 1)
	outW := max(1, int(float64(w)*ratio))
	outH := max(1, int(float64(h)*ratio))

	// JPEG has no alpha; flatten onto white.
	out := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Over, nil)

	q := int(quality*100 + 0.5)
	if err := jpeg.Encode(dst, out, &jpeg.Options{Quality: q}); err != nil {
		return Size{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return Size{Width: outW, Height: outH}, nil
}
