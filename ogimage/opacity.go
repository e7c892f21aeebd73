package ogimage

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// WithOpacity returns a non-premultiplied copy of img whose alpha channel is
// scaled by f. f is clamped to [0, 1]. Color channels are copied untouched.
func WithOpacity(img image.Image, f float64) *image.NRGBA {
	f = math.Max(0, math.Min(1, f))

	bounds := img.Bounds()
	dst := image.NewNRGBA(bounds)
	if src, ok := img.(*image.NRGBA); ok {
		// Copy rows directly: a draw through the premultiplied path would
		// round color channels of translucent pixels.
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(bounds.Min.X, y):dst.PixOffset(bounds.Max.X, y)],
				src.Pix[src.PixOffset(bounds.Min.X, y):src.PixOffset(bounds.Max.X, y)])
		}
	} else {
		draw.Draw(dst, bounds, img, bounds.Min, draw.Src)
	}

	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = uint8(math.Round(float64(dst.Pix[i]) * f))
	}
	return dst
}
