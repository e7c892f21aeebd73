package ogimage

import (
	"image"
	"image/color"
)

// Gradient returns an opaque w×h canvas filled with a vertical gradient from
// top (first row) towards bottom. Row y blends with factor y/h, so the last
// row stops one step short of bottom.
func Gradient(w, h int, top, bottom color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h)
		r, g, b := lerp(top.R, bottom.R, t), lerp(top.G, bottom.G, t), lerp(top.B, bottom.B, t)
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			row[x+0] = r
			row[x+1] = g
			row[x+2] = b
			row[x+3] = 0xff
		}
	}
	return img
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
