package images

import (
	"image"
	"image/color"
)

// ToRGBA renders the buffer as an upright image.
//
// The buffer is interpreted in bitmap file order: the first stored row is the
// bottom of the picture and each pixel's fields hold blue, green and red in
// that order. The result is meant for display and previews only.
//
// Arguments:
// - b: The buffer to render.
//
// Returns:
// - An opaque RGBA image of the same size.
//
// @example
// thumb := resize.Thumbnail(256, 256, ToRGBA(buf), resize.Lanczos3)
func ToRGBA(b *PixelBuffer) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	Parallel(b.height, func(partStart, partEnd int) {
		for row := partStart; row < partEnd; row++ {
			y := b.height - 1 - row
			for x, p := range b.Row(row) {
				dst.SetRGBA(x, y, color.RGBA{R: p.Blue, G: p.Green, B: p.Red, A: 255})
			}
		}
	})
	return dst
}

// FromImage builds a buffer from an image using the same conventions as
// ToRGBA, so FromImage(ToRGBA(b)) equals b.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	b := NewPixelBuffer(bounds.Dy(), bounds.Dx(), Pixel{})
	Parallel(b.height, func(partStart, partEnd int) {
		for row := partStart; row < partEnd; row++ {
			y := bounds.Max.Y - 1 - row
			dst := b.Row(row)
			for x := range dst {
				c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, y)).(color.RGBA)
				dst[x] = Pixel{Red: c.B, Green: c.G, Blue: c.R}
			}
		}
	})
	return b
}
