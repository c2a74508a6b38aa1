package filters

import (
	"math"

	"github.com/nvr-ai/go-bmpfilter/images"
)

// Luma weights (ITU-R BT.601), applied to the Red, Green and Blue fields.
const (
	RedWeight   = 0.299
	GreenWeight = 0.587
	BlueWeight  = 0.114
)

// Luma returns the rounded brightness of p.
func Luma(p images.Pixel) uint8 {
	return images.ToChannel(RedWeight*float64(p.Red) + GreenWeight*float64(p.Green) + BlueWeight*float64(p.Blue))
}

// mapPixels replaces every pixel of buf with fn(pixel).
func mapPixels(buf *images.PixelBuffer, fn func(images.Pixel) images.Pixel) {
	images.Parallel(buf.Height(), func(partStart, partEnd int) {
		for row := partStart; row < partEnd; row++ {
			line := buf.Row(row)
			for col, p := range line {
				line[col] = fn(p)
			}
		}
	})
}

// Negative inverts every channel.
type Negative struct{}

// NewNegative creates a Negative filter.
func NewNegative() *Negative { return &Negative{} }

// Name implements Filter.
func (*Negative) Name() string { return "neg" }

// Apply implements Filter.
func (*Negative) Apply(buf *images.PixelBuffer) {
	mapPixels(buf, func(p images.Pixel) images.Pixel {
		return images.Pixel{Red: math.MaxUint8 - p.Red, Green: math.MaxUint8 - p.Green, Blue: math.MaxUint8 - p.Blue}
	})
}

// Grayscale sets every channel to the pixel's luma.
type Grayscale struct{}

// NewGrayscale creates a Grayscale filter.
func NewGrayscale() *Grayscale { return &Grayscale{} }

// Name implements Filter.
func (*Grayscale) Name() string { return "gs" }

// Apply implements Filter.
func (*Grayscale) Apply(buf *images.PixelBuffer) {
	mapPixels(buf, gray)
}

func gray(p images.Pixel) images.Pixel {
	l := Luma(p)
	return images.Pixel{Red: l, Green: l, Blue: l}
}
