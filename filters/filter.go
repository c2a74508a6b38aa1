// Package filters - pixel transforms applied by the pipeline.
//
// Every filter mutates the buffer it is given. Filters that need their input
// while producing output compute into a separate buffer and move it into place
// when done, so a caller always observes either the old or the new image.
package filters

import (
	"github.com/nvr-ai/go-bmpfilter/images"
)

// Filter is a single image transform.
type Filter interface {
	// Name returns the registry name of the filter.
	Name() string
	// Apply transforms buf in place.
	Apply(buf *images.PixelBuffer)
}

// Kernel is a dense matrix of convolution weights.
type Kernel struct {
	rows    int
	cols    int
	weights []float64
}

// NewKernel builds a kernel from its rows. All rows must have the same length.
//
// Arguments:
// - rows: The weights, one slice per kernel row.
//
// Returns:
// - The kernel.
//
// @example
// k := NewKernel([][]float64{{0, -1, 0}, {-1, 5, -1}, {0, -1, 0}})
func NewKernel(rows [][]float64) Kernel {
	k := Kernel{rows: len(rows)}
	if k.rows == 0 {
		return k
	}
	k.cols = len(rows[0])
	k.weights = make([]float64, 0, k.rows*k.cols)
	for _, r := range rows {
		if len(r) != k.cols {
			panic("filters: ragged kernel rows")
		}
		k.weights = append(k.weights, r...)
	}
	return k
}

// Rows returns the kernel height.
func (k Kernel) Rows() int { return k.rows }

// Cols returns the kernel width.
func (k Kernel) Cols() int { return k.cols }

// At returns the weight in row i, column j.
func (k Kernel) At(i, j int) float64 { return k.weights[i*k.cols+j] }

// Transpose returns the kernel with rows and columns exchanged.
func (k Kernel) Transpose() Kernel {
	t := Kernel{rows: k.cols, cols: k.rows, weights: make([]float64, len(k.weights))}
	for i := 0; i < k.rows; i++ {
		for j := 0; j < k.cols; j++ {
			t.weights[j*t.cols+i] = k.weights[i*k.cols+j]
		}
	}
	return t
}

// Convolve returns the weighted neighborhood sum of every pixel of src.
//
// The kernel is centred on each pixel (radius rows/2 and cols/2). Neighbors
// outside the image are clamped to the nearest edge row or column. Channel
// sums are rounded and clamped to [0, 255]. src is only read.
//
// Arguments:
// - src: Source pixels.
// - k: Convolution kernel.
//
// Returns:
// - A new buffer of the same shape.
func Convolve(src *images.PixelBuffer, k Kernel) *images.PixelBuffer {
	height, width := src.Height(), src.Width()
	dst := images.NewPixelBuffer(height, width, images.Pixel{})
	if dst.Empty() || k.rows == 0 || k.cols == 0 {
		return src.Clone()
	}

	images.Parallel(height, func(partStart, partEnd int) {
		for row := partStart; row < partEnd; row++ {
			out := dst.Row(row)
			for col := range out {
				out[col] = convolveAt(src, row, col, k)
			}
		}
	})
	return dst
}

func convolveAt(src *images.PixelBuffer, row, col int, k Kernel) images.Pixel {
	height, width := src.Height(), src.Width()
	rowRadius, colRadius := k.rows/2, k.cols/2

	var red, green, blue float64
	for i := 0; i < k.rows; i++ {
		y := images.MapCoord(row+i-rowRadius, height, images.ClampEdgeMode)
		line := src.Row(y)
		for j := 0; j < k.cols; j++ {
			w := k.weights[i*k.cols+j]
			if w == 0 {
				continue
			}
			p := line[images.MapCoord(col+j-colRadius, width, images.ClampEdgeMode)]
			red += w * float64(p.Red)
			green += w * float64(p.Green)
			blue += w * float64(p.Blue)
		}
	}

	return images.Pixel{
		Red:   images.ToChannel(red),
		Green: images.ToChannel(green),
		Blue:  images.ToChannel(blue),
	}
}
