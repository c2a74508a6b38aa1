package filters

import (
	"math"

	"github.com/nvr-ai/go-bmpfilter/images"
)

// Blur is a separable Gaussian blur.
type Blur struct {
	sigma      float64
	horizontal Kernel
	vertical   Kernel
}

// NewBlur creates a Gaussian blur with standard deviation sigma, which must be
// positive.
func NewBlur(sigma float64) *Blur {
	row := NewKernel([][]float64{GaussianKernel(sigma)})
	return &Blur{sigma: sigma, horizontal: row, vertical: row.Transpose()}
}

// Name implements Filter.
func (b *Blur) Name() string { return "blur" }

// Sigma returns the standard deviation of the kernel.
func (b *Blur) Sigma() float64 { return b.sigma }

// Apply blurs rows first, then columns of the horizontal result.
func (b *Blur) Apply(buf *images.PixelBuffer) {
	intermediate := Convolve(buf, b.horizontal)
	buf.Assign(Convolve(intermediate, b.vertical))
}

// GaussianKernel creates a 1D Gaussian kernel for separable filtering.
//
// The radius is ceil(3*sigma), since samples further away contribute almost
// nothing. The kernel is normalized to sum to 1.0.
//
// Arguments:
// - sigma: Standard deviation of the Gaussian.
//
// Returns:
// - The 2*radius+1 weights, centre in the middle.
//
// @example
// kernel := GaussianKernel(1.5) // 11 weights
func GaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	norm := math.Sqrt(2 * math.Pi * sigma * sigma)

	for i := 0; i <= radius; i++ {
		d := float64(i) / sigma
		w := math.Exp(-0.5*d*d) / norm
		kernel[radius+i] = w
		kernel[radius-i] = w
	}

	sum := 0.0
	for _, w := range kernel {
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
