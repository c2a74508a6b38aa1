package filters

import (
	"github.com/nvr-ai/go-bmpfilter/images"
)

var sharpenKernel = NewKernel([][]float64{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
})

// Sharpen boosts each pixel against its four direct neighbors.
type Sharpen struct{}

// NewSharpen creates a Sharpen filter.
func NewSharpen() *Sharpen { return &Sharpen{} }

// Name implements Filter.
func (*Sharpen) Name() string { return "sharp" }

// Apply implements Filter.
func (*Sharpen) Apply(buf *images.PixelBuffer) {
	buf.Assign(Convolve(buf, sharpenKernel))
}
