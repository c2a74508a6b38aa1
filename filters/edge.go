package filters

import (
	"github.com/nvr-ai/go-bmpfilter/images"
)

var edgeKernel = NewKernel([][]float64{
	{0, -1, 0},
	{-1, 4, -1},
	{0, -1, 0},
})

var (
	white = images.Pixel{Red: 255, Green: 255, Blue: 255}
	black = images.Pixel{}
)

// EdgeDetect marks pixels whose Laplacian response exceeds a threshold.
type EdgeDetect struct {
	threshold float64
}

// NewEdgeDetect creates an edge detector. threshold is a fraction of full
// intensity in [0, 1].
func NewEdgeDetect(threshold float64) *EdgeDetect {
	return &EdgeDetect{threshold: threshold}
}

// Name implements Filter.
func (*EdgeDetect) Name() string { return "edge" }

// Threshold returns the configured threshold.
func (e *EdgeDetect) Threshold() float64 { return e.threshold }

// Apply converts buf to grayscale, then replaces every pixel with white where
// the Laplacian of the gray image is above the threshold and black elsewhere.
func (e *EdgeDetect) Apply(buf *images.PixelBuffer) {
	mapPixels(buf, gray)

	dst := images.NewPixelBuffer(buf.Height(), buf.Width(), black)
	images.Parallel(buf.Height(), func(partStart, partEnd int) {
		for row := partStart; row < partEnd; row++ {
			out := dst.Row(row)
			for col := range out {
				p := convolveAt(buf, row, col, edgeKernel)
				if float64(p.Red)/255 > e.threshold {
					out[col] = white
				}
			}
		}
	})
	buf.Assign(dst)
}
