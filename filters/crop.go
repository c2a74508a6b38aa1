package filters

import (
	"github.com/nvr-ai/go-bmpfilter/images"
)

// Crop keeps the top-left width x height region of the picture.
//
// Bitmap rows are stored bottom-up, so the top of the picture is the end of
// the buffer. Flipping the rows around the truncating resize keeps the last
// rows of the buffer in their original order.
type Crop struct {
	width  int
	height int
}

// NewCrop creates a crop to at most width x height pixels.
func NewCrop(width, height int) *Crop {
	return &Crop{width: width, height: height}
}

// Name implements Filter.
func (c *Crop) Name() string { return "crop" }

// Size returns the requested width and height.
func (c *Crop) Size() (width, height int) { return c.width, c.height }

// Apply crops buf. Requested sizes larger than the image are clamped to it.
func (c *Crop) Apply(buf *images.PixelBuffer) {
	width := min(c.width, buf.Width())
	height := min(c.height, buf.Height())

	buf.FlipRows()
	buf.Resize(height, width, images.Pixel{})
	buf.FlipRows()
}
