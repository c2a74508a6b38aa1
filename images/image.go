// Package images - pixel storage and numeric helpers shared by the codec and the filters.
package images

import (
	"github.com/pkg/errors"
)

// MaxPixels bounds the width*height of any buffer the tool decodes or
// produces.
const MaxPixels = 1 << 28

// ErrIndexOutOfRange is returned by the checked accessors when a coordinate
// falls outside the buffer.
var ErrIndexOutOfRange = errors.New("pixel index out of range")

// Pixel is a single 24-bit pixel.
//
// The fields are declared in the order the three bytes of a pixel appear in a
// bitmap file and are filled from those bytes without remapping. For canonical
// BMP data the first byte is blue, so Red holds the file's blue sample and Blue
// holds its red sample. Filters use the field names as declared.
type Pixel struct {
	// Red is the first stored channel.
	Red uint8 `json:"red" yaml:"red"`
	// Green is the second stored channel.
	Green uint8 `json:"green" yaml:"green"`
	// Blue is the third stored channel.
	Blue uint8 `json:"blue" yaml:"blue"`
}

// PixelBuffer owns a row-major grid of pixels.
//
// A buffer with zero height or width has no storage and reports both
// dimensions as zero.
type PixelBuffer struct {
	pix    []Pixel
	height int
	width  int
}

// NewPixelBuffer creates a height x width buffer with every cell set to fill.
//
// Arguments:
// - height: Number of rows.
// - width: Number of columns.
// - fill: The value of every cell.
//
// Returns:
// - The new buffer, empty if either dimension is not positive.
//
// @example
// buf := NewPixelBuffer(4, 4, Pixel{Red: 10, Green: 20, Blue: 30})
func NewPixelBuffer(height, width int, fill Pixel) *PixelBuffer {
	b := &PixelBuffer{}
	b.Resize(height, width, fill)
	return b
}

// Height returns the number of rows.
func (b *PixelBuffer) Height() int { return b.height }

// Width returns the number of columns.
func (b *PixelBuffer) Width() int { return b.width }

// Empty reports whether the buffer has no storage.
func (b *PixelBuffer) Empty() bool { return len(b.pix) == 0 }

// Resize changes the shape of the buffer.
//
// The overlapping top-left region of the old shape is kept and newly exposed
// cells are set to fill. Resizing to the current shape does nothing. Slices
// obtained from Row before the call no longer alias the buffer afterwards.
//
// Arguments:
// - height: New number of rows.
// - width: New number of columns.
// - fill: Value for cells outside the old shape.
//
// @example
// buf.Resize(buf.Height()+1, buf.Width(), Pixel{})
func (b *PixelBuffer) Resize(height, width int, fill Pixel) {
	if height == b.height && width == b.width {
		return
	}
	if height <= 0 || width <= 0 {
		b.release()
		return
	}

	pix := make([]Pixel, height*width)
	for row := 0; row < height; row++ {
		dst := pix[row*width : (row+1)*width]
		col := 0
		if row < b.height {
			col = copy(dst, b.pix[row*b.width:row*b.width+min(width, b.width)])
		}
		for ; col < width; col++ {
			dst[col] = fill
		}
	}

	b.pix = pix
	b.height = height
	b.width = width
}

func (b *PixelBuffer) release() {
	b.pix = nil
	b.height = 0
	b.width = 0
}

// At returns the pixel at (row, col) without bounds checking against the
// buffer shape. Filters use it on coordinates they have already clamped.
func (b *PixelBuffer) At(row, col int) Pixel {
	return b.pix[row*b.width+col]
}

// Set stores p at (row, col) without bounds checking against the buffer shape.
func (b *PixelBuffer) Set(row, col int, p Pixel) {
	b.pix[row*b.width+col] = p
}

// Row returns the storage of one row. The slice aliases the buffer until the
// next Resize, Assign or Swap.
func (b *PixelBuffer) Row(row int) []Pixel {
	return b.pix[row*b.width : (row+1)*b.width : (row+1)*b.width]
}

// Get returns the pixel at (row, col), failing with ErrIndexOutOfRange when the
// coordinate is outside the buffer.
func (b *PixelBuffer) Get(row, col int) (Pixel, error) {
	if err := b.check(row, col); err != nil {
		return Pixel{}, err
	}
	return b.At(row, col), nil
}

// Put stores p at (row, col), failing with ErrIndexOutOfRange when the
// coordinate is outside the buffer.
func (b *PixelBuffer) Put(row, col int, p Pixel) error {
	if err := b.check(row, col); err != nil {
		return err
	}
	b.Set(row, col, p)
	return nil
}

func (b *PixelBuffer) check(row, col int) error {
	if row < 0 || col < 0 || row >= b.height || col >= b.width {
		return errors.Wrapf(ErrIndexOutOfRange, "row %d column %d in %dx%d buffer", row, col, b.height, b.width)
	}
	return nil
}

// Clone returns an independent copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	if b.Empty() {
		return &PixelBuffer{}
	}
	pix := make([]Pixel, len(b.pix))
	copy(pix, b.pix)
	return &PixelBuffer{pix: pix, height: b.height, width: b.width}
}

// Assign moves the storage of src into b and leaves src empty.
func (b *PixelBuffer) Assign(src *PixelBuffer) {
	if src == b {
		return
	}
	b.pix, b.height, b.width = src.pix, src.height, src.width
	src.release()
}

// Swap exchanges the contents of two buffers.
func (b *PixelBuffer) Swap(other *PixelBuffer) {
	b.pix, other.pix = other.pix, b.pix
	b.height, other.height = other.height, b.height
	b.width, other.width = other.width, b.width
}

// Equal reports whether both buffers have the same shape and pixels.
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if b.height != other.height || b.width != other.width {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// FlipRows reverses the order of the rows in place.
func (b *PixelBuffer) FlipRows() {
	for top, bottom := 0, b.height-1; top < bottom; top, bottom = top+1, bottom-1 {
		upper := b.Row(top)
		lower := b.Row(bottom)
		for col := range upper {
			upper[col], lower[col] = lower[col], upper[col]
		}
	}
}
