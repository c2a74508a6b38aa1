// Package bmp reads and writes uncompressed 24-bit bitmap files.
//
// Only the 14 byte file header and the 40 byte info header are understood.
// Pixel rows are kept in the order they are stored and the three bytes of each
// pixel are copied into images.Pixel fields without reordering.
package bmp

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-bmpfilter/images"
)

const (
	// FileHeaderSize is the size of the file header in bytes.
	FileHeaderSize = 14
	// InfoHeaderSize is the size of the info header in bytes.
	InfoHeaderSize = 40
	// HeaderSize is the pixel data offset of every file written by Encode.
	HeaderSize = FileHeaderSize + InfoHeaderSize
	// BitsPerPixel is the only supported bit depth.
	BitsPerPixel = 24
	// BytesPerPixel is the stored size of one pixel.
	BytesPerPixel = BitsPerPixel / 8
	// MaxPixels bounds width*height accepted by Decode.
	MaxPixels = images.MaxPixels
	// PaddingByte fills the end of each row on Encode.
	PaddingByte = 0x42
)

// Signature is the magic number at the start of every bitmap file.
var Signature = [2]byte{'B', 'M'}

var (
	// ErrUnsupportedFormat is returned when the data is not a readable
	// uncompressed 24-bit bitmap.
	ErrUnsupportedFormat = errors.New("unsupported bitmap format")
	// ErrIO is returned when a file cannot be opened, created or written.
	ErrIO = errors.New("bitmap i/o failure")
)

// Metadata holds the header fields of a bitmap file.
//
// FileSize, DataOffset, InfoSize, Width, Height and DataSize are derived from
// the pixels and recomputed by Encode. The remaining fields are carried over
// unchanged.
type Metadata struct {
	// Signature is the file type marker, "BM".
	Signature [2]byte `json:"signature" yaml:"signature"`
	// FileSize is the total size of the file in bytes.
	FileSize uint32 `json:"file_size" yaml:"file_size"`
	// Reserved is the reserved file header field.
	Reserved uint32 `json:"reserved" yaml:"reserved"`
	// DataOffset is the offset of the pixel data from the start of the file.
	DataOffset uint32 `json:"data_offset" yaml:"data_offset"`
	// InfoSize is the size of the info header.
	InfoSize uint32 `json:"info_size" yaml:"info_size"`
	// Width is the image width in pixels.
	Width int32 `json:"width" yaml:"width"`
	// Height is the image height in pixels.
	Height int32 `json:"height" yaml:"height"`
	// Planes is the number of color planes.
	Planes uint16 `json:"planes" yaml:"planes"`
	// BitsPerPixel is the color depth, always 24 for decoded files.
	BitsPerPixel uint16 `json:"bits_per_pixel" yaml:"bits_per_pixel"`
	// Compression is the compression method, always 0 for decoded files.
	Compression uint32 `json:"compression" yaml:"compression"`
	// DataSize is the size of the pixel data including row padding.
	DataSize uint32 `json:"data_size" yaml:"data_size"`
	// Resolution holds the horizontal and vertical pixels per meter.
	Resolution uint64 `json:"resolution" yaml:"resolution"`
	// Palette holds the used and important color counts.
	Palette uint64 `json:"palette" yaml:"palette"`
}

// DefaultMetadata returns the header of an empty 24-bit bitmap.
func DefaultMetadata() Metadata {
	return Metadata{
		Signature:    Signature,
		DataOffset:   HeaderSize,
		InfoSize:     InfoHeaderSize,
		Planes:       1,
		BitsPerPixel: BitsPerPixel,
		FileSize:     HeaderSize,
	}
}

// Bitmap pairs decoded pixels with the header they were read from.
type Bitmap struct {
	Metadata Metadata
	Pixels   *images.PixelBuffer
}

// New wraps pixels in a bitmap with default metadata.
func New(pixels *images.PixelBuffer) *Bitmap {
	return &Bitmap{Metadata: DefaultMetadata(), Pixels: pixels}
}

// RowPadding returns the number of filler bytes after each row of the given width.
func RowPadding(width int) int {
	return (4 - (width*BytesPerPixel)%4) % 4
}

// refresh recomputes the derived header fields from the current pixels.
func (m *Metadata) refresh(pixels *images.PixelBuffer) {
	width, height := pixels.Width(), pixels.Height()
	m.Width = int32(width)
	m.Height = int32(height)
	m.DataOffset = HeaderSize
	m.InfoSize = InfoHeaderSize
	m.BitsPerPixel = BitsPerPixel
	m.DataSize = uint32(height * (width*BytesPerPixel + RowPadding(width)))
	m.FileSize = m.DataOffset + m.DataSize
}

func (m *Metadata) marshal() []byte {
	buf := make([]byte, HeaderSize)
	le := binary.LittleEndian

	copy(buf[0:2], m.Signature[:])
	le.PutUint32(buf[2:6], m.FileSize)
	le.PutUint32(buf[6:10], m.Reserved)
	le.PutUint32(buf[10:14], m.DataOffset)

	info := buf[FileHeaderSize:]
	le.PutUint32(info[0:4], m.InfoSize)
	le.PutUint32(info[4:8], uint32(m.Width))
	le.PutUint32(info[8:12], uint32(m.Height))
	le.PutUint16(info[12:14], m.Planes)
	le.PutUint16(info[14:16], m.BitsPerPixel)
	le.PutUint32(info[16:20], m.Compression)
	le.PutUint32(info[20:24], m.DataSize)
	le.PutUint64(info[24:32], m.Resolution)
	le.PutUint64(info[32:40], m.Palette)
	return buf
}

func unmarshalMetadata(buf []byte) Metadata {
	le := binary.LittleEndian
	var m Metadata

	copy(m.Signature[:], buf[0:2])
	m.FileSize = le.Uint32(buf[2:6])
	m.Reserved = le.Uint32(buf[6:10])
	m.DataOffset = le.Uint32(buf[10:14])

	info := buf[FileHeaderSize:]
	m.InfoSize = le.Uint32(info[0:4])
	m.Width = int32(le.Uint32(info[4:8]))
	m.Height = int32(le.Uint32(info[8:12]))
	m.Planes = le.Uint16(info[12:14])
	m.BitsPerPixel = le.Uint16(info[14:16])
	m.Compression = le.Uint32(info[16:20])
	m.DataSize = le.Uint32(info[20:24])
	m.Resolution = le.Uint64(info[24:32])
	m.Palette = le.Uint64(info[32:40])
	return m
}

func (m *Metadata) validate() error {
	if m.Signature != Signature {
		return errors.Wrapf(ErrUnsupportedFormat, "signature %q", m.Signature[:])
	}
	if m.BitsPerPixel != BitsPerPixel {
		return errors.Wrapf(ErrUnsupportedFormat, "%d bits per pixel", m.BitsPerPixel)
	}
	if m.Compression != 0 {
		return errors.Wrapf(ErrUnsupportedFormat, "compression method %d", m.Compression)
	}
	if m.Width < 0 || m.Height < 0 {
		return errors.Wrapf(ErrUnsupportedFormat, "dimensions %dx%d", m.Width, m.Height)
	}
	if int64(m.Width)*int64(m.Height) > MaxPixels {
		return errors.Wrapf(ErrUnsupportedFormat, "%dx%d exceeds %d pixels", m.Width, m.Height, MaxPixels)
	}
	return nil
}
