package bmp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-bmpfilter/images"
)

// Decode reads a 24-bit uncompressed bitmap from r.
//
// Rows are stored in the buffer in the order they appear in the stream. Any
// failure, including a stream that ends before the last row, returns an error
// matching ErrUnsupportedFormat and no bitmap.
//
// Arguments:
// - r: The bitmap byte stream.
//
// Returns:
// - The decoded bitmap.
// - error if the stream is not a readable 24-bit bitmap.
//
// @example
// bm, err := Decode(bytes.NewReader(data))
//
//	if err != nil {
//	    return err
//	}
func Decode(r io.Reader) (*Bitmap, error) {
	br := bufio.NewReader(r)

	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "reading headers: %v", err)
	}
	meta := unmarshalMetadata(header)
	if err := meta.validate(); err != nil {
		return nil, err
	}

	if meta.DataOffset > HeaderSize {
		gap := int(meta.DataOffset - HeaderSize)
		if n, err := br.Discard(gap); err != nil {
			return nil, errors.Wrapf(ErrUnsupportedFormat, "skipping %d bytes to pixel data, got %d: %v", gap, n, err)
		}
	}

	width, height := int(meta.Width), int(meta.Height)
	pixels := images.NewPixelBuffer(height, width, images.Pixel{})
	if pixels.Empty() {
		return &Bitmap{Metadata: meta, Pixels: pixels}, nil
	}

	padding := RowPadding(width)
	raw := make([]byte, width*BytesPerPixel)
	for row := 0; row < height; row++ {
		if _, err := io.ReadFull(br, raw); err != nil {
			return nil, errors.Wrapf(ErrUnsupportedFormat, "reading row %d of %d: %v", row, height, err)
		}
		dst := pixels.Row(row)
		for col := range dst {
			off := col * BytesPerPixel
			dst[col] = images.Pixel{Red: raw[off], Green: raw[off+1], Blue: raw[off+2]}
		}
		// Padding of the final row may be missing; the pixels are complete.
		if _, err := br.Discard(padding); err != nil && row < height-1 {
			return nil, errors.Wrapf(ErrUnsupportedFormat, "skipping padding of row %d: %v", row, err)
		}
	}

	return &Bitmap{Metadata: meta, Pixels: pixels}, nil
}

// Encode writes b to w.
//
// The size, offset and dimension fields of b.Metadata are recomputed from
// b.Pixels before anything is written and the updated header is stored back
// into b. Row padding is filled with PaddingByte.
//
// Arguments:
// - w: Destination stream.
// - b: The bitmap to write.
//
// Returns:
// - error matching ErrIO if a write fails.
func Encode(w io.Writer, b *Bitmap) error {
	if b.Pixels == nil {
		b.Pixels = &images.PixelBuffer{}
	}
	if b.Metadata.Signature == ([2]byte{}) {
		b.Metadata.Signature = Signature
	}
	if b.Metadata.Planes == 0 {
		b.Metadata.Planes = 1
	}
	b.Metadata.refresh(b.Pixels)

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(b.Metadata.marshal()); err != nil {
		return fmt.Errorf("%w: writing headers: %w", ErrIO, err)
	}

	width, height := b.Pixels.Width(), b.Pixels.Height()
	padding := RowPadding(width)
	raw := make([]byte, width*BytesPerPixel+padding)
	for i := width * BytesPerPixel; i < len(raw); i++ {
		raw[i] = PaddingByte
	}
	for row := 0; row < height; row++ {
		for col, p := range b.Pixels.Row(row) {
			off := col * BytesPerPixel
			raw[off], raw[off+1], raw[off+2] = p.Red, p.Green, p.Blue
		}
		if _, err := bw.Write(raw); err != nil {
			return fmt.Errorf("%w: writing row %d of %d: %w", ErrIO, row, height, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flushing: %w", ErrIO, err)
	}
	return nil
}

// Load reads the bitmap stored at path.
//
// Returns:
// - The decoded bitmap.
// - error matching ErrIO if the file cannot be opened, or ErrUnsupportedFormat
// if its content cannot be decoded.
func Load(path string) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return b, nil
}

// Save writes b to path, creating or truncating the file.
func Save(path string, b *Bitmap) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %w", ErrIO, path, cerr)
		}
	}()

	if err := Encode(f, b); err != nil {
		return errors.WithMessage(err, path)
	}
	return nil
}
