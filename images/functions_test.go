package images

import (
	"image"
	"image/color"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-3.2, 0},
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{127.5, 128},
		{254.5, 255},
		{300, 255},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToChannel(tt.in), "ToChannel(%v)", tt.in)
	}
}

func TestMapCoord(t *testing.T) {
	tests := []struct {
		name  string
		coord int
		max   int
		mode  EdgeMode
		want  int
	}{
		{"clamp inside", 2, 5, ClampEdgeMode, 2},
		{"clamp below", -3, 5, ClampEdgeMode, 0},
		{"clamp above", 9, 5, ClampEdgeMode, 4},
		{"unknown mode clamps", 9, 5, EdgeMode("other"), 4},
		{"mirror below", -1, 5, MirrorEdgeMode, 0},
		{"mirror below twice", -2, 5, MirrorEdgeMode, 1},
		{"mirror above", 5, 5, MirrorEdgeMode, 4},
		{"mirror above twice", 6, 5, MirrorEdgeMode, 3},
		{"mirror single", 7, 1, MirrorEdgeMode, 0},
		{"wrap below", -1, 5, WrapEdgeMode, 4},
		{"wrap above", 7, 5, WrapEdgeMode, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapCoord(tt.coord, tt.max, tt.mode))
		})
	}
}

func TestParallelCoversEveryIndex(t *testing.T) {
	for _, size := range []int{0, 1, 7, 1000} {
		hits := make([]int32, size)
		Parallel(size, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			assert.Equal(t, int32(1), h, "size %d index %d", size, i)
		}
	}
}

func TestStats(t *testing.T) {
	assert.Equal(t, ChannelStats{}, Stats(NewPixelBuffer(0, 0, Pixel{})))

	uniform := Stats(NewPixelBuffer(4, 4, Pixel{Red: 10, Green: 20, Blue: 30}))
	assert.Equal(t, [3]float32{10, 20, 30}, uniform.Mean)
	assert.Equal(t, [3]float32{0, 0, 0}, uniform.StdDev)

	b := NewPixelBuffer(1, 2, Pixel{})
	b.Set(0, 1, Pixel{Red: 255, Green: 100, Blue: 2})
	s := Stats(b)
	assert.InDelta(t, 127.5, s.Mean[0], 1e-3)
	assert.InDelta(t, 127.5, s.StdDev[0], 1e-3)
	assert.InDelta(t, 50, s.Mean[1], 1e-3)
	assert.InDelta(t, 1, s.StdDev[2], 1e-3)
	assert.Contains(t, s.String(), "mean=(127.50, 50.00, 1.00)")
}

func TestToRGBA(t *testing.T) {
	b := NewPixelBuffer(2, 3, Pixel{})
	// Row 0 is the bottom of the picture; fields are stored blue first.
	b.Set(0, 0, Pixel{Red: 1, Green: 2, Blue: 3})
	b.Set(1, 2, Pixel{Red: 4, Green: 5, Blue: 6})

	img := ToRGBA(b)
	require.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.RGBA{R: 3, G: 2, B: 1, A: 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{R: 6, G: 5, B: 4, A: 255}, img.RGBAAt(2, 0))

	assert.True(t, b.Equal(FromImage(img)), "FromImage inverts ToRGBA")
}
