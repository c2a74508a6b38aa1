// Package images - numeric helpers used by the pixel filters.
package images

import (
	"math"
	"runtime"
	"sync"
)

// Clamp restricts a value to the specified range [min, max].
// This is used to prevent overflow in color calculations.
//
// Arguments:
// - value: The value to Clamp.
// - min: Minimum allowed value.
// - max: Maximum allowed value.
//
// Returns:
// - The clamped value within [min, max].
//
// @example
// clamped := Clamp(300.5, 0, 255) // Returns 255
// clamped := Clamp(-10.0, 0, 255) // Returns 0
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ToChannel converts an accumulated floating point channel value to a byte.
// The value is rounded to the nearest integer, halves away from zero, and
// clamped to [0, 255].
//
// Arguments:
// - value: The accumulated channel value.
//
// Returns:
// - The channel byte.
//
// @example
// c := ToChannel(254.5) // Returns 255
// c := ToChannel(-3.2)  // Returns 0
func ToChannel(value float64) uint8 {
	return uint8(Clamp(math.Round(value), 0, 255))
}

// Parallel executes fn over [0, dataSize) split across goroutines and waits for
// all partitions to finish. Partitions are disjoint, so fn may write to
// per-index output without synchronization.
//
// Arguments:
// - dataSize: The size of the data to process.
// - fn: Function to execute for each partition (receives start and end indices).
//
// @example
//
//	Parallel(height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // Process row y
//	    }
//	})
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	numGoroutines := runtime.NumCPU()

	// Small inputs are not worth the goroutine overhead.
	if dataSize < numGoroutines*2 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / numGoroutines

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize

		// Last partition gets any remaining data.
		if i == numGoroutines-1 {
			partEnd = dataSize
		}

		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(partStart, partEnd)
	}

	wg.Wait()
}

// EdgeMode defines how to handle coordinates that are out of bounds.
type EdgeMode string

const (
	// ClampEdgeMode repeats the nearest edge pixel.
	ClampEdgeMode EdgeMode = "clamp"
	// MirrorEdgeMode reflects coordinates at the edge without repeating it.
	MirrorEdgeMode EdgeMode = "mirror"
	// WrapEdgeMode tiles the image.
	WrapEdgeMode EdgeMode = "wrap"
)

// MapCoord maps a coordinate to [0, max) based on the edge mode.
// Unknown modes behave like ClampEdgeMode.
//
// Arguments:
// - coord: The coordinate to map.
// - max: The number of valid coordinates, must be positive.
// - mode: The edge mode to use.
//
// Returns:
// - A coordinate in [0, max).
func MapCoord(coord, max int, mode EdgeMode) int {
	switch mode {
	case MirrorEdgeMode:
		if max == 1 {
			return 0
		}
		for coord < 0 || coord >= max {
			if coord < 0 {
				coord = -coord - 1
			} else {
				coord = 2*max - coord - 1
			}
		}
		return coord
	case WrapEdgeMode:
		return (coord%max + max) % max
	default:
		if coord < 0 {
			return 0
		}
		if coord >= max {
			return max - 1
		}
		return coord
	}
}
