package images

import (
	"fmt"

	"github.com/chewxy/math32"
)

// ChannelStats summarizes the distribution of each channel of a buffer.
type ChannelStats struct {
	// Mean holds the average of Red, Green and Blue in field order.
	Mean [3]float32 `json:"mean" yaml:"mean"`
	// StdDev holds the population standard deviation of each channel.
	StdDev [3]float32 `json:"std_dev" yaml:"std_dev"`
}

// String renders the statistics for log fields.
func (s ChannelStats) String() string {
	return fmt.Sprintf("mean=(%.2f, %.2f, %.2f) std=(%.2f, %.2f, %.2f)",
		s.Mean[0], s.Mean[1], s.Mean[2], s.StdDev[0], s.StdDev[1], s.StdDev[2])
}

// Stats computes per-channel mean and standard deviation. An empty buffer
// yields zero statistics.
//
// Sums are accumulated in integers so the result does not drift on large
// images; only the final division and square root are done in float32.
func Stats(b *PixelBuffer) ChannelStats {
	var stats ChannelStats
	n := len(b.pix)
	if n == 0 {
		return stats
	}

	var sum, sumSq [3]uint64
	for _, p := range b.pix {
		for c, v := range [3]uint64{uint64(p.Red), uint64(p.Green), uint64(p.Blue)} {
			sum[c] += v
			sumSq[c] += v * v
		}
	}

	count := float32(n)
	for c := range sum {
		mean := float32(sum[c]) / count
		variance := float32(sumSq[c])/count - mean*mean
		stats.Mean[c] = mean
		stats.StdDev[c] = math32.Sqrt(math32.Max(variance, 0))
	}
	return stats
}
