package filters

import (
	"math"

	"github.com/nvr-ai/go-bmpfilter/images"
)

// DefaultLanczosAlpha is the kernel half-width used when none is given.
const DefaultLanczosAlpha = 3

// LanczosScale resamples the image to a fixed size with a Lanczos kernel.
type LanczosScale struct {
	width  int
	height int
	alpha  int
}

// NewLanczosScale creates a scaler to width x height with kernel half-width
// alpha. width, height and alpha must be positive.
func NewLanczosScale(width, height, alpha int) *LanczosScale {
	return &LanczosScale{width: width, height: height, alpha: alpha}
}

// Name implements Filter.
func (*LanczosScale) Name() string { return "scale" }

// Size returns the target width and height.
func (l *LanczosScale) Size() (width, height int) { return l.width, l.height }

// Alpha returns the kernel half-width.
func (l *LanczosScale) Alpha() int { return l.alpha }

// Apply resamples buf.
//
// The horizontal pass produces a srcHeight x width intermediate, the vertical
// pass resamples its columns to height. An image that already has the target
// size is left untouched, and so is an empty one.
func (l *LanczosScale) Apply(buf *images.PixelBuffer) {
	if buf.Width() == l.width && buf.Height() == l.height {
		return
	}
	if buf.Empty() {
		return
	}

	intermediate := l.resampleHorizontal(buf)
	buf.Assign(l.resampleVertical(intermediate))
}

// sourceCoord maps the centre of destination sample i to source coordinates.
func sourceCoord(i int, scale float64) float64 {
	return (float64(i)+0.5)*scale - 0.5
}

func (l *LanczosScale) resampleHorizontal(src *images.PixelBuffer) *images.PixelBuffer {
	srcWidth, height := src.Width(), src.Height()
	dst := images.NewPixelBuffer(height, l.width, images.Pixel{})
	scale := float64(srcWidth) / float64(l.width)

	images.Parallel(height, func(partStart, partEnd int) {
		for row := partStart; row < partEnd; row++ {
			line := src.Row(row)
			out := dst.Row(row)
			for col := range out {
				out[col] = l.sample(sourceCoord(col, scale), srcWidth, func(i int) images.Pixel {
					return line[i]
				})
			}
		}
	})
	return dst
}

func (l *LanczosScale) resampleVertical(src *images.PixelBuffer) *images.PixelBuffer {
	srcHeight, width := src.Height(), src.Width()
	dst := images.NewPixelBuffer(l.height, width, images.Pixel{})
	scale := float64(srcHeight) / float64(l.height)

	images.Parallel(l.height, func(partStart, partEnd int) {
		for row := partStart; row < partEnd; row++ {
			y := sourceCoord(row, scale)
			out := dst.Row(row)
			for col := range out {
				out[col] = l.sample(y, srcHeight, func(i int) images.Pixel {
					return src.At(i, col)
				})
			}
		}
	})
	return dst
}

// sample convolves the 2*alpha source samples around x. Indices are clamped to
// [0, n).
func (l *LanczosScale) sample(x float64, n int, at func(int) images.Pixel) images.Pixel {
	base := int(math.Floor(x))

	var red, green, blue float64
	for i := base - l.alpha + 1; i <= base+l.alpha; i++ {
		w := Lanczos(x-float64(i), l.alpha)
		if w == 0 {
			continue
		}
		p := at(images.MapCoord(i, n, images.ClampEdgeMode))
		red += w * float64(p.Red)
		green += w * float64(p.Green)
		blue += w * float64(p.Blue)
	}

	return images.Pixel{
		Red:   images.ToChannel(red),
		Green: images.ToChannel(green),
		Blue:  images.ToChannel(blue),
	}
}

// Lanczos evaluates the Lanczos window of half-width alpha at x.
//
// Arguments:
// - x: Distance from the sample centre.
// - alpha: Half-width of the window.
//
// Returns:
// - sinc(pi*x)*sinc(pi*x/alpha) inside the window, 0 outside.
func Lanczos(x float64, alpha int) float64 {
	a := float64(alpha)
	if math.Abs(x) >= a {
		return 0
	}
	return sinc(math.Pi*x) * sinc(math.Pi*x/a)
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}
