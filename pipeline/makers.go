package pipeline

import (
	"fmt"
	"math"
	"strconv"

	"github.com/nvr-ai/go-bmpfilter/filters"
	"github.com/nvr-ai/go-bmpfilter/images"
)

// DefaultFactory returns a factory with every built-in filter registered.
func DefaultFactory(opts ...Option) *Factory {
	f := NewFactory(opts...)
	f.Register(Entry{
		Name:    "crop",
		Usage:   "-crop width height",
		Summary: "Keeps the top-left width x height part of the image, clamped to its size.",
		Make:    MakeCrop,
	})
	f.Register(Entry{
		Name:    "gs",
		Usage:   "-gs",
		Summary: "Converts the image to shades of gray.",
		Make:    MakeGrayscale,
	})
	f.Register(Entry{
		Name:    "neg",
		Usage:   "-neg",
		Summary: "Converts the image to its negative.",
		Make:    MakeNegative,
	})
	f.Register(Entry{
		Name:    "sharp",
		Usage:   "-sharp",
		Summary: "Sharpens the image.",
		Make:    MakeSharpen,
	})
	f.Register(Entry{
		Name:    "edge",
		Usage:   "-edge threshold",
		Summary: "Converts to grayscale and marks pixels whose edge response exceeds threshold (0..1) white, the rest black.",
		Make:    MakeEdgeDetect,
	})
	f.Register(Entry{
		Name:    "blur",
		Usage:   "-blur sigma",
		Summary: "Gaussian blur with standard deviation sigma.",
		Make:    MakeBlur,
	})
	f.Register(Entry{
		Name:    "scale",
		Usage:   "-scale width height [alpha]",
		Summary: fmt.Sprintf("Lanczos resampling to width x height, alpha defaults to %d.", filters.DefaultLanczosAlpha),
		Make:    MakeLanczosScale,
	})
	return f
}

// params walks the parameters of one descriptor on behalf of a maker.
type params struct {
	filter string
	d      Descriptor
}

func (p params) name() error {
	if p.d.Name != p.filter {
		return &ParameterError{Filter: p.filter, Rule: RuleName, Index: -1, Value: p.d.Name}
	}
	return nil
}

func (p params) count(want ...int) error {
	got := len(p.d.Params)
	for _, n := range want {
		if got == n {
			return nil
		}
	}
	detail := fmt.Sprintf("want %d, got %d", want[0], got)
	if len(want) == 2 {
		detail = fmt.Sprintf("want %d or %d, got %d", want[0], want[1], got)
	}
	return &ParameterError{Filter: p.filter, Rule: RuleCount, Index: -1, Detail: detail}
}

func (p params) typeError(i int, name, detail string, err error) error {
	return &ParameterError{Filter: p.filter, Rule: RuleType, Index: i, Param: name, Value: p.d.Params[i], Detail: detail, Err: err}
}

func (p params) rangeError(i int, name, detail string) error {
	return &ParameterError{Filter: p.filter, Rule: RuleRange, Index: i, Param: name, Value: p.d.Params[i], Detail: detail}
}

// size parses parameter i as a positive integer.
func (p params) size(i int, name string) (int, error) {
	v, err := strconv.ParseUint(p.d.Params[i], 10, 31)
	if err != nil {
		return 0, p.typeError(i, name, "must be a non-negative integer", err)
	}
	if v == 0 {
		return 0, p.rangeError(i, name, "must be at least 1")
	}
	return int(v), nil
}

// integer parses parameter i as a positive int.
func (p params) integer(i int, name string) (int, error) {
	v, err := strconv.Atoi(p.d.Params[i])
	if err != nil {
		return 0, p.typeError(i, name, "must be an integer", err)
	}
	if v < 1 {
		return 0, p.rangeError(i, name, "must be at least 1")
	}
	return v, nil
}

// float parses parameter i as a float in [lo, hi] or (lo, hi] when open.
func (p params) float(i int, name string, lo, hi float64, open bool) (float64, error) {
	v, err := strconv.ParseFloat(p.d.Params[i], 64)
	if err != nil {
		return 0, p.typeError(i, name, "must be a number", err)
	}
	if math.IsNaN(v) || v < lo || v > hi || (open && v == lo) {
		bracket := "["
		if open {
			bracket = "("
		}
		return 0, p.rangeError(i, name, fmt.Sprintf("must be in %s%g, %g]", bracket, lo, hi))
	}
	return v, nil
}

// MakeBlur builds a Blur from {"blur", [sigma]}.
func MakeBlur(d Descriptor) (filters.Filter, error) {
	p := params{filter: "blur", d: d}
	if err := p.name(); err != nil {
		return nil, err
	}
	if err := p.count(1); err != nil {
		return nil, err
	}
	sigma, err := p.float(0, "sigma", 0, maxSigma, true)
	if err != nil {
		return nil, err
	}
	return filters.NewBlur(sigma), nil
}

// maxSigma keeps the blur kernel to a few thousand taps.
const maxSigma = 1000

// MakeCrop builds a Crop from {"crop", [width, height]}.
func MakeCrop(d Descriptor) (filters.Filter, error) {
	p := params{filter: "crop", d: d}
	if err := p.name(); err != nil {
		return nil, err
	}
	if err := p.count(2); err != nil {
		return nil, err
	}
	width, err := p.size(0, "width")
	if err != nil {
		return nil, err
	}
	height, err := p.size(1, "height")
	if err != nil {
		return nil, err
	}
	return filters.NewCrop(width, height), nil
}

// MakeNegative builds a Negative from {"neg", []}.
func MakeNegative(d Descriptor) (filters.Filter, error) {
	if err := noParams("neg", d); err != nil {
		return nil, err
	}
	return filters.NewNegative(), nil
}

// MakeGrayscale builds a Grayscale from {"gs", []}.
func MakeGrayscale(d Descriptor) (filters.Filter, error) {
	if err := noParams("gs", d); err != nil {
		return nil, err
	}
	return filters.NewGrayscale(), nil
}

// MakeSharpen builds a Sharpen from {"sharp", []}.
func MakeSharpen(d Descriptor) (filters.Filter, error) {
	if err := noParams("sharp", d); err != nil {
		return nil, err
	}
	return filters.NewSharpen(), nil
}

func noParams(filter string, d Descriptor) error {
	p := params{filter: filter, d: d}
	if err := p.name(); err != nil {
		return err
	}
	return p.count(0)
}

// MakeEdgeDetect builds an EdgeDetect from {"edge", [threshold]}.
func MakeEdgeDetect(d Descriptor) (filters.Filter, error) {
	p := params{filter: "edge", d: d}
	if err := p.name(); err != nil {
		return nil, err
	}
	if err := p.count(1); err != nil {
		return nil, err
	}
	threshold, err := p.float(0, "threshold", 0, 1, false)
	if err != nil {
		return nil, err
	}
	return filters.NewEdgeDetect(threshold), nil
}

// MakeLanczosScale builds a LanczosScale from {"scale", [width, height]} or
// {"scale", [width, height, alpha]}.
func MakeLanczosScale(d Descriptor) (filters.Filter, error) {
	p := params{filter: "scale", d: d}
	if err := p.name(); err != nil {
		return nil, err
	}
	if err := p.count(2, 3); err != nil {
		return nil, err
	}
	width, err := p.size(0, "width")
	if err != nil {
		return nil, err
	}
	height, err := p.size(1, "height")
	if err != nil {
		return nil, err
	}
	if int64(width)*int64(height) > images.MaxPixels {
		return nil, p.rangeError(1, "height", fmt.Sprintf("%dx%d exceeds %d pixels", width, height, images.MaxPixels))
	}
	alpha := filters.DefaultLanczosAlpha
	if len(d.Params) == 3 {
		if alpha, err = p.integer(2, "alpha"); err != nil {
			return nil, err
		}
	}
	return filters.NewLanczosScale(width, height, alpha), nil
}
