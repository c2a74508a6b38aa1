package pipeline

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nvr-ai/go-bmpfilter/filters"
	"github.com/nvr-ai/go-bmpfilter/images"
)

// Pipeline applies filters in insertion order.
type Pipeline struct {
	filters []filters.Filter
	logger  logrus.FieldLogger
}

// New creates an empty pipeline.
func New(opts ...Option) *Pipeline {
	return &Pipeline{logger: newOptions(opts).logger}
}

// Add appends a filter.
func (p *Pipeline) Add(f filters.Filter) {
	p.filters = append(p.filters, f)
}

// Len returns the number of filters.
func (p *Pipeline) Len() int { return len(p.filters) }

// Filters returns the filters in application order.
func (p *Pipeline) Filters() []filters.Filter {
	out := make([]filters.Filter, len(p.filters))
	copy(out, p.filters)
	return out
}

// Apply runs every filter on buf in order. Each filter sees the result of the
// previous one.
func (p *Pipeline) Apply(buf *images.PixelBuffer) {
	debug := p.debugEnabled()
	for i, f := range p.filters {
		start := time.Now()
		f.Apply(buf)
		if !debug {
			continue
		}
		p.logger.WithFields(logrus.Fields{
			"stage":    i + 1,
			"filter":   f.Name(),
			"elapsed":  time.Since(start),
			"width":    buf.Width(),
			"height":   buf.Height(),
			"channels": images.Stats(buf).String(),
		}).Debug("filter applied")
	}
}

// debugEnabled avoids computing statistics nobody will see.
func (p *Pipeline) debugEnabled() bool {
	switch l := p.logger.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.DebugLevel)
	default:
		return p.logger != nil
	}
}
