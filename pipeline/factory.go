// Package pipeline - builds filter pipelines from named descriptors.
package pipeline

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/nvr-ai/go-bmpfilter/filters"
)

// Descriptor names a filter and carries its raw parameters.
type Descriptor struct {
	// Name is the registry name of the filter.
	Name string `json:"name" yaml:"name"`
	// Params are the parameters in order, unparsed.
	Params []string `json:"params" yaml:"params"`
}

// Maker validates a descriptor and constructs its filter.
type Maker func(Descriptor) (filters.Filter, error)

// Entry is a registered filter.
type Entry struct {
	// Name is the registry key, e.g. "crop".
	Name string
	// Usage shows the parameters, e.g. "-crop width height".
	Usage string
	// Summary is a one-line description.
	Summary string
	// Make constructs the filter.
	Make Maker
}

// options holds the settings shared by factories and pipelines.
type options struct {
	logger logrus.FieldLogger
}

// Option configures a Factory or a Pipeline.
type Option func(*options)

// WithLogger sets the logger used by the factory and the pipelines it creates.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: discardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Factory maps filter names to makers.
type Factory struct {
	entries map[string]Entry
	order   []string
	logger  logrus.FieldLogger
}

// NewFactory creates a factory with no registered filters.
func NewFactory(opts ...Option) *Factory {
	return &Factory{
		entries: make(map[string]Entry),
		logger:  newOptions(opts).logger,
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Register adds or replaces an entry.
func (f *Factory) Register(e Entry) {
	if _, ok := f.entries[e.Name]; !ok {
		f.order = append(f.order, e.Name)
	}
	f.entries[e.Name] = e
}

// Lookup returns the entry registered under name.
func (f *Factory) Lookup(name string) (Entry, bool) {
	e, ok := f.entries[name]
	return e, ok
}

// Entries returns the registered entries in registration order.
func (f *Factory) Entries() []Entry {
	out := make([]Entry, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, f.entries[name])
	}
	return out
}

// CreateFilter constructs the filter described by d.
//
// Returns:
// - The filter.
// - error matching ErrUnknownFilter when d.Name is not registered, or the
// maker's ErrInvalidParameters error.
func (f *Factory) CreateFilter(d Descriptor) (filters.Filter, error) {
	e, ok := f.entries[d.Name]
	if !ok {
		return nil, &UnknownFilterError{Name: d.Name}
	}
	return e.Make(d)
}

// CreatePipeline constructs a filter for every descriptor, in order.
//
// Construction stops at the first failing descriptor and no pipeline is
// returned.
//
// Arguments:
// - descriptors: The filters to build, in application order.
//
// Returns:
// - The pipeline.
// - error from the first descriptor that could not be built.
//
// @example
//
//	p, err := DefaultFactory().CreatePipeline([]Descriptor{
//	    {Name: "crop", Params: []string{"800", "600"}},
//	    {Name: "gs"},
//	})
func (f *Factory) CreatePipeline(descriptors []Descriptor) (*Pipeline, error) {
	p := &Pipeline{logger: f.logger}
	for i, d := range descriptors {
		filter, err := f.CreateFilter(d)
		if err != nil {
			f.logger.WithFields(logrus.Fields{
				"position": i,
				"filter":   d.Name,
				"params":   d.Params,
			}).WithError(err).Debug("pipeline construction failed")
			return nil, err
		}
		p.Add(filter)
	}
	f.logger.WithField("filters", p.Len()).Debug("pipeline created")
	return p, nil
}
