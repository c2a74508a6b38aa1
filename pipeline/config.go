package pipeline

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is a pipeline stored in a YAML file.
//
//	filters:
//	  - name: crop
//	    params: [800, 600]
//	  - name: blur
//	    params: ["1.5"]
type Config struct {
	Filters []FilterConfig `yaml:"filters"`
}

// FilterConfig is one filter of a Config.
type FilterConfig struct {
	Name   string  `yaml:"name"`
	Params []Param `yaml:"params"`
}

// Param is a raw parameter. Numbers and strings are both kept as their
// literal text, so the makers validate them exactly like command-line input.
type Param string

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Param) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: filter parameter must be a scalar", value.Line)
	}
	*p = Param(value.Value)
	return nil
}

// Descriptors converts the config into factory input.
func (c *Config) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(c.Filters))
	for _, f := range c.Filters {
		d := Descriptor{Name: f.Name, Params: make([]string, len(f.Params))}
		for i, p := range f.Params {
			d.Params[i] = string(p)
		}
		out = append(out, d)
	}
	return out
}

// ParseConfig decodes a YAML pipeline.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "parsing pipeline config")
	}
	for i, f := range c.Filters {
		if f.Name == "" {
			return nil, errors.Errorf("pipeline config: filter %d has no name", i+1)
		}
	}
	return &c, nil
}

// LoadConfig reads and decodes the YAML pipeline at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading pipeline config")
	}
	return ParseConfig(data)
}
