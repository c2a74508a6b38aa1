package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-bmpfilter/images"
)

// recorder appends its tag to a shared log and marks the buffer.
type recorder struct {
	tag string
	log *[]string
}

func (r recorder) Name() string { return r.tag }

func (r recorder) Apply(buf *images.PixelBuffer) {
	*r.log = append(*r.log, r.tag)
	p := buf.At(0, 0)
	p.Red++
	buf.Set(0, 0, p)
}

func TestPipelineApplyOrder(t *testing.T) {
	var log []string
	p := New()
	p.Add(recorder{tag: "a", log: &log})
	p.Add(recorder{tag: "b", log: &log})
	p.Add(recorder{tag: "c", log: &log})

	buf := images.NewPixelBuffer(1, 1, images.Pixel{})
	p.Apply(buf)
	assert.Equal(t, []string{"a", "b", "c"}, log)
	assert.Equal(t, uint8(3), buf.At(0, 0).Red, "each filter sees the previous result")
}

func TestPipelineApplyFilters(t *testing.T) {
	p, err := DefaultFactory().CreatePipeline([]Descriptor{
		{Name: "neg"},
		{Name: "crop", Params: []string{"2", "3"}},
		{Name: "neg"},
	})
	require.NoError(t, err)

	fill := images.Pixel{Red: 10, Green: 20, Blue: 30}
	buf := images.NewPixelBuffer(4, 4, fill)
	p.Apply(buf)
	assert.True(t, images.NewPixelBuffer(3, 2, fill).Equal(buf))
}

func TestPipelineFiltersIsACopy(t *testing.T) {
	p := New()
	p.Add(recorder{tag: "a", log: new([]string)})
	fs := p.Filters()
	fs[0] = nil
	assert.NotNil(t, p.Filters()[0])
}

func TestPipelineDebugLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p, err := DefaultFactory(WithLogger(logger)).CreatePipeline([]Descriptor{{Name: "gs"}, {Name: "neg"}})
	require.NoError(t, err)
	hook.Reset()

	p.Apply(images.NewPixelBuffer(2, 2, images.Pixel{Red: 10, Green: 20, Blue: 30}))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "gs", entries[0].Data["filter"])
	assert.Equal(t, 1, entries[0].Data["stage"])
	assert.Equal(t, "neg", entries[1].Data["filter"])
	assert.Equal(t, 2, entries[1].Data["width"])
	assert.Contains(t, entries[1].Data["channels"], "mean=(237.00, 237.00, 237.00)")

	logger.SetLevel(logrus.InfoLevel)
	hook.Reset()
	p.Apply(images.NewPixelBuffer(2, 2, images.Pixel{}))
	assert.Empty(t, hook.AllEntries(), "no stage logs above debug level")
}

func TestNewPipelineOptions(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p := New(WithLogger(logger))
	p.Add(recorder{tag: "a", log: new([]string)})
	p.Apply(images.NewPixelBuffer(1, 1, images.Pixel{}))
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "a", hook.LastEntry().Data["filter"])

	quiet := New(WithLogger(nil))
	quiet.Add(recorder{tag: "b", log: new([]string)})
	assert.NotPanics(t, func() { quiet.Apply(images.NewPixelBuffer(1, 1, images.Pixel{})) }, "nil logger keeps the default")
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
filters:
  - name: crop
    params: [800, 600]
  - name: gs
  - name: blur
    params: ["1.5"]
  - name: edge
    params: [0.25]
`))
	require.NoError(t, err)
	assert.Equal(t, []Descriptor{
		{Name: "crop", Params: []string{"800", "600"}},
		{Name: "gs", Params: []string{}},
		{Name: "blur", Params: []string{"1.5"}},
		{Name: "edge", Params: []string{"0.25"}},
	}, cfg.Descriptors())

	p, err := DefaultFactory().CreatePipeline(cfg.Descriptors())
	require.NoError(t, err)
	assert.Equal(t, 4, p.Len())
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "filters: [\n"},
		{"missing name", "filters:\n  - params: [1]\n"},
		{"nested param", "filters:\n  - name: crop\n    params: [[1, 2], 3]\n"},
		{"filters not a list", "filters: crop\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.data))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filters:\n  - name: neg\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Filters, 1)
	assert.Equal(t, "neg", cfg.Filters[0].Name)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
