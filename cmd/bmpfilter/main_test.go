package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-bmpfilter/bmp"
	"github.com/nvr-ai/go-bmpfilter/images"
)

func writeBitmap(t *testing.T, path string, height, width int) {
	t.Helper()
	pixels := images.NewPixelBuffer(height, width, images.Pixel{Red: 10, Green: 20, Blue: 30})
	require.NoError(t, bmp.Save(path, bmp.New(pixels)))
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run(nil, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Usage:")
	assert.Contains(t, stdout.String(), "-crop width height")
	assert.Contains(t, stdout.String(), "-preview-size")
}

func TestRunSingleFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bmp")
	out := filepath.Join(dir, "out.bmp")
	preview := filepath.Join(dir, "preview.png")
	writeBitmap(t, in, 40, 60)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-preview", preview, "-preview-size", "16", in, out, "-crop", "30", "20", "-neg"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	bm, err := bmp.Load(out)
	require.NoError(t, err)
	assert.True(t, images.NewPixelBuffer(20, 30, images.Pixel{Red: 245, Green: 235, Blue: 225}).Equal(bm.Pixels))

	f, err := os.Open(preview)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 16)
	assert.LessOrEqual(t, img.Bounds().Dy(), 16)
}

func TestRunConfigAppendsFilters(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bmp")
	out := filepath.Join(dir, "out.bmp")
	cfg := filepath.Join(dir, "pipeline.yaml")
	writeBitmap(t, in, 8, 8)
	require.NoError(t, os.WriteFile(cfg, []byte("filters:\n  - name: scale\n    params: [4, 2]\n"), 0o644))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-config", cfg, in, out, "-gs"}, &stdout, &stderr), stderr.String())

	bm, err := bmp.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 4, bm.Pixels.Width())
	assert.Equal(t, 2, bm.Pixels.Height())
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	inDir := filepath.Join(dir, "in")
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(inDir, 0o755))
	writeBitmap(t, filepath.Join(inDir, "a.bmp"), 4, 4)
	writeBitmap(t, filepath.Join(inDir, "b.BMP"), 5, 3)
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "notes.txt"), []byte("skip"), 0o644))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-batch", inDir, outDir, "-neg"}, &stdout, &stderr), stderr.String())

	for _, name := range []string{"a.bmp", "b.BMP"} {
		bm, err := bmp.Load(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Equal(t, images.Pixel{Red: 245, Green: 235, Blue: 225}, bm.Pixels.At(0, 0))
	}
	assert.NoFileExists(t, filepath.Join(outDir, "notes.txt"))
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bmp")
	writeBitmap(t, in, 2, 2)
	out := filepath.Join(dir, "out.bmp")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown flag", []string{"-nope", in, out}, 2},
		{"input only", []string{in}, 1},
		{"unknown filter", []string{in, out, "-sepia"}, 1},
		{"bad params", []string{in, out, "-crop", "10"}, 1},
		{"input not a bitmap", []string{filepath.Join(dir, "in.png"), out}, 1},
		{"output not a bitmap", []string{in, filepath.Join(dir, "out.jpg")}, 1},
		{"missing input", []string{filepath.Join(dir, "missing.bmp"), out}, 1},
		{"preview with batch", []string{"-batch", "-preview", "p.png", dir, dir}, 1},
		{"missing config", []string{"-config", filepath.Join(dir, "none.yaml"), in, out}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(tt.args, &stdout, &stderr))
			assert.NoFileExists(t, out)
		})
	}
}
