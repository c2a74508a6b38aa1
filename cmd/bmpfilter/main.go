// Command bmpfilter applies a chain of filters to 24-bit bitmap files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"

	"github.com/nvr-ai/go-bmpfilter/bmp"
	"github.com/nvr-ai/go-bmpfilter/cmdline"
	"github.com/nvr-ai/go-bmpfilter/images"
	"github.com/nvr-ai/go-bmpfilter/pipeline"
	"github.com/nvr-ai/go-bmpfilter/util"
)

const (
	programName = "bmpfilter"
	// DefaultPreviewSize is the default bounding box of preview thumbnails.
	DefaultPreviewSize = 256
)

// options holds the command-line flags.
type options struct {
	debug       bool
	config      string
	preview     string
	previewSize uint
	batch       bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	fs.StringVar(&opts.config, "config", "", "YAML pipeline file; its filters run after the command-line filters")
	fs.StringVar(&opts.preview, "preview", "", "Write a PNG thumbnail of the result to this path")
	fs.UintVar(&opts.previewSize, "preview-size", DefaultPreviewSize, "Maximum width and height of the preview thumbnail")
	fs.BoolVar(&opts.batch, "batch", false, "Treat input and output as directories and process every .bmp file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := initLogger(opts.debug, stderr)
	factory := pipeline.DefaultFactory(pipeline.WithLogger(logger))

	cmd, err := cmdline.Parse(fs.Args())
	if err != nil {
		logger.WithError(err).Error("Cannot parse arguments")
		fmt.Fprint(stderr, cmdline.Manual(programName, factory.Entries()))
		return 1
	}
	if cmd.Help {
		fmt.Fprint(stdout, cmdline.Manual(programName, factory.Entries()))
		fmt.Fprintln(stdout, "\nFlags:")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}

	if err := runCommand(cmd, opts, factory, logger); err != nil {
		logger.WithError(err).Error("Processing failed")
		return 1
	}
	return 0
}

// runCommand builds the pipeline before touching any file, then processes the
// input.
func runCommand(cmd *cmdline.Result, opts options, factory *pipeline.Factory, logger *logrus.Logger) error {
	descriptors := cmd.Filters
	if opts.config != "" {
		cfg, err := pipeline.LoadConfig(opts.config)
		if err != nil {
			return err
		}
		descriptors = append(descriptors, cfg.Descriptors()...)
	}

	p, err := factory.CreatePipeline(descriptors)
	if err != nil {
		return err
	}

	a := &app{pipeline: p, logger: logger, opts: opts}
	if opts.batch {
		if opts.preview != "" {
			return errors.New("-preview cannot be combined with -batch")
		}
		return a.processDir(cmd.Input, cmd.Output)
	}

	if !util.HasBitmapExt(cmd.Input) {
		return fmt.Errorf("input file %q is not a bitmap", cmd.Input)
	}
	if !util.HasBitmapExt(cmd.Output) {
		return fmt.Errorf("output file %q is not a bitmap", cmd.Output)
	}
	return a.processFile(cmd.Input, cmd.Output)
}

type app struct {
	pipeline *pipeline.Pipeline
	logger   *logrus.Logger
	opts     options
}

func (a *app) processFile(input, output string) error {
	start := time.Now()
	log := a.logger.WithFields(logrus.Fields{"input": input, "output": output})

	bm, err := bmp.Load(input)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"width":  bm.Pixels.Width(),
		"height": bm.Pixels.Height(),
	}).Debug("Bitmap loaded")

	a.pipeline.Apply(bm.Pixels)

	if err := bmp.Save(output, bm); err != nil {
		return err
	}
	if a.opts.preview != "" {
		if err := writePreview(a.opts.preview, bm.Pixels, a.opts.previewSize); err != nil {
			return err
		}
		log.WithField("preview", a.opts.preview).Debug("Preview written")
	}

	log.WithFields(logrus.Fields{
		"filters": a.pipeline.Len(),
		"width":   bm.Pixels.Width(),
		"height":  bm.Pixels.Height(),
		"elapsed": time.Since(start),
	}).Info("Bitmap processed")
	return nil
}

func (a *app) processDir(inputDir, outputDir string) error {
	files, err := util.ListBitmapFiles(inputDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outputDir, err)
	}
	for _, f := range files {
		if err := a.processFile(f.Path, filepath.Join(outputDir, f.Name)); err != nil {
			return err
		}
	}
	a.logger.WithField("files", len(files)).Info("Batch complete")
	return nil
}

// writePreview stores a PNG thumbnail of pixels that fits in size x size.
func writePreview(path string, pixels *images.PixelBuffer, size uint) (err error) {
	thumb := resize.Thumbnail(size, size, images.ToRGBA(pixels), resize.Lanczos3)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating preview: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing preview: %w", cerr)
		}
	}()

	if err := png.Encode(f, thumb); err != nil {
		return fmt.Errorf("encoding preview: %w", err)
	}
	return nil
}

// initLogger initializes the logger with appropriate level.
func initLogger(debugMode bool, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
