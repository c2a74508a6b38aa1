// Package cmdline turns command-line tokens into filter descriptors.
package cmdline

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-bmpfilter/pipeline"
)

// ErrUsage matches every parse failure.
var ErrUsage = errors.New("wrong program arguments")

// Result is a parsed command line.
type Result struct {
	// Help is set when no arguments were given.
	Help bool
	// Input is the path of the bitmap to read.
	Input string
	// Output is the path of the bitmap to write.
	Output string
	// Filters are the requested filters in order.
	Filters []pipeline.Descriptor
}

// Parse reads `input output [-name [param]...]...`.
//
// A token starting with '-' begins a new filter; every other token is a
// parameter of the current filter. An empty argument list asks for help.
//
// Arguments:
// - args: The arguments without the program name.
//
// Returns:
// - The parsed command line.
// - error matching ErrUsage when paths are missing, the first token after the
// paths is not a filter name, or a filter name is empty.
//
// @example
// res, err := Parse([]string{"in.bmp", "out.bmp", "-crop", "800", "600", "-gs"})
func Parse(args []string) (*Result, error) {
	if len(args) == 0 {
		return &Result{Help: true}, nil
	}
	if len(args) < 2 {
		return nil, errors.Wrap(ErrUsage, "input and output paths are required")
	}

	res := &Result{Input: args[0], Output: args[1]}
	rest := args[2:]
	if len(rest) == 0 {
		return res, nil
	}
	if !strings.HasPrefix(rest[0], "-") {
		return nil, errors.Wrapf(ErrUsage, "expected a filter name, got %q", rest[0])
	}

	for _, tok := range rest {
		if name, ok := strings.CutPrefix(tok, "-"); ok {
			if name == "" {
				return nil, errors.Wrap(ErrUsage, "empty filter name")
			}
			res.Filters = append(res.Filters, pipeline.Descriptor{Name: name})
			continue
		}
		last := &res.Filters[len(res.Filters)-1]
		last.Params = append(last.Params, tok)
	}
	return res, nil
}

// Manual renders the usage text for the given filters.
func Manual(program string, entries []pipeline.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Usage:\n  %s [flags] <input.bmp> <output.bmp> [-<filter> [param]...]...\n\n", program)
	sb.WriteString("Filters are applied left to right. Only uncompressed 24-bit bitmaps are supported.\n\n")
	sb.WriteString("Filters:\n")

	width := 0
	for _, e := range entries {
		width = max(width, len(e.Usage))
	}
	for _, e := range entries {
		fmt.Fprintf(&sb, "  %-*s  %s\n", width, e.Usage, e.Summary)
	}
	return sb.String()
}
