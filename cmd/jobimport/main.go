// Command jobimport validates job feed files offline and prints the
// assembled jobs.
//
//	jobimport --format xml-hotelleriejobs [--output json|yaml] feed.xml [more.xml ...]
//
// Diagnostics go to stderr as file:line:column: message. The exit status is
// 0 when every file imports, 1 when any fails, and 2 on usage errors.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/JonMunkholm/jobimport/internal/core"
	"github.com/JonMunkholm/jobimport/internal/schema"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// fileResult is the printed outcome for one input file.
type fileResult struct {
	File    string            `json:"file" yaml:"file"`
	Success bool              `json:"success" yaml:"success"`
	Errors  string            `json:"errors,omitempty" yaml:"errors,omitempty"`
	Jobs    []core.JobRecord  `json:"jobs" yaml:"jobs"`
	Skipped []core.SkippedJob `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	err error
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jobimport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", schema.HotellerieJobsFormat, "feed format identifier")
	schemaDir := fs.String("schema-dir", "", "directory with XSD files (default: embedded schemas)")
	output := fs.String("output", "json", "output encoding: json or yaml")
	skipIncomplete := fs.Bool("skip-incomplete", false, "drop jobs with missing fields instead of failing the file")
	maxSize := fs.Int64("max-size", core.DefaultMaxFileSize, "maximum document size in bytes")
	parallel := fs.Int("parallel", runtime.GOMAXPROCS(0), "files imported at once")
	fs.Usage = func() {
		_ = writef(stderr, "Usage: jobimport [options] <feed.xml|-> [...]\n\n")
		_ = writeln(stderr, "Validates job feeds and prints the assembled jobs.")
		_ = writeln(stderr)
		_ = writeln(stderr, "Options:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *output != "json" && *output != "yaml" {
		_ = writef(stderr, "error: unknown output %q\n", *output)
		fs.Usage()
		return 2
	}
	files := fs.Args()
	if len(files) == 0 {
		_ = writeln(stderr, "error: at least one feed file is required")
		fs.Usage()
		return 2
	}
	if countStdin(files) > 1 {
		_ = writeln(stderr, "error: standard input (-) can only be read once")
		fs.Usage()
		return 2
	}

	registry, err := schema.NewRegistry(schema.Options{
		SchemaDir:      *schemaDir,
		SkipIncomplete: *skipIncomplete,
	})
	if err != nil {
		_ = writef(stderr, "error loading schemas: %v\n", err)
		return 1
	}

	service := core.NewService(registry, core.ServiceOptions{
		MaxFileSize:   *maxSize,
		MaxConcurrent: *parallel,
	})

	results := importFiles(context.Background(), service, *format, files, stdin, *parallel)

	failed := false
	for _, res := range results {
		if res.err != nil {
			failed = true
			if err := reportFailure(stderr, res); err != nil {
				return 1
			}
		}
	}

	if err := encode(stdout, *output, results); err != nil {
		_ = writef(stderr, "error writing output: %v\n", err)
		return 1
	}

	if failed {
		return 1
	}
	return 0
}

// importFiles imports every file, at most parallel at a time, and returns
// the results in argument order.
func importFiles(ctx context.Context, service *core.Service, format string, files []string, stdin io.Reader, parallel int) []fileResult {
	results := make([]fileResult, len(files))

	var g errgroup.Group
	g.SetLimit(max(parallel, 1))

	for i, name := range files {
		g.Go(func() error {
			results[i] = importFile(ctx, service, format, name, stdin)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func countStdin(files []string) int {
	n := 0
	for _, name := range files {
		if name == "-" {
			n++
		}
	}
	return n
}

func importFile(ctx context.Context, service *core.Service, format, name string, stdin io.Reader) fileResult {
	res := fileResult{File: name, Jobs: []core.JobRecord{}}

	var r io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			res.err = err
			res.Errors = err.Error()
			return res
		}
		defer f.Close()
		r = f
	}

	result, err := service.ImportReader(ctx, format, r)
	if err != nil {
		res.err = err
		res.Errors = failureMessage(err)
		return res
	}

	res.Success = true
	res.Jobs = result.Jobs
	res.Skipped = result.Skipped
	return res
}

func failureMessage(err error) string {
	if ie, ok := core.AsImportError(err); ok {
		return ie.Message
	}
	if errors.Is(err, core.ErrFileTooLarge) || errors.Is(err, core.ErrMissingInput) {
		return core.MapError(err).Message
	}
	return err.Error()
}

func reportFailure(w io.Writer, res fileResult) error {
	if diags, ok := core.DiagnosticsOf(res.err); ok {
		for _, d := range diags {
			if err := writef(w, "%s:%d:%d: %s\n", res.File, d.Line, d.Column, d.Message); err != nil {
				return err
			}
		}
	}
	return writef(w, "%s: %s\n", res.File, res.err)
}

func encode(w io.Writer, output string, results []fileResult) error {
	if output == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
