// Command shaderlink resolves pipeline descriptions and prints the linked
// stage configurations.
//
// Usage:
//
//	shaderlink [options] <pipeline.toml>...
//
// Examples:
//
//	shaderlink pipeline.toml                 # Resolve and print
//	shaderlink -o out.txt pipeline.toml      # Write the dump to a file
//	shaderlink -caps host.toml a.toml b.toml # Resolve against other capabilities
//	shaderlink -watch pipeline.toml          # Re-resolve on every change
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gogpu/shadercfg"
)

var (
	output  = flag.String("o", "", "output file (default: stdout)")
	caps    = flag.String("caps", "", "capability file replacing the [capability] table of every input")
	workers = flag.Int("workers", runtime.NumCPU(), "number of files resolved concurrently")
	watch   = flag.Bool("watch", false, "re-resolve inputs when they change")
	verbose = flag.Bool("v", false, "log debug messages")
	version = flag.Bool("version", false, "print version")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("shaderlink version %s\n", shadercfg.Version)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	if *output != "" && len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Error: -o needs exactly one input file")
		os.Exit(1)
	}

	logger := newLogger(*verbose)
	shadercfg.SetLogger(logger)

	r, err := newResolver(*caps, *workers, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := io.Writer(os.Stdout)
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	failed := r.printAll(out, r.resolveAll(args))

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := r.watch(ctx, out, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// newLogger returns a slog logger writing through a charmbracelet handler.
func newLogger(verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "shaderlink",
		Level:           level,
	})
	return slog.New(handler)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shaderlink [options] <pipeline.toml>...\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  shaderlink pipeline.toml             Resolve to stdout\n")
	fmt.Fprintf(os.Stderr, "  shaderlink -o out.txt pipeline.toml  Resolve to file\n")
	fmt.Fprintf(os.Stderr, "  shaderlink -watch pipeline.toml      Re-resolve on change\n")
}
