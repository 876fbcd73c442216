package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"evgen/internal/codegen/generator"
	"evgen/internal/codegen/scanner"
)

// Generate scans input-event headers and emits typed bindings.
type Generate struct {
	Headers []string `arg:"" optional:"" name:"header" help:"Paths to input-event headers (e.g. /usr/include/linux/input-event-codes.h)"`
	Lang    string   `help:"Target language for the generated bindings" enum:"rust,go" default:"rust" env:"EVGEN_LANG"`
	Output  string   `help:"Write generated source to this file instead of stdout" env:"EVGEN_OUTPUT"`

	status int
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(kctx *kong.Context, logger *slog.Logger) error {
	if len(g.Headers) == 0 {
		if err := kctx.PrintUsage(false); err != nil {
			return err
		}
		g.status = 2
		return nil
	}

	status, err := g.Execute(logger)
	if err != nil {
		return err
	}
	g.status = status
	return nil
}

// ExitStatus reports the process exit status a finished run asks for.
func (g *Generate) ExitStatus() int { return g.status }

// Execute scans the selected headers into one shared accumulator and emits
// bindings once. A single-header invocation still reports status 2; the
// build scripts consuming this tool depend on that.
func (g *Generate) Execute(logger *slog.Logger) (int, error) {
	tables := scanner.NewTables()
	for _, path := range selectInputs(g.Headers) {
		logger.Debug("Scanning header", "path", path)
		if err := tables.ScanFile(path); err != nil {
			return 0, fmt.Errorf("scan %s: %w", path, err)
		}
	}

	w, cleanup, err := g.output(logger)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	gen := generator.New(g.Lang, logger)
	if err := gen.Run(w, tables); err != nil {
		return 0, err
	}

	if len(g.Headers) == 1 {
		return 2, nil
	}
	return 0, nil
}

func (g *Generate) output(logger *slog.Logger) (io.Writer, func(), error) {
	if g.Output == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			logger.Info("Writing generated source to the terminal; pass --output or redirect stdout to capture it")
		}
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(g.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// selectInputs keeps the established argument handling: with three or more
// headers only the first and the last are read, middle paths are never
// opened.
func selectInputs(paths []string) []string {
	if len(paths) <= 2 {
		return paths
	}
	return []string{paths[0], paths[len(paths)-1]}
}
