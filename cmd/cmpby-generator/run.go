package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/config"
	"cmpby-generator/internal/gen"
)

// Sentinel errors
var (
	ErrDiagnostics = errors.New("generation reported errors")
	ErrStale       = errors.New("generated files are out of date")
)

// SourceFlags are shared by the commands that load packages.
type SourceFlags struct {
	Patterns []string `arg:"" optional:"" help:"Package patterns to process" default:"./..."`
	Output   string   `help:"Generated file name (overrides config)" short:"o"`
	Workers  int      `help:"Packages generated in parallel (overrides config)" short:"j"`
}

// runner executes the load, plan and render pipeline for one command.
type runner struct {
	cfg     *config.Config
	dir     string
	logger  *slog.Logger
	out     io.Writer
	verbose bool
}

// newRunner resolves the configuration: the file named by --config, or the
// optional default file in --dir, then flag overrides.
func newRunner(ctx *Context, flags SourceFlags) (*runner, error) {
	path, optional := ctx.Config, false
	if path == "" {
		path, optional = filepath.Join(ctx.Dir, config.DefaultFile), true
	}

	cfg, err := config.Load(path, optional)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if flags.Output != "" {
		cfg.Output = flags.Output
	}

	if flags.Workers > 0 {
		cfg.Workers = flags.Workers
	}

	if ctx.Verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	verbose := cfg.Verbose && !ctx.Quiet

	return &runner{
		cfg:     cfg,
		dir:     ctx.Dir,
		logger:  newLogger(ctx.Stderr, verbose, ctx.Quiet),
		out:     ctx.Stdout,
		verbose: verbose,
	}, nil
}

// generate loads patterns and renders every package, printing diagnostics.
// The graph is returned so that watch mode knows which directories to follow.
func (r *runner) generate(ctx context.Context, patterns []string) (*analyze.TypeGraph, *gen.Output, error) {
	analyzer := analyze.NewAnalyzer(analyze.WithDir(r.dir), analyze.WithLogger(r.logger))

	graph, err := analyzer.LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, nil, err
	}

	out, err := gen.NewGenerator(r.cfg, r.logger).GenerateAll(ctx, graph)
	if err != nil {
		return nil, nil, err
	}

	printDiagnostics(r.out, out.Diagnostics, r.verbose)

	r.logger.Debug("generation finished",
		slog.Int("packages", len(graph.Order)),
		slog.Int("files", len(out.Files)),
		slog.Int("errors", len(out.Diagnostics.Errors)),
		slog.Int("warnings", len(out.Diagnostics.Warnings)))

	return graph, out, nil
}

// write generates and writes the output files. Types without errors are
// written even when others failed; ErrDiagnostics reports the failures.
func (r *runner) write(ctx context.Context, patterns []string) (*analyze.TypeGraph, error) {
	graph, out, err := r.generate(ctx, patterns)
	if err != nil {
		return nil, err
	}

	res, err := gen.WriteFiles(out.Files)
	if err != nil {
		return graph, err
	}

	printWriteResult(r.out, r.dir, res, r.verbose)

	if out.Diagnostics.HasErrors() {
		return graph, ErrDiagnostics
	}

	return graph, nil
}

// packageDirs lists the source directories of the loaded packages.
func packageDirs(graph *analyze.TypeGraph) []string {
	var dirs []string

	for _, path := range graph.Order {
		if dir := graph.Packages[path].Dir; dir != "" {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}
