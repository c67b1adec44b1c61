package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fatih/color"

	"cmpby-generator/internal/gen"
	"cmpby-generator/internal/watch"
)

// GenCmd represents the gen command
type GenCmd struct {
	SourceFlags
}

// Run executes the gen command
func (cmd *GenCmd) Run(ctx *Context) error {
	r, err := newRunner(ctx, cmd.SourceFlags)
	if err != nil {
		return err
	}

	_, err = r.write(ctx.Ctx, cmd.Patterns)

	return err
}

// CheckCmd represents the check command
type CheckCmd struct {
	SourceFlags
}

// Run executes the check command
func (cmd *CheckCmd) Run(ctx *Context) error {
	r, err := newRunner(ctx, cmd.SourceFlags)
	if err != nil {
		return err
	}

	_, out, err := r.generate(ctx.Ctx, cmd.Patterns)
	if err != nil {
		return err
	}

	stale, err := gen.Stale(out.Files)
	if err != nil {
		return err
	}

	yellow := color.New(color.FgYellow)
	for _, path := range stale {
		yellow.Fprintf(r.out, "%s: out of date\n", displayPath(r.dir, path))
	}

	switch {
	case out.Diagnostics.HasErrors():
		return ErrDiagnostics
	case len(stale) > 0:
		return ErrStale
	default:
		return nil
	}
}

// WatchCmd represents the watch command
type WatchCmd struct {
	SourceFlags
	Debounce time.Duration `help:"Quiet period before regenerating" default:"200ms"`
}

// Run executes the watch command
func (cmd *WatchCmd) Run(ctx *Context) error {
	r, err := newRunner(ctx, cmd.SourceFlags)
	if err != nil {
		return err
	}

	graph, err := r.write(ctx.Ctx, cmd.Patterns)
	if err != nil && !errors.Is(err, ErrDiagnostics) {
		return err
	}

	dirs := packageDirs(graph)

	w, err := watch.New(dirs, func(ctx context.Context, changed []string) error {
		r.logger.Info("regenerating", slog.Int("changed", len(changed)))

		_, err := r.write(ctx, cmd.Patterns)
		if errors.Is(err, ErrDiagnostics) {
			return nil
		}

		return err
	}, watch.Options{
		Debounce: cmd.Debounce,
		Ignore:   []string{r.cfg.Output},
		Logger:   r.logger,
	})
	if err != nil {
		return err
	}

	color.New(color.FgCyan).Fprintf(r.out, "Watching %d package(s); press Ctrl+C to stop\n", len(dirs))

	return w.Run(ctx.Ctx)
}
