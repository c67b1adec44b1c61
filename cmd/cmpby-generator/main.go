// Package main provides the CLI entrypoint for cmpby-generator.
//
// cmpby-generator reads @CmpBy, @HashBy and @SortBy annotations from Go
// packages and writes Compare, Equal, Less and Hash routines next to the
// annotated types.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
)

// Context carries the global flags to every command.
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	Dir     string

	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
}

// CLI represents the command-line interface.
type CLI struct {
	Config  string `help:"Configuration file path (default: cmpby.yaml in --dir when present)" type:"path" short:"c"`
	Verbose bool   `help:"Enable verbose output" short:"v"`
	Quiet   bool   `help:"Only print errors" short:"q"`
	Dir     string `help:"Directory package patterns are resolved against" short:"C" default:"."`

	Gen   GenCmd   `cmd:"" default:"withargs" help:"Generate comparison and hash routines (default)"`
	Check CheckCmd `cmd:"" help:"Report diagnostics and out-of-date files without writing"`
	Watch WatchCmd `cmd:"" help:"Regenerate whenever annotated sources change"`
}

func main() {
	var cli CLI

	kctx := kong.Parse(&cli,
		kong.Name("cmpby-generator"),
		kong.Description("Generate Compare, Equal, Less and Hash routines from @CmpBy, @HashBy and @SortBy annotations."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &Context{
		Config:  cli.Config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
		Dir:     cli.Dir,
		Ctx:     ctx,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}

	if err := kctx.Run(appCtx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// newLogger returns a text logger on w with the level picked by the flags.
func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo

	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
