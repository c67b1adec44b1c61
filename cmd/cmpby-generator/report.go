package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/gen"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	okColor      = color.New(color.FgGreen)
)

// printDiagnostics writes one line per diagnostic, errors first. Infos are
// only shown when verbose.
func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics, verbose bool) {
	for _, d := range diags.Errors {
		errorColor.Fprintln(w, d.String())
	}

	for _, d := range diags.Warnings {
		warningColor.Fprintln(w, d.String())
	}

	if !verbose {
		return
	}

	for _, d := range diags.Infos {
		infoColor.Fprintln(w, d.String())
	}
}

func printWriteResult(w io.Writer, dir string, res *gen.WriteResult, verbose bool) {
	for _, path := range res.Written {
		okColor.Fprintf(w, "wrote %s\n", displayPath(dir, path))
	}

	for _, path := range res.Removed {
		okColor.Fprintf(w, "removed %s\n", displayPath(dir, path))
	}

	if verbose && len(res.Unchanged) > 0 {
		fmt.Fprintf(w, "%d file(s) unchanged\n", len(res.Unchanged))
	}
}

// displayPath shortens path to be relative to dir when it lies below it.
func displayPath(dir, path string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return path
	}

	rel, err := filepath.Rel(abs, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}

	return rel
}
