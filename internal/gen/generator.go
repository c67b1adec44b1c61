package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/token"
	"log/slog"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/config"
	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/plan"
)

// HeaderComment is the first line of every generated file.
const HeaderComment = "Code generated by cmpby-generator. DO NOT EDIT."

// Generator renders planned types into one Go file per package.
type Generator struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(cfg *config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Generator{cfg: cfg, logger: logger}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Package is the import path of the package the file belongs to.
	Package string
	// Path is where the file is written.
	Path string
	// Content is the formatted Go source code. It is nil when the package
	// has nothing left to generate and a previous output should be removed.
	Content []byte
}

// Output is the result of a generation run.
type Output struct {
	Files       []GeneratedFile
	Diagnostics diagnostic.Diagnostics
}

// GenerateAll plans and renders every package of graph. Packages are
// processed concurrently; the output keeps the graph's package order.
func (g *Generator) GenerateAll(ctx context.Context, graph *analyze.TypeGraph) (*Output, error) {
	planner := plan.NewPlanner(g.cfg, graph, g.logger)

	files := make([]*GeneratedFile, len(graph.Order))
	diags := make([]diagnostic.Diagnostics, len(graph.Order))

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.cfg.Workers)

	for i, path := range graph.Order {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			pkg := graph.Packages[path]
			for _, problem := range pkg.Problems {
				diags[i].AddInfo(diagnostic.CodeLoad, problem, token.Position{}, "")
			}

			pp, d := planner.PlanPackage(pkg)
			diags[i].Merge(d)

			file, err := g.GeneratePackage(pp)
			if err != nil {
				return fmt.Errorf("package %s: %w", path, err)
			}

			files[i] = file

			return nil
		})
	}

	if err := errg.Wait(); err != nil {
		return nil, err
	}

	out := &Output{}
	for i := range files {
		out.Diagnostics.Merge(diags[i])

		if files[i] != nil {
			out.Files = append(out.Files, *files[i])
		}
	}

	return out, nil
}

// GeneratePackage renders the results of one package. A package without
// results yields a removal entry for its output file, or nil when the
// package directory is unknown.
func (g *Generator) GeneratePackage(pp *plan.PackagePlan) (*GeneratedFile, error) {
	pkg := pp.Package

	file := &GeneratedFile{Package: pkg.Path}
	if pkg.Dir != "" {
		file.Path = filepath.Join(pkg.Dir, g.cfg.Output)
	}

	if len(pp.Results) == 0 {
		if file.Path == "" {
			return nil, nil
		}

		return file, nil
	}

	f := jen.NewFilePathName(pkg.Path, pkg.Name)
	f.HeaderComment(HeaderComment)
	f.HeaderComment("//go:build !" + analyze.BuildTag)
	f.ImportName(RuntimePkg, "cmpby")

	for _, r := range pp.Results {
		g.emitResult(f, r)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		if p, derr := writeDebugUnformatted(f, file.Path); derr == nil && p != "" {
			g.logger.Error("generated code does not format", slog.String("unformatted", p))
		}

		return nil, fmt.Errorf("rendering %s: %w", g.cfg.Output, err)
	}

	file.Content = buf.Bytes()

	g.logger.Debug("package generated",
		slog.String("package", pkg.Path),
		slog.Int("types", len(pp.Results)),
		slog.Int("bytes", len(file.Content)))

	return file, nil
}
