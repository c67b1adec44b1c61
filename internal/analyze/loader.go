package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// BuildTag is set while loading packages. Generated files are constrained
// with its negation so that stale output never hides the annotated sources.
const BuildTag = "cmpbygen"

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph  *TypeGraph
	dir    string
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory patterns are resolved against.
func WithDir(dir string) Option {
	return func(a *Analyzer) { a.dir = dir }
}

// WithLogger sets the logger used for load progress.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:  NewTypeGraph(),
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/music").
//
// Type errors do not fail the load: annotated packages commonly refer to
// methods that only exist once generated. They are kept in
// PackageInfo.Problems. List and parse errors are fatal.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       LoadMode,
		Dir:        a.dir,
		BuildFlags: []string{"-tags=" + BuildTag},
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				continue
			}

			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		if pkg.Types == nil || pkg.TypesInfo == nil {
			return nil, fmt.Errorf("package %s: no type information", pkg.PkgPath)
		}

		info := a.processPackage(pkg)
		a.graph.AddPackage(info)

		a.logger.Debug("package loaded",
			slog.String("package", info.Path),
			slog.Int("types", len(info.Types)),
			slog.Int("problems", len(info.Problems)))
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage describes the named types of a loaded package in
// declaration order.
func (a *Analyzer) processPackage(pkg *packages.Package) *PackageInfo {
	info := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	for _, e := range pkg.Errors {
		info.Problems = append(info.Problems, e.Error())
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Assign.IsValid() {
					continue
				}

				obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && !gd.Lparen.IsValid() {
					doc = gd.Doc
				}

				t := describeType(pkg.Fset, ts, obj)
				t.Annotations = ParseAnnotations(pkg.Fset, doc, ts.Comment)
				info.Types = append(info.Types, t)
			}
		}
	}

	collectEnumCases(pkg, info)
	collectSealedCases(info)

	return info
}

// describeType builds the structural description of one declared type.
func describeType(fset *token.FileSet, ts *ast.TypeSpec, obj *types.TypeName) *TypeInfo {
	t := &TypeInfo{
		ID:     TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()},
		Pos:    fset.Position(ts.Name.Pos()),
		GoType: obj.Type(),
	}

	if ts.TypeParams != nil && ts.TypeParams.NumFields() > 0 {
		t.Shape = "generic type"
		return t
	}

	switch u := obj.Type().Underlying().(type) {
	case *types.Struct:
		if u.NumFields() == 0 {
			t.Shape = "struct without fields"
			return t
		}

		t.Kind = TypeKindRecord
		t.Fields = describeFields(fset, ts, u)

	case *types.Interface:
		if u.NumMethods() == 0 {
			t.Shape = "interface without methods"
			return t
		}

		t.Kind = TypeKindVariant
		t.Variant = VariantSealed

	case *types.Basic:
		// confirmed as an enum once its constants are collected
		t.Kind = TypeKindVariant
		t.Variant = VariantEnum

	default:
		t.Shape = shapeOf(u)
	}

	return t
}

// describeFields lists struct fields with the annotations of their doc and
// line comments. Types declared from another struct type have no field
// syntax of their own and carry no field annotations.
func describeFields(fset *token.FileSet, ts *ast.TypeSpec, st *types.Struct) []FieldInfo {
	fields := make([]FieldInfo, 0, st.NumFields())

	add := func(v *types.Var, anns []Annotation) {
		fields = append(fields, FieldInfo{
			Name:        v.Name(),
			Index:       len(fields),
			Exported:    v.Exported(),
			Embedded:    v.Embedded(),
			Annotations: anns,
			Pos:         fset.Position(v.Pos()),
			GoType:      v.Type(),
		})
	}

	syntax, ok := ts.Type.(*ast.StructType)
	if !ok {
		for i := range st.NumFields() {
			add(st.Field(i), nil)
		}

		return fields
	}

	for _, f := range syntax.Fields.List {
		anns := ParseAnnotations(fset, f.Doc, f.Comment)

		count := max(len(f.Names), 1)
		for range count {
			if len(fields) >= st.NumFields() {
				break
			}

			add(st.Field(len(fields)), anns)
		}
	}

	return fields
}

// collectEnumCases attaches package constants to named basic types. Basic
// types without constants are not enums. A constant repeating the value of
// an earlier one is an alias, not a case.
func collectEnumCases(pkg *packages.Package, info *PackageInfo) {
	type caseKey struct {
		enum *TypeInfo
		val  string
	}

	seen := make(map[caseKey]bool)
	enums := make(map[*types.TypeName]*TypeInfo)
	for _, t := range info.Types {
		if t.Kind == TypeKindVariant && t.Variant == VariantEnum {
			if named, ok := t.GoType.(*types.Named); ok {
				enums[named.Obj()] = t
			}
		}
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}

			for _, spec := range gd.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}

				for _, name := range vs.Names {
					c, ok := pkg.TypesInfo.Defs[name].(*types.Const)
					if !ok || c.Name() == "_" {
						continue
					}

					named, ok := c.Type().(*types.Named)
					if !ok {
						continue
					}

					t := enums[named.Obj()]
					if t == nil {
						continue
					}

					key := caseKey{enum: t, val: c.Val().ExactString()}
					if seen[key] {
						continue
					}

					seen[key] = true
					t.Cases = append(t.Cases, CaseInfo{
						Name: c.Name(),
						Pos:  pkg.Fset.Position(name.Pos()),
					})
				}
			}
		}
	}

	for _, t := range enums {
		if len(t.Cases) == 0 {
			t.Kind = TypeKindUnsupported
			t.Shape = "basic type without constants"
		}
	}
}

// collectSealedCases attaches to each interface the named types of the same
// package implementing it, in declaration order.
func collectSealedCases(info *PackageInfo) {
	for _, iface := range info.Types {
		if iface.Kind != TypeKindVariant || iface.Variant != VariantSealed {
			continue
		}

		it, ok := iface.GoType.Underlying().(*types.Interface)
		if !ok {
			continue
		}

		for _, t := range info.Types {
			if t == iface || t.GoType == nil || types.IsInterface(t.GoType) {
				continue
			}

			if named, ok := t.GoType.(*types.Named); ok && named.TypeParams().Len() > 0 {
				continue
			}

			switch {
			case types.Implements(t.GoType, it):
				iface.Cases = append(iface.Cases, CaseInfo{Name: t.ID.Name, Pos: t.Pos})
			case types.Implements(types.NewPointer(t.GoType), it):
				iface.Cases = append(iface.Cases, CaseInfo{Name: t.ID.Name, Pos: t.Pos, PointerOnly: true})
			}
		}
	}
}

func shapeOf(t types.Type) string {
	switch t.(type) {
	case *types.Slice:
		return "slice"
	case *types.Array:
		return "array"
	case *types.Map:
		return "map"
	case *types.Signature:
		return "func"
	case *types.Chan:
		return "channel"
	case *types.Pointer:
		return "pointer"
	default:
		return types.TypeString(t, nil)
	}
}
