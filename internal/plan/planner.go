package plan

import (
	"errors"
	"fmt"
	"go/types"
	"log/slog"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/config"
	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/match"
)

// Planner turns annotated types into validated synthesis results.
// It keeps no state between types and is safe for concurrent use.
type Planner struct {
	policies   []Policy
	markers    []string
	classifier *analyze.Classifier
	logger     *slog.Logger
}

// NewPlanner creates a Planner. graph lets the classifier recognize types
// that receive generated routines; it may be nil.
func NewPlanner(cfg *config.Config, graph *analyze.TypeGraph, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Planner{
		policies:   Policies(cfg.Markers),
		markers:    cfg.Markers.All(),
		classifier: analyze.NewClassifier(graph, cfg.Markers, cfg.Methods),
		logger:     logger,
	}
}

// Plan plans every package of graph in load order.
func (p *Planner) Plan(graph *analyze.TypeGraph) *Plan {
	out := &Plan{}

	for _, path := range graph.Order {
		pp, diags := p.PlanPackage(graph.Packages[path])
		out.Packages = append(out.Packages, pp)
		out.Diagnostics.Merge(diags)
	}

	return out
}

// PlanPackage plans the annotated types of one package.
func (p *Planner) PlanPackage(pkg *analyze.PackageInfo) (*PackagePlan, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	pp := &PackagePlan{Package: pkg}
	for _, t := range pkg.Types {
		if r := p.PlanType(t, &diags); r != nil {
			pp.Results = append(pp.Results, r)
		}
	}

	p.logger.Debug("package planned",
		slog.String("package", pkg.Path),
		slog.Int("results", len(pp.Results)),
		slog.Int("errors", len(diags.Errors)))

	return pp, diags
}

// PlanType plans one type. It returns nil when the type carries no marker
// or when any check fails; failures are recorded in diags.
func (p *Planner) PlanType(t *analyze.TypeInfo, diags *diagnostic.Diagnostics) *Result {
	checkAnnotations(t, p.markers, diags)

	active := activePolicies(t, p.policies)
	if len(active) == 0 {
		return nil
	}

	if err := validateType(t, active); err != nil {
		p.report(diags, t, err)
		return nil
	}

	r := &Result{Type: t}
	failed := false

	for _, pol := range active {
		if pol.Orders() {
			entries, err := p.resolveHalf(t, pol, true)
			if err != nil {
				p.report(diags, t, err)
				failed = true

				// the hashing half reads the same annotations
				continue
			}

			r.Ordering = p.classify(t, entries, true, diags)
			r.EmitOrdering = true
		}

		if pol.Hashes() {
			entries, err := p.resolveHalf(t, pol, false)
			if err != nil {
				p.report(diags, t, err)
				failed = true
			} else {
				r.Hashing = p.classify(t, entries, false, diags)
				r.EmitHashing = true
			}
		}
	}

	if failed {
		return nil
	}

	p.logger.Debug("type planned",
		slog.String("type", t.ID.String()),
		slog.Int("ordering", len(r.Ordering)),
		slog.Int("hashing", len(r.Hashing)))

	return r
}

// resolveHalf resolves the selector sequence of one half of a policy. The
// hashing half of the combined policy drops the interleave marker and keeps
// the type-level selectors ahead of the fields.
func (p *Planner) resolveHalf(t *analyze.TypeInfo, pol Policy, ordering bool) ([]SelectorEntry, error) {
	typeLevel, err := ParseAttachments(t, pol.Marker, pol.RecognizesMarker())
	if err != nil {
		return nil, err
	}

	fields, err := ScanFields(t, pol.Marker)
	if err != nil {
		return nil, err
	}

	if t.Kind == analyze.TypeKindVariant {
		fields = caseOrder(typeLevel)
	}

	entries, err := Resolve(typeLevel, fields, ordering)
	if err != nil {
		var e *diagnostic.Error
		if errors.As(err, &e) && e.Code == diagnostic.CodeEmptySelection {
			e.Message = fmt.Sprintf("@%s: %s; mark fields with @%s or list selectors in @%s(...)",
				pol.Marker, e.Message, pol.Marker, pol.Marker)
		}

		return nil, err
	}

	return entries, nil
}

// classify resolves each selector with the classifier. Problems found here
// are warnings: the Go compiler reports the generated code anyway.
func (p *Planner) classify(t *analyze.TypeInfo, entries []SelectorEntry, ordering bool, diags *diagnostic.Diagnostics) []Step {
	steps := make([]Step, 0, len(entries))

	for _, e := range entries {
		if e.CaseOrder {
			steps = append(steps, Step{
				Selector:  e.Selector,
				Pos:       e.Pos,
				Class:     analyze.Class{Kind: analyze.ValueOrdered, Type: types.Typ[types.Int]},
				CaseOrder: true,
			})

			continue
		}

		cls, err := p.classifier.Classify(t, e.Selector)

		var ue *analyze.UnresolvedError
		switch {
		case errors.As(err, &ue):
			diags.AddWarning(diagnostic.CodeUnresolvedSelector, ue.Error(), e.Pos, t.ID.Name,
				match.Suggest(ue.Segment, ue.Candidates, maxSuggestionDistance)...)
			cls = analyze.Class{Kind: analyze.ValueUnknown}
		case ordering && !cls.Orderable():
			diags.AddWarning(diagnostic.CodeIncomparable,
				fmt.Sprintf("selector %q has type %s, which has no order%s", e.Selector, typeString(cls.Type), because(cls)),
				e.Pos, t.ID.Name)
		case !ordering && !cls.Hashable():
			diags.AddWarning(diagnostic.CodeIncomparable,
				fmt.Sprintf("selector %q has type %s, which cannot be hashed%s", e.Selector, typeString(cls.Type), because(cls)),
				e.Pos, t.ID.Name)
		}

		steps = append(steps, Step{Selector: e.Selector, Pos: e.Pos, Class: cls})
	}

	return steps
}

// report records err against t, filling in what the error does not know.
func (p *Planner) report(diags *diagnostic.Diagnostics, t *analyze.TypeInfo, err error) {
	var e *diagnostic.Error
	if errors.As(err, &e) {
		if e.TypeName == "" {
			e.TypeName = t.ID.Name
		}

		if !e.Pos.IsValid() {
			e.Pos = t.Pos
		}
	}

	diags.AddErr(err, diagnostic.CodeGrammar, t.Pos, t.ID.Name)
}

func because(cls analyze.Class) string {
	if r := cls.Explain(); r != "" {
		return ": " + r
	}

	return ""
}

func typeString(t types.Type) string {
	if t == nil {
		return "unknown"
	}

	return types.TypeString(t, func(pkg *types.Package) string { return pkg.Name() })
}
