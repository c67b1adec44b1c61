package plan

import (
	"fmt"
	"go/token"
	"slices"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/common"
	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/match"
)

// maxSuggestionDistance bounds the edit distance of "did you mean" hints.
const maxSuggestionDistance = 2

// activePolicies returns the policies whose annotation appears on t.
func activePolicies(t *analyze.TypeInfo, policies []Policy) []Policy {
	var out []Policy

	for _, p := range policies {
		if t.Uses(p.Marker) {
			out = append(out, p)
		}
	}

	return out
}

// validateType runs the checks that do not depend on the selector lists:
// generator conflicts and the type shape.
func validateType(t *analyze.TypeInfo, active []Policy) error {
	var combined, separate *Policy

	for i := range active {
		if active[i].Mode == ModeCombined {
			combined = &active[i]
		} else if separate == nil {
			separate = &active[i]
		}
	}

	if combined != nil && separate != nil {
		return diagnostic.NewError(diagnostic.CodeConflict, annotationPos(t, combined.Marker), t.ID.Name, "",
			fmt.Sprintf("@%s already emits what @%s would; use one or the other", combined.Marker, separate.Marker), nil)
	}

	if t.Kind == analyze.TypeKindUnsupported {
		marker := active[0].Marker
		return diagnostic.NewError(diagnostic.CodeShape, annotationPos(t, marker), t.ID.Name, "",
			fmt.Sprintf("@%s: %s is a %s; expected a struct with fields, a sealed interface or an enum",
				marker, t.ID.Name, t.Shape), nil)
	}

	return nil
}

// annotationPos returns the position of the first use of marker on t.
func annotationPos(t *analyze.TypeInfo, marker string) token.Position {
	if ann, ok := common.First(t.AnnotationsNamed(marker)); ok {
		return ann.Pos
	}

	for _, f := range t.Fields {
		if mark, ok := common.First(f.Markers(marker)); ok {
			return mark.Pos
		}
	}

	return t.Pos
}

// checkAnnotations warns about annotation names that look like misspelled
// markers. Annotations far from every marker belong to other tools.
func checkAnnotations(t *analyze.TypeInfo, markers []string, diags *diagnostic.Diagnostics) {
	check := func(a analyze.Annotation) {
		if slices.Contains(markers, a.Name) {
			return
		}

		suggestions := match.Suggest(a.Name, markers, maxSuggestionDistance)
		if len(suggestions) == 0 {
			return
		}

		for i, s := range suggestions {
			suggestions[i] = "@" + s
		}

		diags.AddWarning(diagnostic.CodeUnknownAnnotation,
			fmt.Sprintf("unknown annotation @%s", a.Name), a.Pos, t.ID.Name, suggestions...)
	}

	for _, a := range t.Annotations {
		check(a)
	}

	for _, f := range t.Fields {
		for _, a := range f.Annotations {
			check(a)
		}
	}
}
