package analyze

import (
	"fmt"
	"go/types"
)

// Capability is what generated code can do with values of a type.
type Capability int

const (
	// CapabilityNone means the type supports neither == nor an order.
	CapabilityNone Capability = iota
	// CapabilityEquality means the type supports == and maphash.WriteComparable.
	CapabilityEquality
	// CapabilityOrder means the type satisfies cmp.Ordered.
	CapabilityOrder
)

const (
	VerdictOrdered      = "ordered"
	VerdictComparable   = "comparable"
	VerdictIncomparable = "incomparable"
)

// String returns a human-readable name for the capability.
func (c Capability) String() string {
	switch c {
	case CapabilityOrder:
		return VerdictOrdered
	case CapabilityEquality:
		return VerdictComparable
	case CapabilityNone:
		return VerdictIncomparable
	default:
		return "unknown"
	}
}

// CapabilityResult contains detailed information about a type's capability.
type CapabilityResult struct {
	Capability Capability
	Reason     string // Human-readable explanation
	Type       string // String representation of the type
}

// ScoreCapability determines which comparisons a type supports.
// Uses go/types for accurate type analysis.
func ScoreCapability(t types.Type) CapabilityResult {
	res := CapabilityResult{Type: types.TypeString(t, shortQualifier)}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		info := u.Info()

		switch {
		case info&types.IsOrdered != 0:
			res.Capability, res.Reason = CapabilityOrder, "basic type with an order"
			return res
		case info&types.IsBoolean != 0:
			res.Capability, res.Reason = CapabilityEquality, "booleans have no cmp.Ordered order"
			return res
		case info&types.IsComplex != 0:
			res.Capability, res.Reason = CapabilityEquality, "complex numbers have no order"
			return res
		}

	case *types.Map:
		res.Capability, res.Reason = CapabilityNone, "maps support neither == nor <"
		return res

	case *types.Signature:
		res.Capability, res.Reason = CapabilityNone, "funcs support neither == nor <"
		return res

	case *types.Chan:
		res.Capability, res.Reason = CapabilityEquality, "channels compare by identity only"
		return res

	case *types.Interface:
		res.Capability, res.Reason = CapabilityEquality, "interfaces support == only"
		return res

	case *types.Struct:
		if name, ok := incomparableField(u); ok {
			res.Capability, res.Reason = CapabilityNone, fmt.Sprintf("field %s is not comparable", name)
			return res
		}

	case *types.Array:
		if !types.Comparable(u.Elem()) {
			res.Capability, res.Reason = CapabilityNone, "array elements are not comparable"
			return res
		}
	}

	if types.Comparable(t) {
		res.Capability, res.Reason = CapabilityEquality, "supports == but not <"
		return res
	}

	res.Capability, res.Reason = CapabilityNone, "type is not comparable"

	return res
}

// incomparableField returns the first field of st that blocks ==.
func incomparableField(st *types.Struct) (string, bool) {
	for i := range st.NumFields() {
		if f := st.Field(i); !types.Comparable(f.Type()) {
			return f.Name(), true
		}
	}

	return "", false
}

func shortQualifier(pkg *types.Package) string {
	return pkg.Name()
}
