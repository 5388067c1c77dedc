package csp

import "fmt"

// Predicate is the raw, two-argument function a Constraint wraps. It must be
// safe to call concurrently since Constraint values are immutable and freely
// shared across search branches.
type Predicate func(a, b any) bool

// Constraint pairs a Predicate with a dual flag. Evaluating a non-dual
// constraint computes predicate(a, b); a dual constraint computes
// predicate(b, a). Dual is how the CSP container stores the reversed view of
// a binary constraint at the symmetric adjacency entry, without needing a
// second closure.
//
// Constraint is immutable after construction and comparable by name+dual,
// since Go function values themselves cannot be compared - Constraint
// carries its predicate's registered name for that purpose, mirroring the
// original source's reliance on Python's function.__name__.
type Constraint struct {
	name string
	fn   Predicate
	dual bool
}

// NewConstraint wraps fn as a named, non-dual Constraint. name is used only
// for Equal comparisons and diagnostics; it has no effect on evaluation.
func NewConstraint(name string, fn Predicate) Constraint {
	return Constraint{name: name, fn: fn, dual: false}
}

// Apply evaluates the constraint over (a, b), swapping the arguments first
// if the constraint is a dual view.
func (c Constraint) Apply(a, b any) bool {
	if c.fn == nil {
		return false
	}
	if c.dual {
		a, b = b, a
	}
	return c.fn(a, b)
}

// Dual returns a new Constraint wrapping the same predicate with the dual
// flag toggled.
func (c Constraint) Dual() Constraint {
	return Constraint{name: c.name, fn: c.fn, dual: !c.dual}
}

// Name returns the constraint's registered predicate name, e.g. "different".
func (c Constraint) Name() string { return c.name }

// Equal reports whether c and other wrap the same named predicate with the
// same dual flag.
func (c Constraint) Equal(other Constraint) bool {
	return c.name == other.name && c.dual == other.dual
}

// IsZero reports whether c is the zero Constraint (no predicate attached),
// used by CSP lookups that return a Constraint alongside a found bool.
func (c Constraint) IsZero() bool { return c.fn == nil }

func (c Constraint) String() string {
	if c.dual {
		return fmt.Sprintf("dual(%s)", c.name)
	}
	return c.name
}

// compare provides a total order over the orderable built-in kinds the named
// predicates below support: int, int64, float64 and string, each compared
// only against a value of the same kind. It mirrors Python's duck-typed <, > operators for the small set
// of value kinds CSP domains realistically use (colors, positions, digits).
// Mismatched or unorderable kinds compare as equal (0), which for
// Greater/Lesser resolves to "constraint not satisfied" rather than a panic.
func compare(a, b any) int {
	switch x := a.(type) {
	case int:
		if y, ok := b.(int); ok {
			return cmpOrdered(x, y)
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmpOrdered(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmpOrdered(x, y)
		}
	case string:
		if y, ok := b.(string); ok {
			return cmpOrdered(x, y)
		}
	}
	return 0
}

func cmpOrdered[T int | int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Named built-in predicates, matching Constraints.py's equals/different/
// greater/greaterOrEqual/lesser/lesserOrEqual exactly. Each is a Constraint
// value, ready to be passed to AddUnaryConstraint/AddBinaryConstraint.
var (
	// Equals is satisfied when the two values compare equal.
	Equals = NewConstraint("equals", func(a, b any) bool { return a == b })

	// Different is satisfied when the two values are not equal.
	Different = NewConstraint("different", func(a, b any) bool { return a != b })

	// Greater is satisfied when a > b.
	Greater = NewConstraint("greater", func(a, b any) bool { return compare(a, b) > 0 })

	// GreaterOrEqual is satisfied when a >= b.
	GreaterOrEqual = NewConstraint("greaterOrEqual", func(a, b any) bool { return compare(a, b) >= 0 })

	// Lesser is satisfied when a < b.
	Lesser = NewConstraint("lesser", func(a, b any) bool { return compare(a, b) < 0 })

	// LesserOrEqual is satisfied when a <= b.
	LesserOrEqual = NewConstraint("lesserOrEqual", func(a, b any) bool { return compare(a, b) <= 0 })
)
