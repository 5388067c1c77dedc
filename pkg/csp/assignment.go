package csp

// Assignment is a partial variable->value map, plus values MAC has
// tentatively hidden ("inferences") for the current search branch. It is
// value-typed in spirit: every descent into a new branch works off
// Assignment.Clone, so the parent copy survives a failed branch unmodified.
//
// A null Assignment (Assignment.IsNull) signals unsatisfiability. It is
// distinct from an empty, non-null Assignment, which represents "no
// variables bound yet" at the start of a search.
type Assignment struct {
	bound      map[*Variable]any
	inferences map[*Variable]map[any]struct{}
	null       bool
}

// NewAssignment returns an empty, non-null Assignment.
func NewAssignment() *Assignment {
	return &Assignment{
		bound:      make(map[*Variable]any),
		inferences: make(map[*Variable]map[any]struct{}),
	}
}

// NullAssignment returns the sentinel Assignment used to signal
// unsatisfiability.
func NullAssignment() *Assignment {
	a := NewAssignment()
	a.null = true
	return a
}

// IsNull reports whether this Assignment is the unsatisfiability sentinel.
func (a *Assignment) IsNull() bool { return a.null }

// SetNull marks the Assignment as null, discarding any bindings and
// inferences it held.
func (a *Assignment) SetNull() {
	a.null = true
	a.bound = make(map[*Variable]any)
	a.inferences = make(map[*Variable]map[any]struct{})
}

// Clone returns an independent deep copy, used on every descent into a new
// search branch so that a failed branch never corrupts its parent.
func (a *Assignment) Clone() *Assignment {
	na := &Assignment{
		bound:      make(map[*Variable]any, len(a.bound)),
		inferences: make(map[*Variable]map[any]struct{}, len(a.inferences)),
		null:       a.null,
	}
	for v, val := range a.bound {
		na.bound[v] = val
	}
	for v, vals := range a.inferences {
		cp := make(map[any]struct{}, len(vals))
		for val := range vals {
			cp[val] = struct{}{}
		}
		na.inferences[v] = cp
	}
	return na
}

// Bind records var := value. It returns ErrAssignmentIsNull if the
// Assignment is null, or ErrValueNotInDomain if value does not belong to
// v's initial domain.
func (a *Assignment) Bind(v *Variable, value any) error {
	if a.null {
		return newAssignmentError("Bind", ErrAssignmentIsNull)
	}
	if !v.ValidValue(value) {
		return newAssignmentError("Bind", ErrValueNotInDomain)
	}
	a.bound[v] = value
	return nil
}

// Unbind removes v's binding, if any.
func (a *Assignment) Unbind(v *Variable) error {
	if a.null {
		return newAssignmentError("Unbind", ErrAssignmentIsNull)
	}
	delete(a.bound, v)
	return nil
}

// Value returns the value bound to v and true, or (nil, false) if v is
// unbound.
func (a *Assignment) Value(v *Variable) (any, bool) {
	val, ok := a.bound[v]
	return val, ok
}

// MustValue returns the value bound to v, or *AssignmentError wrapping
// ErrNotBound if v has no binding. Unlike Value's comma-ok form, this is for
// callers that treat an unbound variable as a caller-contract violation
// rather than a state to branch on - e.g. reading back a solver's result
// after Assignment.IsNull has already confirmed the search succeeded.
func (a *Assignment) MustValue(v *Variable) (any, error) {
	val, ok := a.bound[v]
	if !ok {
		return nil, newAssignmentError("MustValue", ErrNotBound)
	}
	return val, nil
}

// Bindings returns a defensive copy of the variable->value map. Named
// Bindings rather than the source's getAssignment to avoid colliding with
// the Assignment type name in Go usage (a.Bindings() reads more naturally
// than a.Assignment()).
func (a *Assignment) Bindings() map[*Variable]any {
	out := make(map[*Variable]any, len(a.bound))
	for v, val := range a.bound {
		out[v] = val
	}
	return out
}

// Len returns the number of bound variables.
func (a *Assignment) Len() int { return len(a.bound) }

// AddInference records that value is tentatively hidden from v's effective
// domain for the remainder of this search branch, without touching
// v.hidden. This is MAC's non-destructive pruning mechanism (§4.4).
func (a *Assignment) AddInference(v *Variable, value any) error {
	if a.null {
		return newAssignmentError("AddInference", ErrAssignmentIsNull)
	}
	if !v.ValidValue(value) {
		return newAssignmentError("AddInference", ErrValueNotInDomain)
	}
	set, ok := a.inferences[v]
	if !ok {
		set = make(map[any]struct{})
		a.inferences[v] = set
	}
	set[value] = struct{}{}
	return nil
}

// InferencesFor returns a defensive copy of the values tentatively hidden
// from v, or an empty map if none.
func (a *Assignment) InferencesFor(v *Variable) map[any]struct{} {
	out := make(map[any]struct{})
	for val := range a.inferences[v] {
		out[val] = struct{}{}
	}
	return out
}

// EffectiveDomain returns v's domain as seen by MAC/backtracking under this
// assignment: {bound value} if v is bound, otherwise v.ActualDomain() minus
// this branch's inferences for v.
func (a *Assignment) EffectiveDomain(v *Variable) []any {
	if val, ok := a.bound[v]; ok {
		return []any{val}
	}
	inferred := a.inferences[v]
	actual := v.ActualDomain()
	if len(inferred) == 0 {
		return actual
	}
	out := make([]any, 0, len(actual))
	for _, val := range actual {
		if _, hidden := inferred[val]; !hidden {
			out = append(out, val)
		}
	}
	return out
}

// EffectiveDomainSize is len(EffectiveDomain(v)) without allocating the
// slice.
func (a *Assignment) EffectiveDomainSize(v *Variable) int {
	if _, ok := a.bound[v]; ok {
		return 1
	}
	inferred := a.inferences[v]
	count := 0
	for _, val := range v.ActualDomain() {
		if _, hidden := inferred[val]; !hidden {
			count++
		}
	}
	return count
}

// Union combines two assignments' bindings only; inferences are dropped,
// matching the source's Assignment.__add__ which unites assigned variables
// and ignores inferences. Used by Cutset to merge the tree solver's
// sub-solution back into the partial assignment that produced the residual.
func (a *Assignment) Union(other *Assignment) *Assignment {
	na := NewAssignment()
	for v, val := range a.bound {
		na.bound[v] = val
	}
	for v, val := range other.bound {
		na.bound[v] = val
	}
	return na
}
