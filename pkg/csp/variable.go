package csp

// Variable is a named slot over a fixed, finite domain of values. Identity is
// referential: two *Variable values with identical names and domains are
// still distinct variables, exactly as the Python source relies on object
// identity for set/dict membership - a Go pointer is the natural stable
// handle for that, no separate ID arena is needed (see DESIGN.md).
//
// A Variable is immutable except for its hidden set: HideValue, UnhideValue
// and ResetDomain are the only mutators, and they only ever narrow or widen
// which of the initial values are currently "hidden" from ActualDomain.
type Variable struct {
	name    string
	initial domain
	hidden  domain
}

// NewVariable creates a Variable over the given domain of values. Duplicate
// values are collapsed. When at most 64 values are passed (duplicates
// included), a bitset representation is used internally (see domain.go);
// otherwise a hash set is used. Both are invisible at this API.
func NewVariable(name string, values ...any) *Variable {
	init := newDomain(values)
	return &Variable{
		name:    name,
		initial: init,
		hidden:  emptyDomain(init),
	}
}

// Name returns the variable's identifying name.
func (v *Variable) Name() string { return v.name }

// InitialDomain returns every value the variable could ever take, including
// currently hidden ones.
func (v *Variable) InitialDomain() []any { return v.initial.values() }

// ActualDomain returns a snapshot of initial \ hidden. Callers must treat the
// result as invalidated by any subsequent HideValue/UnhideValue/ResetDomain
// call.
func (v *Variable) ActualDomain() []any {
	out := make([]any, 0, v.initial.size())
	for _, val := range v.initial.values() {
		if !v.hidden.has(val) {
			out = append(out, val)
		}
	}
	return out
}

// ActualDomainSize returns len(ActualDomain()) without allocating the slice.
func (v *Variable) ActualDomainSize() int {
	count := 0
	for _, val := range v.initial.values() {
		if !v.hidden.has(val) {
			count++
		}
	}
	return count
}

// ValidValue reports whether value belongs to the variable's initial domain.
func (v *Variable) ValidValue(value any) bool { return v.initial.has(value) }

// HideValue removes value from the actual domain. It returns
// ErrValueNotInDomain, wrapped as a *VariableError, if value was never part
// of the initial domain.
func (v *Variable) HideValue(value any) error {
	if !v.initial.has(value) {
		return newVariableError("HideValue", ErrValueNotInDomain)
	}
	v.hidden = v.hidden.add(value)
	return nil
}

// UnhideValue restores a previously hidden value. It returns
// ErrValueNotHidden, wrapped as a *VariableError, if value is not currently
// hidden.
func (v *Variable) UnhideValue(value any) error {
	if !v.hidden.has(value) {
		return newVariableError("UnhideValue", ErrValueNotHidden)
	}
	v.hidden = v.hidden.remove(value)
	return nil
}

// ResetDomain unhides every value, restoring ActualDomain to InitialDomain.
func (v *Variable) ResetDomain() {
	v.hidden = emptyDomain(v.initial)
}

// String returns the variable's name, useful for log fields and test output.
func (v *Variable) String() string { return v.name }
