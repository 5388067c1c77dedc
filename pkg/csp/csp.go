package csp

// edge is an ordered pair (from, to) with a binary constraint attached at
// CSP.binary[from][to]. Edges are directional: the dual constraint lives at
// the reversed edge, (to, from).
type edge struct {
	from, to *Variable
}

// CSP owns a set of Variables and two constraint adjacency structures: unary
// (variable -> value -> constraint) and binary (variable -> variable ->
// constraint, stored symmetrically with duals). At most one binary
// constraint may exist between any ordered pair, and at most one unary
// constraint per (variable, value).
type CSP struct {
	variables map[*Variable]struct{}
	unary     map[*Variable]map[any]Constraint
	binary    map[*Variable]map[*Variable]Constraint
}

// New returns an empty CSP.
func New() *CSP {
	return &CSP{
		variables: make(map[*Variable]struct{}),
		unary:     make(map[*Variable]map[any]Constraint),
		binary:    make(map[*Variable]map[*Variable]Constraint),
	}
}

// AddVariable adds v to the CSP's variable set. Adding an already-present
// variable is a no-op.
func (c *CSP) AddVariable(v *Variable) {
	c.variables[v] = struct{}{}
}

// GetVariable returns the variable with the given name and true, or
// (nil, false) if none matches. Variable lookup by name is O(n); callers
// that build many constraints by name should cache the *Variable instead of
// calling this repeatedly.
func (c *CSP) GetVariable(name string) (*Variable, bool) {
	for v := range c.variables {
		if v.name == name {
			return v, true
		}
	}
	return nil, false
}

// Variables returns a defensive copy of the variable set.
func (c *CSP) Variables() []*Variable {
	out := make([]*Variable, 0, len(c.variables))
	for v := range c.variables {
		out = append(out, v)
	}
	return out
}

// Count returns the number of variables in the CSP.
func (c *CSP) Count() int { return len(c.variables) }

func (c *CSP) hasVariable(v *Variable) bool {
	_, ok := c.variables[v]
	return ok
}

// AddUnaryConstraint stores con at unary[variable][value]. Returns
// *CSPError wrapping ErrUnknownVariable if variable has not been added to
// the CSP, or *ConstraintError wrapping ErrConstraintArity if con is the
// zero Constraint. If a constraint already exists at that slot, the call is
// a no-op unless override is true.
func (c *CSP) AddUnaryConstraint(variable *Variable, con Constraint, value any, override bool) error {
	if !c.hasVariable(variable) {
		return newCSPError("AddUnaryConstraint", ErrUnknownVariable)
	}
	if con.IsZero() {
		return newConstraintError("AddUnaryConstraint", ErrConstraintArity)
	}
	slot, ok := c.unary[variable]
	if !ok {
		slot = make(map[any]Constraint)
		c.unary[variable] = slot
	}
	if existing, ok := slot[value]; ok && !existing.IsZero() && !override {
		return nil
	}
	slot[value] = con
	return nil
}

// AddBinaryConstraint stores con at binary[v1][v2] and con.Dual() at
// binary[v2][v1]. Returns *CSPError wrapping ErrUnknownVariable if either
// variable has not been added to the CSP, or *ConstraintError wrapping
// ErrConstraintArity if con is the zero Constraint. If a constraint already
// exists between v1 and v2, the call is a no-op unless override is true.
func (c *CSP) AddBinaryConstraint(v1 *Variable, con Constraint, v2 *Variable, override bool) error {
	if !c.hasVariable(v1) || !c.hasVariable(v2) {
		return newCSPError("AddBinaryConstraint", ErrUnknownVariable)
	}
	if con.IsZero() {
		return newConstraintError("AddBinaryConstraint", ErrConstraintArity)
	}
	row1, ok := c.binary[v1]
	if !ok {
		row1 = make(map[*Variable]Constraint)
		c.binary[v1] = row1
	}
	row2, ok := c.binary[v2]
	if !ok {
		row2 = make(map[*Variable]Constraint)
		c.binary[v2] = row2
	}
	if existing, ok := row1[v2]; ok && !existing.IsZero() && !override {
		return nil
	}
	row1[v2] = con
	row2[v1] = con.Dual()
	return nil
}

// AddAllDifferent inserts the Different constraint between every ordered
// pair of distinct variables in the CSP.
func (c *CSP) AddAllDifferent() {
	vars := c.Variables()
	for _, v1 := range vars {
		for _, v2 := range vars {
			if v1 != v2 {
				_ = c.AddBinaryConstraint(v1, Different, v2, false)
			}
		}
	}
}

// UnaryConstraintsFor returns a defensive copy of the unary constraints
// attached to var, keyed by the fixed value each checks against. Returns an
// empty map if var has none or is unknown.
func (c *CSP) UnaryConstraintsFor(variable *Variable) map[any]Constraint {
	out := make(map[any]Constraint)
	for value, con := range c.unary[variable] {
		out[value] = con
	}
	return out
}

// BinaryConstraintsFor returns a defensive copy of the binary constraints
// involving var, keyed by neighbour. Returns an empty map if var has none
// or is unknown.
func (c *CSP) BinaryConstraintsFor(variable *Variable) map[*Variable]Constraint {
	out := make(map[*Variable]Constraint)
	for neighbour, con := range c.binary[variable] {
		out[neighbour] = con
	}
	return out
}

// FindBinaryConstraint returns the constraint stored at binary[v1][v2] and
// true, or the zero Constraint and false if none exists.
func (c *CSP) FindBinaryConstraint(v1, v2 *Variable) (Constraint, bool) {
	row, ok := c.binary[v1]
	if !ok {
		return Constraint{}, false
	}
	con, ok := row[v2]
	return con, ok
}

// FindUnaryConstraint returns the constraint stored at unary[v][value] and
// true, or the zero Constraint and false if none exists.
func (c *CSP) FindUnaryConstraint(v *Variable, value any) (Constraint, bool) {
	row, ok := c.unary[v]
	if !ok {
		return Constraint{}, false
	}
	con, ok := row[value]
	return con, ok
}

// Edges returns every ordered pair (v1, v2) with a binary constraint,
// returning only one direction per pair as stored (the dual lives at the
// reversed edge and is not separately listed here). AC-3 seeds its worklist
// with both directions of every pair in this set.
func (c *CSP) Edges() []edge {
	var out []edge
	seen := make(map[edge]struct{})
	for v1, row := range c.binary {
		for v2 := range row {
			if _, dup := seen[edge{from: v2, to: v1}]; dup {
				continue
			}
			seen[edge{from: v1, to: v2}] = struct{}{}
			out = append(out, edge{from: v1, to: v2})
		}
	}
	return out
}

// neighbourVars returns the unique neighbours of v, unlike Neighbours, which
// lists every pair in both directions. Package-private: MAC and the variable-ordering
// heuristics use it directly against the live CSP, not a working copy.
func (c *CSP) neighbourVars(v *Variable) []*Variable {
	out := make([]*Variable, 0, len(c.binary[v]))
	for w := range c.binary[v] {
		out = append(out, w)
	}
	return out
}

// Neighbours returns every (v, w) and (w, v) pair for a neighbour w of v -
// deliberately both directions, unlike Edges (see DESIGN.md, open question
// (a)). CSPWorkingCopy.Neighbours builds on it; MAC and the backtracking
// search instead seed their worklists from neighbourVars, queuing the arc
// (w, v) for every neighbour w of the variable v just bound.
func (c *CSP) Neighbours(v *Variable) []edge {
	var out []edge
	for w := range c.binary[v] {
		out = append(out, edge{from: v, to: w})
		out = append(out, edge{from: w, to: v})
	}
	return out
}

// AssignmentConsistency reports whether every bound variable in a satisfies:
// its bound value lies in its actual domain, every unary constraint on it
// holds, and every binary constraint to another bound variable holds.
func (c *CSP) AssignmentConsistency(a *Assignment) bool {
	bindings := a.Bindings()
	for v := range bindings {
		if !c.varConsistent(bindings, v) {
			return false
		}
	}
	return true
}

// AssignmentConsistencyForVar checks the same three conditions as
// AssignmentConsistency but only for var, against the other variables
// already bound in a. Used by the tree solver's greedy assignment, where
// checking just the newly-bound variable each step is sufficient.
func (c *CSP) AssignmentConsistencyForVar(a *Assignment, variable *Variable) bool {
	bindings := a.Bindings()
	if _, ok := bindings[variable]; !ok {
		return false
	}
	return c.varConsistent(bindings, variable)
}

func (c *CSP) varConsistent(bindings map[*Variable]any, v *Variable) bool {
	value := bindings[v]
	found := false
	for _, dv := range v.ActualDomain() {
		if dv == value {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for fixed, con := range c.unary[v] {
		if !con.Apply(value, fixed) {
			return false
		}
	}
	for v2, otherValue := range bindings {
		if v2 == v {
			continue
		}
		if con, ok := c.binary[v][v2]; ok {
			if !con.Apply(value, otherValue) {
				return false
			}
		}
	}
	return true
}

// Subproblem returns a new CSP containing only the variables unbound in a,
// their mutual binary constraints, and their original unary constraints.
// When cheap is false, it additionally injects a unary constraint on each
// remaining neighbour w of every bound variable v: w must satisfy the dual
// of the (v, w) binary constraint with respect to a's binding for v. When
// cheap is true that injection is skipped, trading a cheaper Subproblem call
// for a CSP that is not yet fully reduced - CompleteSubproblem finishes the
// job later if needed.
func (c *CSP) Subproblem(a *Assignment, cheap bool) *CSP {
	bindings := a.Bindings()
	sub := New()
	for v := range c.variables {
		if _, bound := bindings[v]; !bound {
			sub.AddVariable(v)
		}
	}
	for v, row := range c.unary {
		if !sub.hasVariable(v) {
			continue
		}
		for value, con := range row {
			_ = sub.AddUnaryConstraint(v, con, value, false)
		}
	}
	for v1, row := range c.binary {
		if !sub.hasVariable(v1) {
			continue
		}
		for v2, con := range row {
			if !sub.hasVariable(v2) {
				continue
			}
			_ = sub.AddBinaryConstraint(v1, con, v2, false)
		}
	}
	if !cheap {
		c.injectUnariesFromBound(bindings, sub)
	}
	return sub
}

// CompleteSubproblem performs the unary-injection step of
// Subproblem(a, cheap=false) on a subproblem previously built with
// cheap=true.
func (c *CSP) CompleteSubproblem(a *Assignment, sub *CSP) *CSP {
	c.injectUnariesFromBound(a.Bindings(), sub)
	return sub
}

func (c *CSP) injectUnariesFromBound(bindings map[*Variable]any, sub *CSP) {
	for v, value := range bindings {
		for v2, con := range c.binary[v] {
			if sub.hasVariable(v2) {
				_ = sub.AddUnaryConstraint(v2, con.Dual(), value, false)
			}
		}
	}
}

// Adapt destructively reduces the CSP in place: removes v and its unary
// entries, and for each neighbour w either (cheap=false) adds the induced
// unary constraint on w given v:=value, or (cheap=true) only drops the
// binary edge. Returns *CSPError wrapping ErrUnknownVariable if v is not in
// the CSP.
func (c *CSP) Adapt(v *Variable, value any, cheap bool) error {
	if !c.hasVariable(v) {
		return newCSPError("Adapt", ErrUnknownVariable)
	}
	delete(c.variables, v)
	delete(c.unary, v)
	for v2, con := range c.binary[v] {
		if !cheap {
			_ = c.AddUnaryConstraint(v2, con.Dual(), value, false)
		}
		delete(c.binary[v2], v)
	}
	delete(c.binary, v)
	return nil
}
