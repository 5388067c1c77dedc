package csp

// CSPWorkingCopy is an independent clone of a CSP's variables and
// constraints, linked back to the original only by name. It serves two
// solvers that each need to mutate shared state across a search without
// touching the caller's Variables: AC3 clones to prune domains destructively
// (see AC3), and Cutset clones to track which variables have been
// conditioned away, the "hidden variables" set that its tree-shape check
// queries at every recursive step without rebuilding a subproblem CSP each
// time.
type CSPWorkingCopy struct {
	csp    *CSP
	byName map[string]*Variable
	hidden map[*Variable]struct{}
}

// NewWorkingCopy clones every Variable in c (preserving each one's current
// ActualDomain as the clone's initial domain, discarding hidden-value state)
// and every unary/binary constraint between them, into a fresh CSP. No
// variable starts hidden.
func NewWorkingCopy(c *CSP) *CSPWorkingCopy {
	wc := &CSPWorkingCopy{csp: New(), byName: make(map[string]*Variable), hidden: make(map[*Variable]struct{})}
	for v := range c.variables {
		clone := NewVariable(v.name, v.ActualDomain()...)
		wc.csp.AddVariable(clone)
		wc.byName[v.name] = clone
	}
	for v, row := range c.unary {
		clone, ok := wc.byName[v.name]
		if !ok {
			continue
		}
		for value, con := range row {
			_ = wc.csp.AddUnaryConstraint(clone, con, value, false)
		}
	}
	for v1, row := range c.binary {
		c1, ok := wc.byName[v1.name]
		if !ok {
			continue
		}
		for v2, con := range row {
			c2, ok := wc.byName[v2.name]
			if !ok {
				continue
			}
			_ = wc.csp.AddBinaryConstraint(c1, con, c2, false)
		}
	}
	return wc
}

// resolve maps a Variable from the original CSP (or one of the working
// copy's own clones) to its clone, keyed by name so either can be passed in
// interchangeably. Returns *VariableError wrapping ErrUnknownVariable if v
// has no counterpart (e.g. it belongs to a different CSP entirely).
func (wc *CSPWorkingCopy) resolve(v *Variable) (*Variable, error) {
	clone, ok := wc.byName[v.name]
	if !ok {
		return nil, newVariableError("resolve", ErrUnknownVariable)
	}
	return clone, nil
}

// ActualDomain returns the clone's current domain for v.
func (wc *CSPWorkingCopy) ActualDomain(v *Variable) ([]any, error) {
	clone, err := wc.resolve(v)
	if err != nil {
		return nil, err
	}
	return clone.ActualDomain(), nil
}

// HideVar marks v as conditioned away: excluded from Variables, Edges,
// Neighbours, CountNeighbours and NeighbourVars until UnhideVar restores it.
// This is how Cutset records which variables it has bound without having to
// rebuild a subproblem CSP on every recursive call.
func (wc *CSPWorkingCopy) HideVar(v *Variable) error {
	clone, err := wc.resolve(v)
	if err != nil {
		return err
	}
	wc.hidden[clone] = struct{}{}
	return nil
}

// UnhideVar undoes HideVar, restoring v to visibility.
func (wc *CSPWorkingCopy) UnhideVar(v *Variable) error {
	clone, err := wc.resolve(v)
	if err != nil {
		return err
	}
	delete(wc.hidden, clone)
	return nil
}

func (wc *CSPWorkingCopy) isHidden(v *Variable) bool {
	_, hidden := wc.hidden[v]
	return hidden
}

// Variables returns the working copy's visible (non-hidden) clones.
func (wc *CSPWorkingCopy) Variables() []*Variable {
	all := wc.csp.Variables()
	out := make([]*Variable, 0, len(all))
	for _, v := range all {
		if !wc.isHidden(v) {
			out = append(out, v)
		}
	}
	return out
}

// Edges returns the working copy's directional edge set (one direction per
// pair, like CSP.Edges) restricted to edges between two visible variables.
func (wc *CSPWorkingCopy) Edges() []edge {
	var out []edge
	for _, e := range wc.csp.Edges() {
		if wc.isHidden(e.from) || wc.isHidden(e.to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Neighbours returns both directions of every edge touching v whose other
// endpoint is still visible, exactly like CSP.Neighbours, translated through
// the working copy's own clone of v.
func (wc *CSPWorkingCopy) Neighbours(v *Variable) ([]edge, error) {
	clone, err := wc.resolve(v)
	if err != nil {
		return nil, err
	}
	var out []edge
	for _, e := range wc.csp.Neighbours(clone) {
		if wc.isHidden(e.from) || wc.isHidden(e.to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// CountNeighbours returns the number of v's neighbours that are still
// visible - used by isATree's necessary-condition check on the residual
// graph.
func (wc *CSPWorkingCopy) CountNeighbours(v *Variable) (int, error) {
	clone, err := wc.resolve(v)
	if err != nil {
		return 0, err
	}
	count := 0
	for w := range wc.csp.binary[clone] {
		if !wc.isHidden(w) {
			count++
		}
	}
	return count, nil
}

// NeighbourVars returns the unique, still-visible neighbours of v in the
// working copy (no direction duplication, unlike Neighbours/Edges) - what
// isATree's DFS walks.
func (wc *CSPWorkingCopy) NeighbourVars(v *Variable) ([]*Variable, error) {
	clone, err := wc.resolve(v)
	if err != nil {
		return nil, err
	}
	out := make([]*Variable, 0, len(wc.csp.binary[clone]))
	for w := range wc.csp.binary[clone] {
		if !wc.isHidden(w) {
			out = append(out, w)
		}
	}
	return out, nil
}
