package csp

// revise prunes values from i's actual domain that have no support in j's
// actual domain under con (applied as con.Apply(iValue, jValue)). Returns
// true if i's domain changed.
func revise(con Constraint, i, j *Variable) bool {
	changed := false
	for _, iv := range i.ActualDomain() {
		supported := false
		for _, jv := range j.ActualDomain() {
			if con.Apply(iv, jv) {
				supported = true
				break
			}
		}
		if !supported {
			_ = i.HideValue(iv)
			changed = true
		}
	}
	return changed
}

// AC3 runs arc consistency to a fixed point on a working copy of c: first a
// unary pass removes values that violate their variable's own unary
// constraints, then a binary worklist pass revises every edge, re-queuing a
// variable's other neighbours whenever its domain shrinks. Returns the
// pruned working copy and true, or a nil copy and false if any variable's
// domain becomes empty (the CSP is unsatisfiable as constructed).
//
// AC3 never mutates c itself - callers that only need the consistency
// verdict, not the pruned domains, can discard the returned copy.
func AC3(c *CSP) (*CSPWorkingCopy, bool) {
	wc := NewWorkingCopy(c)

	for _, v := range wc.csp.Variables() {
		for _, val := range v.ActualDomain() {
			ok := true
			for fixed, con := range wc.csp.unary[v] {
				if !con.Apply(val, fixed) {
					ok = false
					break
				}
			}
			if !ok {
				_ = v.HideValue(val)
			}
		}
		if v.ActualDomainSize() == 0 {
			return nil, false
		}
	}

	type arc struct{ i, j *Variable }
	var queue []arc
	for _, e := range wc.csp.Edges() {
		queue = append(queue, arc{i: e.from, j: e.to})
		queue = append(queue, arc{i: e.to, j: e.from})
	}

	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		con, ok := wc.csp.FindBinaryConstraint(a.i, a.j)
		if !ok {
			continue
		}
		if !revise(con, a.i, a.j) {
			continue
		}
		if a.i.ActualDomainSize() == 0 {
			return nil, false
		}
		for k := range wc.csp.binary[a.i] {
			if k == a.j {
				continue
			}
			queue = append(queue, arc{i: k, j: a.i})
		}
	}

	return wc, true
}

// ac3InPlace runs the same fixed-point algorithm as AC3 directly against
// c's own Variables, permanently hiding inconsistent values rather than
// working on a disposable clone. Backtrack uses this for its one-time
// preprocessing pass, matching the original algorithm's destructive
// preprocessing: the top-level CSP passed to Backtrack is expected to be
// owned by that search, not shared with a concurrent caller (see
// DESIGN.md). Returns false if any domain is emptied.
func ac3InPlace(c *CSP) bool {
	for _, v := range c.Variables() {
		for _, val := range v.ActualDomain() {
			ok := true
			for fixed, con := range c.unary[v] {
				if !con.Apply(val, fixed) {
					ok = false
					break
				}
			}
			if !ok {
				_ = v.HideValue(val)
			}
		}
		if v.ActualDomainSize() == 0 {
			return false
		}
	}

	type arc struct{ i, j *Variable }
	var queue []arc
	for _, e := range c.Edges() {
		queue = append(queue, arc{i: e.from, j: e.to})
		queue = append(queue, arc{i: e.to, j: e.from})
	}

	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		con, ok := c.FindBinaryConstraint(a.i, a.j)
		if !ok {
			continue
		}
		if !revise(con, a.i, a.j) {
			continue
		}
		if a.i.ActualDomainSize() == 0 {
			return false
		}
		for _, k := range c.neighbourVars(a.i) {
			if k == a.j {
				continue
			}
			queue = append(queue, arc{i: k, j: a.i})
		}
	}

	return true
}
