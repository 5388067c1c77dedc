package csp

// macArc is a directed pair queued for MAC's revise step.
type macArc struct{ i, j *Variable }

// reviseMAC is revise's non-destructive counterpart: it prunes values from
// i's effective domain (a.EffectiveDomain, not i.ActualDomain) that have no
// support in j's effective domain, recording each pruned value as an
// inference on a rather than hiding it on the Variable itself. That is what
// lets a failed search branch undo MAC's work for free - the pruning lives
// entirely in the (cloned) Assignment, never on the shared Variable.
func reviseMAC(a *Assignment, con Constraint, i, j *Variable) error {
	jDomain := a.EffectiveDomain(j)
	for _, iv := range a.EffectiveDomain(i) {
		supported := false
		for _, jv := range jDomain {
			if con.Apply(iv, jv) {
				supported = true
				break
			}
		}
		if !supported {
			if err := a.AddInference(i, iv); err != nil {
				return err
			}
		}
	}
	return nil
}

// MAC (Maintaining Arc Consistency) revises every arc in seed against a,
// then propagates outward: whenever a variable's effective domain shrinks,
// its other neighbours are re-queued. An arc (i, j) is only processed while
// at least one of i or j is still unbound in a - once both sides are bound,
// AssignmentConsistency already covers that pair and re-revising it is
// wasted work. Returns false if any variable's effective domain becomes
// empty (the partial assignment cannot be extended to a solution down this
// branch), true otherwise. a is mutated in place via AddInference; the
// caller is expected to be operating on a branch-local Assignment.Clone.
func MAC(c *CSP, a *Assignment, seed []*Variable) (bool, error) {
	var queue []macArc
	for _, v := range seed {
		for _, w := range c.neighbourVars(v) {
			queue = append(queue, macArc{i: w, j: v})
		}
	}

	for len(queue) > 0 {
		arc := queue[0]
		queue = queue[1:]

		_, iBound := a.Value(arc.i)
		_, jBound := a.Value(arc.j)
		if iBound && jBound {
			continue
		}

		con, ok := c.FindBinaryConstraint(arc.i, arc.j)
		if !ok {
			continue
		}
		before := a.EffectiveDomainSize(arc.i)
		if err := reviseMAC(a, con, arc.i, arc.j); err != nil {
			return false, err
		}
		if a.EffectiveDomainSize(arc.i) == before {
			continue
		}
		if a.EffectiveDomainSize(arc.i) == 0 {
			return false, nil
		}
		for _, k := range c.neighbourVars(arc.i) {
			if k == arc.j {
				continue
			}
			queue = append(queue, macArc{i: k, j: arc.i})
		}
	}

	return true, nil
}
