package csp

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrMaxRecursionDepth is returned by Backtrack/Cutset/AllSolutions/
// CountSolutions when SolverConfig.MaxRecursionDepth is exceeded.
var ErrMaxRecursionDepth = errors.New("csp: maximum recursion depth exceeded")

// selectUnassignedVariable applies MRV+Degree: among c's variables unbound
// in a, pick the one with the smallest effective domain, breaking ties in
// favor of the variable with the most neighbours (the one whose assignment
// constrains the rest of the search the most). Matches Backtrack.py's sort
// key ((domainSize - len(inferences)), -degree) exactly, expressed here as
// two comparisons instead of a tuple sort.
func selectUnassignedVariable(c *CSP, a *Assignment) *Variable {
	var best *Variable
	bestSize := -1
	bestDegree := -1
	for _, v := range c.Variables() {
		if _, bound := a.Value(v); bound {
			continue
		}
		size := a.EffectiveDomainSize(v)
		degree := len(c.binary[v])
		switch {
		case best == nil:
			best, bestSize, bestDegree = v, size, degree
		case size < bestSize:
			best, bestSize, bestDegree = v, size, degree
		case size == bestSize && degree > bestDegree:
			best, bestSize, bestDegree = v, size, degree
		}
	}
	return best
}

// orderDomainValues applies Least-Constraining-Value: v's effective domain
// values are sorted ascending by how many choices they would cross out of
// unbound neighbours' effective domains, so the least-constraining value is
// tried first.
func orderDomainValues(c *CSP, a *Assignment, v *Variable) []any {
	values := a.EffectiveDomain(v)
	neighbours := c.neighbourVars(v)

	crossouts := make(map[any]int, len(values))
	for _, val := range values {
		count := 0
		for _, w := range neighbours {
			if _, bound := a.Value(w); bound {
				continue
			}
			con, ok := c.FindBinaryConstraint(v, w)
			if !ok {
				continue
			}
			for _, wv := range a.EffectiveDomain(w) {
				if !con.Apply(val, wv) {
					count++
				}
			}
		}
		crossouts[val] = count
	}

	sort.SliceStable(values, func(i, j int) bool {
		return crossouts[values[i]] < crossouts[values[j]]
	})
	return values
}

// Backtrack searches for a single solution to c using MRV+Degree variable
// ordering, LCV value ordering, and (when cfg.UseMAC) MAC-guided forward
// checking. It first runs a one-time AC3 preprocessing pass directly
// against c's own Variables - c is treated as owned by this call for its
// duration, exactly like Backtrack.py's backtrack(csp) permanently pruning
// the CSP it is given. Returns a null Assignment (Assignment.IsNull) and a
// nil error if no solution exists; a non-nil error, with a nil Assignment,
// is returned only when ctx is done or cfg.MaxRecursionDepth is exceeded.
func Backtrack(ctx context.Context, c *CSP, cfg SolverConfig) (*Assignment, error) {
	if !ac3InPlace(c) {
		return NullAssignment(), nil
	}
	var found *Assignment
	_, err := enumerateSolutions(ctx, c, NewAssignment(), cfg, 0, func(a *Assignment) bool {
		found = a
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return NullAssignment(), nil
	}
	return found, nil
}

// AllSolutions exhaustively searches c for every complete, consistent
// assignment, exactly like Backtrack.py's allSolutions oracle. Unlike
// Backtrack it does not run AC3 preprocessing, so c's Variables are left
// unpruned.
func AllSolutions(ctx context.Context, c *CSP, cfg SolverConfig) ([]*Assignment, error) {
	var all []*Assignment
	_, err := enumerateSolutions(ctx, c, NewAssignment(), cfg, 0, func(a *Assignment) bool {
		all = append(all, a)
		return false
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// CountSolutions is AllSolutions without retaining every Assignment, for
// callers that only need the count (e.g. verifying a puzzle has a unique
// solution).
func CountSolutions(ctx context.Context, c *CSP, cfg SolverConfig) (int, error) {
	count := 0
	_, err := enumerateSolutions(ctx, c, NewAssignment(), cfg, 0, func(a *Assignment) bool {
		count++
		return false
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// enumerateSolutions is the shared recursive search behind Backtrack,
// AllSolutions and CountSolutions. visit is called once per complete,
// consistent assignment found; returning true from visit stops the search
// early (Backtrack uses this to stop at the first solution). Returns
// whether the search was stopped early by visit.
func enumerateSolutions(ctx context.Context, c *CSP, a *Assignment, cfg SolverConfig, depth int, visit func(*Assignment) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if cfg.MaxRecursionDepth > 0 && depth > cfg.MaxRecursionDepth {
		return false, ErrMaxRecursionDepth
	}

	if a.Len() == c.Count() {
		return visit(a), nil
	}

	v := selectUnassignedVariable(c, a)
	if v == nil {
		return visit(a), nil
	}

	log := cfg.logger()
	for _, value := range orderDomainValues(c, a, v) {
		branch := a.Clone()
		if err := branch.Bind(v, value); err != nil {
			return false, err
		}
		log.WithFields(logrus.Fields{"variable": v.Name(), "value": value, "depth": depth}).Debug("trying assignment")
		if !c.AssignmentConsistencyForVar(branch, v) {
			continue
		}

		if cfg.UseMAC {
			ok, err := MAC(c, branch, []*Variable{v})
			if err != nil {
				return false, err
			}
			if !ok {
				continue
			}
		}

		stop, err := enumerateSolutions(ctx, c, branch, cfg, depth+1, visit)
		if err != nil {
			return false, err
		}
		if stop {
			return true, nil
		}
	}

	return false, nil
}
