package csp

import (
	"context"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// CutsetResult is Cutset's return value: the found Assignment (possibly
// null) plus the size of the last tree residual handed to TreeSolver, a
// rough measure of how small a cutset the search found. TreeDimension
// reflects the last residual encountered along the branch that returned,
// not the minimum over every branch explored - matching the nonlocal
// bookkeeping in the original source, which overwrites rather than tracks a
// running minimum.
type CutsetResult struct {
	Assignment    *Assignment
	TreeDimension int
}

// isATree reports whether wc's visible (non-hidden) variables and the edges
// between them form a tree: connected and acyclic. A cheap necessary
// condition - an undirected graph with more than |V|-1 edges must contain a
// cycle - is checked first to skip the DFS in the common "clearly not a
// tree" case. The DFS then walks from an arbitrary visible root, refusing to
// revisit any node except through its immediate parent; a revisit through
// any other edge means a cycle, and fewer visited nodes than visible
// variables means the graph is disconnected.
func isATree(wc *CSPWorkingCopy) bool {
	vars := wc.Variables()
	n := len(vars)
	if n == 0 {
		return true
	}

	directed := 0
	for _, v := range vars {
		count, _ := wc.CountNeighbours(v)
		directed += count
	}
	if directed/2 > n-1 {
		return false
	}

	visited := make(map[*Variable]struct{}, n)
	var dfs func(v, parent *Variable) bool
	dfs = func(v, parent *Variable) bool {
		visited[v] = struct{}{}
		neighbours, _ := wc.NeighbourVars(v)
		for _, w := range neighbours {
			if w == parent {
				continue
			}
			if _, seen := visited[w]; seen {
				return false
			}
			if !dfs(w, v) {
				return false
			}
		}
		return true
	}
	if !dfs(vars[0], nil) {
		return false
	}
	return len(visited) == n
}

// randomVar picks a uniformly random unassigned variable, used by Cutset
// when SolverConfig.Heuristic is false.
func randomVar(rng *rand.Rand, candidates []*Variable) *Variable {
	return candidates[rng.Intn(len(candidates))]
}

// Cutset solves c by conditioning on a small set of variables (the
// "cutset") chosen one at a time via backtracking, stopping as soon as the
// residual CSP over the remaining unassigned variables becomes a tree - at
// which point TreeSolver finishes the job in linear time instead of
// continuing to backtrack. This beats plain Backtrack on graphs whose
// cutset is small relative to their total size, since the exponential cost
// of search is paid only for the cutset variables.
func Cutset(ctx context.Context, c *CSP, cfg SolverConfig) (CutsetResult, error) {
	rng := rand.New(rand.NewSource(cfg.RandomSeed))
	wc := NewWorkingCopy(c)
	a, dim, err := cutsetSearch(ctx, c, wc, NewAssignment(), cfg, rng, 0)
	if err != nil {
		return CutsetResult{}, err
	}
	if a == nil {
		a = NullAssignment()
	}
	return CutsetResult{Assignment: a, TreeDimension: dim}, nil
}

// cutsetSearch recurses exactly like Backtrack, but before selecting a
// variable it asks wc - whose hidden set always mirrors the variables bound
// in a - whether the remaining residual graph has become a tree. wc is
// shared across the whole recursion: a variable is hidden right before the
// call that binds it and unhidden on the way back out, so the check never
// pays to rebuild a subproblem CSP just to test its shape.
func cutsetSearch(ctx context.Context, c *CSP, wc *CSPWorkingCopy, a *Assignment, cfg SolverConfig, rng *rand.Rand, depth int) (*Assignment, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if cfg.MaxRecursionDepth > 0 && depth > cfg.MaxRecursionDepth {
		return nil, 0, ErrMaxRecursionDepth
	}

	if isATree(wc) {
		cheapResidual := c.Subproblem(a, true)
		residual := c.CompleteSubproblem(a, cheapResidual)
		dim := residual.Count()
		cfg.logger().WithFields(logrus.Fields{"depth": depth, "treeDimension": dim}).Debug("residual is a tree, deferring to TreeSolver")
		sub, err := TreeSolver(residual)
		if err != nil {
			return nil, dim, err
		}
		if sub.IsNull() {
			return NullAssignment(), dim, nil
		}
		return a.Union(sub), dim, nil
	}

	var unassigned []*Variable
	for _, v := range c.Variables() {
		if _, bound := a.Value(v); !bound {
			unassigned = append(unassigned, v)
		}
	}
	if len(unassigned) == 0 {
		return a, 0, nil
	}

	var v *Variable
	if cfg.Heuristic {
		v = selectUnassignedVariable(c, a)
	} else {
		v = randomVar(rng, unassigned)
	}

	lastDim := 0
	for _, value := range orderDomainValues(c, a, v) {
		branch := a.Clone()
		if err := branch.Bind(v, value); err != nil {
			return nil, lastDim, err
		}
		if !c.AssignmentConsistencyForVar(branch, v) {
			continue
		}
		if cfg.UseMAC {
			ok, err := MAC(c, branch, []*Variable{v})
			if err != nil {
				return nil, lastDim, err
			}
			if !ok {
				continue
			}
		}
		if err := wc.HideVar(v); err != nil {
			return nil, lastDim, err
		}
		result, dim, err := cutsetSearch(ctx, c, wc, branch, cfg, rng, depth+1)
		_ = wc.UnhideVar(v)
		if err != nil {
			return nil, lastDim, err
		}
		lastDim = dim
		if result != nil && !result.IsNull() {
			return result, dim, nil
		}
	}

	return NullAssignment(), lastDim, nil
}
