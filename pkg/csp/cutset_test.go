package csp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// cycleWithChainCSP builds a 3-cycle (a,b,d all mutually different) with a
// pendant chain e-f hanging off of a. Conditioning on b or d (the cutset)
// leaves the rest - including the pendant chain - a tree; conditioning on a
// would cut the pendant chain off from the rest.
func cycleWithChainCSP(t *testing.T) *CSP {
	t.Helper()
	c := New()
	a := NewVariable("a", 1, 2, 3)
	b := NewVariable("b", 1, 2, 3)
	d := NewVariable("d", 1, 2, 3)
	e := NewVariable("e", 1, 2, 3)
	f := NewVariable("f", 1, 2, 3)
	c.AddVariable(a)
	c.AddVariable(b)
	c.AddVariable(d)
	c.AddVariable(e)
	c.AddVariable(f)
	require.NoError(t, c.AddBinaryConstraint(a, Different, b, false))
	require.NoError(t, c.AddBinaryConstraint(b, Different, d, false))
	require.NoError(t, c.AddBinaryConstraint(d, Different, a, false))
	require.NoError(t, c.AddBinaryConstraint(a, Different, e, false))
	require.NoError(t, c.AddBinaryConstraint(e, Different, f, false))
	return c
}

func TestIsATreeOnAChain(t *testing.T) {
	require := require.New(t)
	c, _, _, _, _ := chainCSP(t)
	require.True(isATree(NewWorkingCopy(c)))
}

func TestIsATreeOnACycle(t *testing.T) {
	require := require.New(t)
	c := cycleWithChainCSP(t)
	require.False(isATree(NewWorkingCopy(c)))
}

func TestIsATreeIgnoresHiddenVariables(t *testing.T) {
	require := require.New(t)
	c := cycleWithChainCSP(t)
	wc := NewWorkingCopy(c)

	// The 3-cycle a-b-d makes the whole graph non-tree; hiding b leaves the
	// tree d-a-e-f over the rest.
	b, ok := c.GetVariable("b")
	require.True(ok)
	require.NoError(wc.HideVar(b))
	require.True(isATree(wc))

	require.NoError(wc.UnhideVar(b))
	require.False(isATree(wc))
}

func TestCutsetSolvesCyclicGraph(t *testing.T) {
	require := require.New(t)
	c := cycleWithChainCSP(t)

	result, err := Cutset(context.Background(), c, DefaultSolverConfig())
	require.NoError(err)
	require.False(result.Assignment.IsNull())
	require.Equal(5, result.Assignment.Len())
	require.True(c.AssignmentConsistency(result.Assignment))
}

func TestCutsetDetectsUnsatisfiability(t *testing.T) {
	require := require.New(t)
	c := New()
	a := NewVariable("a", 1, 2)
	b := NewVariable("b", 1, 2)
	d := NewVariable("d", 1, 2)
	c.AddVariable(a)
	c.AddVariable(b)
	c.AddVariable(d)
	c.AddAllDifferent() // three mutually-different vars, only 2 colors

	result, err := Cutset(context.Background(), c, DefaultSolverConfig())
	require.NoError(err)
	require.True(result.Assignment.IsNull())
}

func TestCutsetNonHeuristicStillSolves(t *testing.T) {
	require := require.New(t)
	c := cycleWithChainCSP(t)

	cfg := DefaultSolverConfig()
	cfg.Heuristic = false
	cfg.RandomSeed = 42

	result, err := Cutset(context.Background(), c, cfg)
	require.NoError(err)
	require.False(result.Assignment.IsNull())
	require.True(c.AssignmentConsistency(result.Assignment))
}
