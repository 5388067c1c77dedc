package csp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestArithmeticSquareRelation builds variables a, b in 1..9 related by
// a^2 == b, and checks AllSolutions finds exactly the three pairs for which
// both sides stay in range.
func TestArithmeticSquareRelation(t *testing.T) {
	require := require.New(t)

	c := New()
	domain := []any{1, 2, 3, 4, 5, 6, 7, 8, 9}
	a := NewVariable("a", domain...)
	b := NewVariable("b", domain...)
	c.AddVariable(a)
	c.AddVariable(b)

	square := NewConstraint("square", func(x, y any) bool {
		xi, xok := x.(int)
		yi, yok := y.(int)
		return xok && yok && xi*xi == yi
	})
	require.NoError(c.AddBinaryConstraint(a, square, b, false))

	all, err := AllSolutions(context.Background(), c, DefaultSolverConfig())
	require.NoError(err)

	got := make(map[[2]int]bool, len(all))
	for _, sol := range all {
		va, _ := sol.Value(a)
		vb, _ := sol.Value(b)
		got[[2]int{va.(int), vb.(int)}] = true
	}
	require.Equal(map[[2]int]bool{{1, 1}: true, {2, 4}: true, {3, 9}: true}, got)
}

// TestBacktrackSolvesDisconnectedTrees confirms that TopSort rejects a
// disconnected graph while Backtrack, which has no tree precondition, still
// finds a solution across the two independent chains.
func TestBacktrackSolvesDisconnectedTrees(t *testing.T) {
	require := require.New(t)

	c := New()
	domain := []any{1, 2, 3, 4}
	a := NewVariable("a", domain...)
	b := NewVariable("b", domain...)
	d := NewVariable("d", domain...)
	e := NewVariable("e", domain...)
	f := NewVariable("f", domain...)
	g := NewVariable("g", domain...)
	for _, v := range []*Variable{a, b, d, e, f, g} {
		c.AddVariable(v)
	}
	require.NoError(c.AddBinaryConstraint(a, Lesser, b, false))
	require.NoError(c.AddBinaryConstraint(b, Lesser, d, false))
	require.NoError(c.AddBinaryConstraint(e, Lesser, f, false))
	require.NoError(c.AddBinaryConstraint(f, Lesser, g, false))

	_, _, err := TopSort(c)
	require.Error(err)
	require.ErrorIs(err, ErrNotATree)

	sol, err := Backtrack(context.Background(), c, DefaultSolverConfig())
	require.NoError(err)
	require.False(sol.IsNull())
	require.True(c.AssignmentConsistency(sol))
}

// TestCutsetOnAlmostTreeHub builds a chain v0<v1<...<v(n-2) plus a hub
// variable different from every chain member. Removing the hub leaves a
// tree, so Cutset's reported TreeDimension should cover the whole chain
// (n-1 variables).
func TestCutsetOnAlmostTreeHub(t *testing.T) {
	require := require.New(t)

	const n = 6
	domain := []any{1, 2, 3, 4, 5, 6}

	c := New()
	chain := make([]*Variable, n-1)
	for i := range chain {
		chain[i] = NewVariable(string(rune('a'+i)), domain...)
		c.AddVariable(chain[i])
	}
	for i := 0; i < len(chain)-1; i++ {
		require.NoError(c.AddBinaryConstraint(chain[i], Lesser, chain[i+1], false))
	}

	hub := NewVariable("hub", domain...)
	c.AddVariable(hub)
	for _, v := range chain {
		require.NoError(c.AddBinaryConstraint(v, Different, hub, false))
	}

	result, err := Cutset(context.Background(), c, DefaultSolverConfig())
	require.NoError(err)
	require.False(result.Assignment.IsNull())
	require.True(c.AssignmentConsistency(result.Assignment))
	require.Equal(n-1, result.TreeDimension)
}

// TestHeuristicPicksHighestDegreeOnTies mirrors the Australia map-coloring
// example: after AC-3, SA has the highest degree (5) of any region, so
// MRV+Degree must pick it first among the variables with the widest
// effective domain.
func TestHeuristicPicksHighestDegreeOnTies(t *testing.T) {
	require := require.New(t)

	c := New()
	values := []any{"red", "green", "blue"}
	names := []string{"wa", "nt", "sa", "q", "nsw", "v", "t"}
	vars := make(map[string]*Variable, len(names))
	for _, name := range names {
		v := NewVariable(name, values...)
		c.AddVariable(v)
		vars[name] = v
	}
	adjacency := [][2]string{
		{"wa", "nt"}, {"wa", "sa"}, {"nt", "q"}, {"nt", "sa"},
		{"sa", "q"}, {"sa", "nsw"}, {"sa", "v"}, {"q", "nsw"}, {"nsw", "v"},
	}
	for _, pair := range adjacency {
		require.NoError(c.AddBinaryConstraint(vars[pair[0]], Different, vars[pair[1]], false))
	}

	require.True(ac3InPlace(c))

	a := NewAssignment()
	chosen := selectUnassignedVariable(c, a)
	require.Equal(vars["sa"], chosen)
	require.Equal(5, len(c.binary[chosen]))
}
