package csp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMACPrunesNeighbourDomains(t *testing.T) {
	require := require.New(t)

	c := New()
	x := NewVariable("x", 1, 2)
	y := NewVariable("y", 1, 2)
	c.AddVariable(x)
	c.AddVariable(y)
	require.NoError(c.AddBinaryConstraint(x, Different, y, false))

	a := NewAssignment()
	require.NoError(a.Bind(x, 1))

	ok, err := MAC(c, a, []*Variable{x})
	require.NoError(err)
	require.True(ok)

	require.Equal(1, a.EffectiveDomainSize(y))
	require.ElementsMatch([]any{2}, a.EffectiveDomain(y))
}

func TestMACDetectsFailure(t *testing.T) {
	require := require.New(t)

	c := New()
	x := NewVariable("x", 1)
	y := NewVariable("y", 1)
	c.AddVariable(x)
	c.AddVariable(y)
	require.NoError(c.AddBinaryConstraint(x, Different, y, false))

	a := NewAssignment()
	require.NoError(a.Bind(x, 1))

	ok, err := MAC(c, a, []*Variable{x})
	require.NoError(err)
	require.False(ok)
}

func TestMACDoesNotMutateTheSharedVariable(t *testing.T) {
	require := require.New(t)

	c := New()
	x := NewVariable("x", 1, 2)
	y := NewVariable("y", 1, 2)
	c.AddVariable(x)
	c.AddVariable(y)
	require.NoError(c.AddBinaryConstraint(x, Different, y, false))

	a := NewAssignment()
	require.NoError(a.Bind(x, 1))
	_, err := MAC(c, a, []*Variable{x})
	require.NoError(err)

	require.Equal(2, y.ActualDomainSize())
}
