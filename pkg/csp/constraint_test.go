package csp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinPredicates(t *testing.T) {
	require := require.New(t)

	require.True(Equals.Apply(1, 1))
	require.False(Equals.Apply(1, 2))

	require.True(Different.Apply(1, 2))
	require.False(Different.Apply(1, 1))

	require.True(Greater.Apply(3, 1))
	require.False(Greater.Apply(1, 3))

	require.True(GreaterOrEqual.Apply(3, 3))
	require.True(Lesser.Apply(1, 3))
	require.True(LesserOrEqual.Apply(3, 3))
}

func TestConstraintDual(t *testing.T) {
	require := require.New(t)

	con := Greater
	dual := con.Dual()

	require.True(con.Apply(5, 1))
	require.True(dual.Apply(1, 5))
	require.False(dual.Apply(5, 1))
}

func TestConstraintEqual(t *testing.T) {
	require := require.New(t)

	require.True(Equals.Equal(Equals))
	require.False(Equals.Equal(Different))
	require.True(Greater.Equal(Greater))
	require.False(Greater.Equal(Greater.Dual()))
}

func TestConstraintDualOfDualRestoresOriginal(t *testing.T) {
	require := require.New(t)

	con := Lesser
	require.True(con.Equal(con.Dual().Dual()))
}

func TestCompareMismatchedKindsDoesNotPanic(t *testing.T) {
	require := require.New(t)

	require.False(Greater.Apply("a", 1))
	require.False(Lesser.Apply(1, "a"))
}
