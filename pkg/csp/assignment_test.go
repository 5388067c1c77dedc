package csp

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestAssignmentBindAndValue(t *testing.T) {
	require := require.New(t)

	v := NewVariable("x", 1, 2, 3)
	a := NewAssignment()

	require.NoError(a.Bind(v, 2))
	val, ok := a.Value(v)
	require.True(ok)
	require.Equal(2, val)
	require.Equal(1, a.Len())
}

func TestAssignmentMustValue(t *testing.T) {
	require := require.New(t)

	v := NewVariable("x", 1, 2, 3)
	a := NewAssignment()

	_, err := a.MustValue(v)
	require.Error(err)
	require.ErrorIs(err, ErrNotBound)

	require.NoError(a.Bind(v, 2))
	val, err := a.MustValue(v)
	require.NoError(err)
	require.Equal(2, val)
}

func TestAssignmentBindRejectsInvalidValue(t *testing.T) {
	require := require.New(t)

	v := NewVariable("x", 1, 2, 3)
	a := NewAssignment()
	err := a.Bind(v, 99)
	require.Error(err)
	require.ErrorIs(err, ErrValueNotInDomain)
}

func TestAssignmentNullRejectsMutation(t *testing.T) {
	require := require.New(t)

	v := NewVariable("x", 1, 2)
	a := NullAssignment()
	require.True(a.IsNull())

	err := a.Bind(v, 1)
	require.Error(err)
	require.ErrorIs(err, ErrAssignmentIsNull)
}

func TestAssignmentCloneIsIndependent(t *testing.T) {
	require := require.New(t)

	v := NewVariable("x", 1, 2, 3)
	a := NewAssignment()
	require.NoError(a.Bind(v, 1))

	clone := a.Clone()
	require.NoError(clone.Bind(v, 2))

	val, _ := a.Value(v)
	require.Equal(1, val)
	cloneVal, _ := clone.Value(v)
	require.Equal(2, cloneVal)
}

func TestAssignmentEffectiveDomainReflectsInferences(t *testing.T) {
	require := require.New(t)

	v := NewVariable("x", 1, 2, 3, 4)
	a := NewAssignment()
	require.NoError(a.AddInference(v, 2))
	require.NoError(a.AddInference(v, 4))

	require.ElementsMatch([]any{1, 3}, a.EffectiveDomain(v))
	require.Equal(2, a.EffectiveDomainSize(v))
}

func TestAssignmentEffectiveDomainWhenBoundIsJustTheBoundValue(t *testing.T) {
	require := require.New(t)

	v := NewVariable("x", 1, 2, 3)
	a := NewAssignment()
	require.NoError(a.Bind(v, 3))

	require.Equal([]any{3}, a.EffectiveDomain(v))
	require.Equal(1, a.EffectiveDomainSize(v))
}

func TestAssignmentEffectiveDomainStructurallyMatchesExpected(t *testing.T) {
	v := NewVariable("x", 1, 2, 3, 4, 5)
	a := NewAssignment()
	require.NoError(t, a.AddInference(v, 1))
	require.NoError(t, a.AddInference(v, 5))

	got := a.EffectiveDomain(v)
	sort.Slice(got, func(i, j int) bool { return got[i].(int) < got[j].(int) })

	want := []any{2, 3, 4}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("EffectiveDomain mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignmentUnionKeepsBindingsOnly(t *testing.T) {
	require := require.New(t)

	v1 := NewVariable("x", 1, 2)
	v2 := NewVariable("y", 1, 2)

	a := NewAssignment()
	require.NoError(a.Bind(v1, 1))
	require.NoError(a.AddInference(v1, 2))

	b := NewAssignment()
	require.NoError(b.Bind(v2, 2))

	merged := a.Union(b)
	require.Equal(2, merged.Len())
	require.Empty(merged.InferencesFor(v1))
}
