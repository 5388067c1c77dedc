package csp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariableActualDomain(t *testing.T) {
	require := require.New(t)

	v := NewVariable("x", 1, 2, 3)
	require.Equal(3, v.ActualDomainSize())
	require.True(v.ValidValue(2))
	require.False(v.ValidValue(4))

	require.NoError(v.HideValue(2))
	require.Equal(2, v.ActualDomainSize())
	require.ElementsMatch([]any{1, 3}, v.ActualDomain())

	require.NoError(v.UnhideValue(2))
	require.Equal(3, v.ActualDomainSize())
}

func TestVariableHideValueRejectsUnknownValue(t *testing.T) {
	require := require.New(t)

	v := NewVariable("x", "red", "green", "blue")
	err := v.HideValue("purple")
	require.Error(err)
	require.ErrorIs(err, ErrValueNotInDomain)
}

func TestVariableUnhideValueRejectsNotHidden(t *testing.T) {
	require := require.New(t)

	v := NewVariable("x", "red", "green")
	err := v.UnhideValue("red")
	require.Error(err)
	require.ErrorIs(err, ErrValueNotHidden)
}

func TestVariableResetDomain(t *testing.T) {
	require := require.New(t)

	v := NewVariable("x", 1, 2, 3, 4, 5)
	require.NoError(v.HideValue(1))
	require.NoError(v.HideValue(2))
	require.Equal(3, v.ActualDomainSize())

	v.ResetDomain()
	require.Equal(5, v.ActualDomainSize())
}

func TestVariableLargeDomainFallsBackToHashDomain(t *testing.T) {
	require := require.New(t)

	values := make([]any, 0, 100)
	for i := 0; i < 100; i++ {
		values = append(values, i)
	}
	v := NewVariable("big", values...)
	require.Equal(100, v.ActualDomainSize())
	require.NoError(v.HideValue(50))
	require.Equal(99, v.ActualDomainSize())
	require.False(v.ValidValue(999))
}
