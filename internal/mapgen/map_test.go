package mapgen

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevinmaggi/gocutset/pkg/csp"
)

func TestGenerateMapProducesConnectedCSP(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(1))

	m, err := GenerateMap(rng, 8, Options{NumColor: 4, MinimalCutsetSize: 2})
	require.NoError(err)
	require.Len(m.Regions, 8)
	require.GreaterOrEqual(len(m.Borders), 7) // at least a spanning tree

	c, err := m.ToCSP()
	require.NoError(err)
	require.Equal(8, c.Count())
}

func TestGeneratedMapIsFourColorable(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(7))

	m, err := GenerateMap(rng, 10, Options{NumColor: 4, MinimalCutsetSize: 2})
	require.NoError(err)

	c, err := m.ToCSP()
	require.NoError(err)

	result, err := csp.Cutset(context.Background(), c, csp.DefaultSolverConfig())
	require.NoError(err)
	require.False(result.Assignment.IsNull())
	require.True(c.AssignmentConsistency(result.Assignment))
}

func TestGenerateMapRejectsInvalidOptions(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(1))

	_, err := GenerateMap(rng, 0, Options{NumColor: 4})
	require.Error(err)

	_, err = GenerateMap(rng, 5, Options{NumColor: 9})
	require.Error(err)
}

func TestCheckIntersectDetectsCrossingSegments(t *testing.T) {
	require := require.New(t)
	require.True(checkIntersect(Point{0, 0}, Point{1, 1}, Point{0, 1}, Point{1, 0}))
	require.False(checkIntersect(Point{0, 0}, Point{1, 0}, Point{0, 1}, Point{1, 1}))
}
