package sparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdjacencyFromEdges(t *testing.T) {
	// cycle 0 -> 1 -> 2 -> 0
	a, err := NewAdjacencyFromEdges(3, [][]int{{1}, {2}, {0}})
	require.NoError(t, err)

	require.True(t, a.At(0, 1))
	require.True(t, a.At(1, 2))
	require.True(t, a.At(2, 0))
	require.False(t, a.At(0, 2))
	require.Equal(t, []int{1}, a.Neighbors(0))
	require.Equal(t, 3, a.N())
}

func TestAdjacencyRejectsOutOfRangeEdge(t *testing.T) {
	_, err := NewAdjacencyFromEdges(2, [][]int{{5}, {}})
	require.ErrorIs(t, err, ErrColAccess)
}

func TestAdjacencyAddEdgeIdempotent(t *testing.T) {
	a, err := NewAdjacency(2)
	require.NoError(t, err)
	a.AddEdge(0, 1)
	a.AddEdge(0, 1)
	require.Equal(t, []int{1}, a.Neighbors(0))
}

func TestNewAdjacencyRejectsBadShape(t *testing.T) {
	_, err := NewAdjacency(0)
	require.ErrorIs(t, err, ErrBadShape)
}
