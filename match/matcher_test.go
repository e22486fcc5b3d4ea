package match

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thebabush/qbindiff/sparse"
	"gonum.org/v1/gonum/mat"
)

func TestMatcherPureMWMEndToEnd(t *testing.T) {
	// E1: 2x2 diagonal similarity, tradeoff=1 selects pure MWM; fully
	// matched by the solver so Refine is a no-op.
	s := mat.NewDense(2, 2, []float64{0.9, 0.1, 0.2, 0.8})
	a1 := mustAdjacency(t, 2, [][]int{{}, {}})
	a2 := mustAdjacency(t, 2, [][]int{{}, {}})

	m := NewMatcher(s, a1, a2)
	require.NoError(t, m.Process(0, false, false))

	step := m.Compute(SolveOptions{Tradeoff: 1, Epsilon: 0, MaxIter: 200, Seed: 42})
	for {
		_, done := step()
		if done {
			break
		}
	}

	mapping := m.Mapping()
	require.Equal(t, []int{0, 1}, mapping.Idx)
	require.Equal(t, []int{0, 1}, mapping.Idy)
	require.True(t, m.Diagnostics().Converged)
	require.InDelta(t, 1.7, m.Diagnostics().Objective, 1e-9)
}

func TestMatcherNAQPEndToEnd(t *testing.T) {
	// E3: n=m=3 near-identity similarity with a preserved 0->1->2->0 cycle;
	// tradeoff=0.5 exercises C5 plus the squares enumerator.
	s := mat.NewDense(3, 3, []float64{
		1.01, 0.01, 0.01,
		0.01, 1.01, 0.01,
		0.01, 0.01, 1.01,
	})
	a1 := mustAdjacency(t, 3, [][]int{{1}, {2}, {0}})
	a2 := mustAdjacency(t, 3, [][]int{{1}, {2}, {0}})

	m := NewMatcher(s, a1, a2)
	require.NoError(t, m.Process(0, false, true))

	step := m.Compute(SolveOptions{Tradeoff: 0.5, Epsilon: 0, MaxIter: 200, Seed: 7})
	for {
		_, done := step()
		if done {
			break
		}
	}

	mapping := m.Mapping()
	require.Equal(t, []int{0, 1, 2}, mapping.Idx)
	require.Equal(t, []int{0, 1, 2}, mapping.Idy)
	require.True(t, m.Diagnostics().Converged)

	result := m.Result()
	require.Equal(t, 3, len(result.SquaresPerMatch))
	for _, n := range result.SquaresPerMatch {
		require.Equal(t, 2, n) // each identity edge sits in 2 of the 3 preserved squares
	}
}

func TestMatcherLargeBetaFlipsMappingToPreserveSquare(t *testing.T) {
	// E4: a cross edge (0->1 in A1, 1->0 in A2) makes the off-diagonal
	// candidates form a square. Large beta should outweigh the small
	// similarity edge to flip the mapping to (0->1, 1->0); beta=0 falls back
	// to plain similarity and keeps the diagonal.
	s := mat.NewDense(2, 2, []float64{0.6, 0.5, 0.5, 0.6})
	a1 := mustAdjacency(t, 2, [][]int{{1}, {}})
	a2 := mustAdjacency(t, 2, [][]int{{}, {0}})

	flipped := NewMatcher(s, a1, a2)
	require.NoError(t, flipped.Process(0, false, true))
	step := flipped.Compute(SolveOptions{Tradeoff: 0.9, Epsilon: 0, MaxIter: 200, Seed: 3})
	for {
		if _, done := step(); done {
			break
		}
	}
	require.True(t, flipped.Diagnostics().Converged)
	require.Equal(t, []int{0, 1}, flipped.Mapping().Idx)
	require.Equal(t, []int{1, 0}, flipped.Mapping().Idy)

	identity := NewMatcher(s, a1, a2)
	require.NoError(t, identity.Process(0, false, true))
	step = identity.Compute(SolveOptions{Tradeoff: 0, Epsilon: 0, MaxIter: 200, Seed: 3})
	for {
		if _, done := step(); done {
			break
		}
	}
	require.True(t, identity.Diagnostics().Converged)
	require.Equal(t, []int{0, 1}, identity.Mapping().Idx)
	require.Equal(t, []int{0, 1}, identity.Mapping().Idy)
}

func TestMatcherProcessRejectsIncompleteBipartite(t *testing.T) {
	s := mat.NewDense(2, 2, []float64{0.9, 0, 0, 0})
	a1 := mustAdjacency(t, 2, [][]int{{}, {}})
	a2 := mustAdjacency(t, 2, [][]int{{}, {}})

	m := NewMatcher(s, a1, a2)
	err := m.Process(0, false, false)
	require.ErrorIs(t, err, errIncompleteBipartite)
}

func TestMatcherRefinesPartialMWMMapping(t *testing.T) {
	// Whatever MWM itself leaves unmatched, the orchestrator's Refine pass
	// must complete the mapping to a full permutation over the 3 nodes.
	s := mat.NewDense(3, 3, []float64{
		0.9, 0.1, 0.05,
		0.2, 0.8, 0.05,
		0.05, 0.05, 0.6,
	})
	a1, err := sparse.NewAdjacency(3)
	require.NoError(t, err)
	a2, err := sparse.NewAdjacency(3)
	require.NoError(t, err)

	m := NewMatcher(s, a1, a2)
	require.NoError(t, m.Process(0, false, false))

	step := m.Compute(SolveOptions{Tradeoff: 1, Epsilon: 0, MaxIter: 200, Seed: 1})
	for {
		_, done := step()
		if done {
			break
		}
	}

	mapping := m.Mapping()
	require.Equal(t, 3, mapping.Len())
	seenRows, seenCols := map[int]bool{}, map[int]bool{}
	for i := range mapping.Idx {
		require.False(t, seenRows[mapping.Idx[i]])
		require.False(t, seenCols[mapping.Idy[i]])
		seenRows[mapping.Idx[i]] = true
		seenCols[mapping.Idy[i]] = true
	}
}
