package match

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRefineNoResidualIsNoop(t *testing.T) {
	s := mat.NewDense(2, 2, []float64{0.9, 0.1, 0.1, 0.8})
	m := Mapping{Idx: []int{0, 1}, Idy: []int{0, 1}}

	out, err := Refine(s, m)
	require.NoError(t, err)
	require.Equal(t, m.Idx, out.Idx)
	require.Equal(t, m.Idy, out.Idy)
}

func TestRefineCompletesRectangularResidual(t *testing.T) {
	// n=3, m=4; row/col 0 already matched. Residual rows {1,2}, cols {1,2,3}.
	s := mat.NewDense(3, 4, []float64{
		0.9, 0, 0, 0,
		0, 0.5, 0.1, 0,
		0, 0.2, 0.9, 0,
	})
	m := Mapping{Idx: []int{0}, Idy: []int{0}}

	out, err := Refine(s, m)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, out.Idx)
	require.Equal(t, []int{0, 1, 2}, out.Idy)
}

func TestRefineDoesNotMutateInputMapping(t *testing.T) {
	s := mat.NewDense(2, 2, []float64{0.9, 0, 0, 0.5})
	m := Mapping{Idx: []int{0}, Idy: []int{0}}

	_, err := Refine(s, m)
	require.NoError(t, err)
	require.Equal(t, []int{0}, m.Idx)
	require.Equal(t, []int{0}, m.Idy)
}

func TestRefineZeroSimilarityStillAssigned(t *testing.T) {
	// A single residual row/col pair with zero similarity must still be
	// assigned (the cost is large, not infinite).
	s := mat.NewDense(2, 2, []float64{0.9, 0, 0, 0})
	m := Mapping{Idx: []int{0}, Idy: []int{0}}

	out, err := Refine(s, m)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, out.Idx)
	require.Equal(t, []int{0, 1}, out.Idy)
}
