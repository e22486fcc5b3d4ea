package match

import (
	"fmt"

	"github.com/thebabush/qbindiff/internal/lap"
	"gonum.org/v1/gonum/mat"
)

// zeroSimilarityCost is the cost assigned to a residual (i,j) pair with zero
// similarity, and to every padding cell introduced to square up a
// rectangular residual problem -- large enough that any real, positive
// similarity is always preferred by the assignment solver.
const zeroSimilarityCost = 1e6

// Refine extends a raw mapping to a complete one-to-one mapping over
// min(n,m) pairs, without re-matching already-matched nodes (C6). It scores
// every residual (unmatched row, unmatched column) pair against the original
// dense similarity matrix s, converts scores to costs, and solves the
// resulting (possibly rectangular, padded to square) assignment problem via
// internal/lap.
//
// Grounded on qbindiff/matcher/matcher.py's refine/solve_linear_assignment.
func Refine(s *mat.Dense, m Mapping) (Mapping, error) {
	n, cols := s.Dims()

	matchedRow := make([]bool, n)
	for _, i := range m.Idx {
		matchedRow[i] = true
	}
	matchedCol := make([]bool, cols)
	for _, j := range m.Idy {
		matchedCol[j] = true
	}

	var residualRows, residualCols []int
	for i := 0; i < n; i++ {
		if !matchedRow[i] {
			residualRows = append(residualRows, i)
		}
	}
	for j := 0; j < cols; j++ {
		if !matchedCol[j] {
			residualCols = append(residualCols, j)
		}
	}

	out := m.Clone()
	if len(residualRows) == 0 || len(residualCols) == 0 {
		return out, nil
	}

	size := len(residualRows)
	if len(residualCols) > size {
		size = len(residualCols)
	}
	cost := make([][]float64, size)
	for a := 0; a < size; a++ {
		cost[a] = make([]float64, size)
		for b := 0; b < size; b++ {
			if a >= len(residualRows) || b >= len(residualCols) {
				cost[a][b] = zeroSimilarityCost
				continue
			}
			score := s.At(residualRows[a], residualCols[b])
			if score == 0 {
				cost[a][b] = zeroSimilarityCost
			} else {
				cost[a][b] = -score
			}
		}
	}

	assignment, err := lap.Solve(cost)
	if err != nil {
		return Mapping{}, fmt.Errorf("match: refine: %w", err)
	}

	for a, b := range assignment {
		if a >= len(residualRows) || b >= len(residualCols) {
			continue // padding row/col: no real residual pair
		}
		out.Idx = append(out.Idx, residualRows[a])
		out.Idy = append(out.Idy, residualCols[b])
	}
	return out, nil
}
