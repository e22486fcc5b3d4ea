package match

import (
	"math"
	"sort"

	"github.com/thebabush/qbindiff/sparse"
	"gonum.org/v1/gonum/mat"
)

// zeroThresholdEpsilon is substituted for a computed threshold of exactly
// zero, so that a zero-similarity entry is never kept as a candidate purely
// because the sparsification quantile happened to land on zero.
const zeroThresholdEpsilon = 1e-8

// Sparsify turns a dense similarity matrix into a sparse candidate matrix
// (C2). It implements the four cases from the spec:
//   - ratio == 0: keep every non-zero entry verbatim.
//   - ratio == 1: keep only the row-wise maxima.
//   - otherwise, global or per-row quantile threshold.
func Sparsify(s mat.Matrix, opts SparsifyOptions) (*sparse.CSR, error) {
	n, m := s.Dims()
	if n <= 0 || m <= 0 {
		return nil, ErrUnknownMatrixShape
	}
	if err := checkNonNegative(s); err != nil {
		return nil, err
	}

	switch {
	case opts.Ratio == 0:
		return toCSRKeepAll(s)
	case opts.Ratio == 1:
		return toCSRRowMax(s)
	case opts.SparseRow:
		return toCSRRowThreshold(s, opts.Ratio)
	default:
		return toCSRGlobalThreshold(s, opts.Ratio)
	}
}

func checkNonNegative(s mat.Matrix) error {
	n, m := s.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if s.At(i, j) < 0 {
				return ErrNegativeWeight
			}
		}
	}
	return nil
}

func toCSRKeepAll(s mat.Matrix) (*sparse.CSR, error) {
	n, m := s.Dims()
	rowPtr := make([]int, n+1)
	var colIdx []int
	var data []float64
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if v := s.At(i, j); v > 0 {
				colIdx = append(colIdx, j)
				data = append(data, v)
			}
		}
		rowPtr[i+1] = len(data)
	}
	return sparse.NewCSR(n, m, rowPtr, colIdx, data)
}

func toCSRRowMax(s mat.Matrix) (*sparse.CSR, error) {
	n, m := s.Dims()
	rowPtr := make([]int, n+1)
	var colIdx []int
	var data []float64
	for i := 0; i < n; i++ {
		best, bestJ := -1.0, -1
		for j := 0; j < m; j++ {
			if v := s.At(i, j); v > best {
				best, bestJ = v, j
			}
		}
		if bestJ >= 0 && best > 0 {
			colIdx = append(colIdx, bestJ)
			data = append(data, best)
		}
		rowPtr[i+1] = len(data)
	}
	return sparse.NewCSR(n, m, rowPtr, colIdx, data)
}

func toCSRRowThreshold(s mat.Matrix, ratio float64) (*sparse.CSR, error) {
	n, m := s.Dims()
	k := int(math.Round(ratio * float64(m)))
	rowPtr := make([]int, n+1)
	var colIdx []int
	var data []float64
	row := make([]float64, m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			row[j] = s.At(i, j)
		}
		threshold := quantileThreshold(row, k)
		for j := 0; j < m; j++ {
			if v := row[j]; v >= threshold && v > 0 {
				colIdx = append(colIdx, j)
				data = append(data, v)
			}
		}
		rowPtr[i+1] = len(data)
	}
	return sparse.NewCSR(n, m, rowPtr, colIdx, data)
}

func toCSRGlobalThreshold(s mat.Matrix, ratio float64) (*sparse.CSR, error) {
	n, m := s.Dims()
	flat := make([]float64, 0, n*m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			flat = append(flat, s.At(i, j))
		}
	}
	k := int(math.Round(ratio * float64(n*m)))
	threshold := quantileThreshold(flat, k)

	rowPtr := make([]int, n+1)
	var colIdx []int
	var data []float64
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if v := s.At(i, j); v >= threshold && v > 0 {
				colIdx = append(colIdx, j)
				data = append(data, v)
			}
		}
		rowPtr[i+1] = len(data)
	}
	return sparse.NewCSR(n, m, rowPtr, colIdx, data)
}

// quantileThreshold returns the value at sorted position k of vec (its
// (k+1)-th smallest element), so keeping entries >= it keeps the len(vec)-k
// largest, plus any entries below position k that tie with it; a resulting
// zero threshold is bumped to zeroThresholdEpsilon so zero-similarity
// entries never qualify.
func quantileThreshold(vec []float64, k int) float64 {
	size := len(vec)
	if k <= 0 {
		return zeroThresholdEpsilon
	}
	if k >= size {
		return maxOf(vec) + 1 // nothing survives
	}
	sorted := append([]float64(nil), vec...)
	sort.Float64s(sorted)
	threshold := sorted[k]
	if threshold == 0 {
		threshold = zeroThresholdEpsilon
	}
	return threshold
}

func maxOf(vec []float64) float64 {
	m := 0.0
	for _, v := range vec {
		if v > m {
			m = v
		}
	}
	return m
}
