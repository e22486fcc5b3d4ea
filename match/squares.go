package match

import (
	"sort"

	"github.com/thebabush/qbindiff/sparse"
)

// squareEdge is one (e1,e2) pair emitted by computeSquares before
// deduplication.
type squareEdge struct {
	e1, e2 int
}

// computeSquares builds the squares-interaction matrix Q (E x E, symmetric,
// 0/1) from two adjacency matrices and the candidate matrix W (C3).
//
// For every stored candidate edge a->b (W[a,b] > 0) and every primary
// successor d of a (A1[a,d]), every candidate edge d->c sharing a secondary
// edge b->c (A2[b,c]) contributes a square (id(a,b), id(d,c)). This mirrors
// qbindiff's compute_squares/find_squares: walk each row's candidates and
// each row's graph-successors, then intersect successor candidates against
// the secondary adjacency.
func computeSquares(a1, a2 *sparse.Adjacency, w *sparse.CSR) (*sparse.CSR, error) {
	n, m := w.Dims()
	if a1.N() != n {
		return nil, ErrDimensionMismatch
	}
	if a2.N() != m {
		return nil, ErrDimensionMismatch
	}

	index := w.BuildIndex() // dense (n*m) lookup: (a,b) -> candidate-edge id
	e := w.NNZ()

	var edges []squareEdge
	for a := 0; a < n; a++ {
		bs := w.RowCols(a)
		if len(bs) == 0 {
			continue
		}
		for _, d := range a1.Neighbors(a) {
			cs := w.RowCols(d)
			if len(cs) == 0 {
				continue
			}
			for _, b := range bs {
				e1 := index[a*m+b]
				for _, c := range cs {
					if !a2.At(b, c) {
						continue
					}
					e2 := index[d*m+c]
					edges = append(edges, squareEdge{e1, e2})
				}
			}
		}
	}

	log.WithFields(map[string]interface{}{
		"candidate_edges": e,
		"raw_squares":     len(edges),
	}).Debug("squares enumerated, building interaction matrix")

	return buildSymmetricBoolCSR(e, edges)
}

// buildSymmetricBoolCSR de-duplicates, symmetrizes (Q <- Q u Q^T) and
// coalesces an edge list into a CSR with every stored value equal to 1.
func buildSymmetricBoolCSR(e int, edges []squareEdge) (*sparse.CSR, error) {
	seen := make(map[int64]struct{}, len(edges)*2)
	rowBuckets := make([][]int, e)

	add := func(r, c int) {
		key := int64(r)*int64(e) + int64(c)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		rowBuckets[r] = append(rowBuckets[r], c)
	}

	for _, se := range edges {
		add(se.e1, se.e2)
		add(se.e2, se.e1)
	}

	rowPtr := make([]int, e+1)
	var colIdx []int
	var data []float64
	for i := 0; i < e; i++ {
		cols := rowBuckets[i]
		sort.Ints(cols)
		colIdx = append(colIdx, cols...)
		for range cols {
			data = append(data, 1)
		}
		rowPtr[i+1] = len(colIdx)
	}

	return sparse.NewCSR(e, e, rowPtr, colIdx, data)
}
