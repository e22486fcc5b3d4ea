package sparse

import (
	"sort"
)

// CSR is a Compressed Sparse Row matrix: the candidate-edge storage for the
// matcher package. Non-zero entries are stored row-major, in increasing
// column order within each row; the position of an entry in Data/ColIdx is
// its candidate-edge id, assigned in CSR traversal order.
//
// CSR has Dims and At with the same signatures as gonum's mat.Matrix, but no
// T method (Transpose returns a concrete *CSR instead), so it does not
// satisfy mat.Matrix and cannot be passed to mat.Formatted or mat.Equal. It
// is not a general-purpose arithmetic type (no Mul/Add) -- only the
// operations the matcher package actually needs are exposed.
type CSR struct {
	rows, cols int
	// RowPtr has length rows+1; row i's entries are Data[RowPtr[i]:RowPtr[i+1]].
	RowPtr []int
	// ColIdx holds the column of each stored entry, sorted within each row.
	ColIdx []int
	// Data holds the stored (non-zero) values, parallel to ColIdx.
	Data []float64

	// toCol is the permutation of [0,NNZ) that stable-sorts entries by
	// column; toRow is its inverse. Both are built lazily on first use of a
	// column-oriented operation since many callers only ever touch rows.
	toCol []int
	toRow []int
	// colPtr has length cols+1; column j's permuted entries are
	// toCol[colPtr[j]:colPtr[j+1]].
	colPtr []int
}

// NewCSR builds a CSR from already-compressed slices. The slices become the
// backing storage of the returned matrix (no copy); row pointers and column
// indices are taken as given and must already satisfy the CSR invariants,
// except rows whose columns are unsorted are rejected with ErrNotSorted --
// the candidate-edge numbering the rest of the package relies on requires
// sorted rows. A rowPtr/colIdx/data triple whose lengths are inconsistent
// with rows is rejected with a *ShapeError naming the offending lengths,
// rather than panicking later on an out-of-range index.
func NewCSR(rows, cols int, rowPtr, colIdx []int, data []float64) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	if len(rowPtr) != rows+1 {
		return nil, &ShapeError{Op: "NewCSR", Rows: len(rowPtr), Cols: cols, WantR: rows + 1, WantC: cols}
	}
	if len(colIdx) != len(data) || rowPtr[rows] != len(colIdx) {
		return nil, &ShapeError{Op: "NewCSR", Rows: rowPtr[rows], Cols: len(colIdx), WantR: len(colIdx), WantC: len(data)}
	}
	for i := 0; i < rows; i++ {
		row := colIdx[rowPtr[i]:rowPtr[i+1]]
		if !sort.IntsAreSorted(row) {
			return nil, ErrNotSorted
		}
	}
	return &CSR{rows: rows, cols: cols, RowPtr: rowPtr, ColIdx: colIdx, Data: data}, nil
}

// Dims returns the matrix shape, satisfying gonum's mat.Matrix.
func (c *CSR) Dims() (int, int) { return c.rows, c.cols }

// At returns the element at (i,j), satisfying gonum's mat.Matrix. It scans
// the row, which is O(row degree) -- acceptable here since the hot paths
// (row/column reductions) never call At, they use RowRange/ColPermute.
func (c *CSR) At(i, j int) float64 {
	if i < 0 || i >= c.rows {
		panic(ErrRowAccess)
	}
	if j < 0 || j >= c.cols {
		panic(ErrColAccess)
	}
	for k := c.RowPtr[i]; k < c.RowPtr[i+1]; k++ {
		if c.ColIdx[k] == j {
			return c.Data[k]
		}
	}
	return 0
}

// Transpose returns a new CSR with rows and columns swapped, sharing no
// storage with the receiver. Grounded on compressed.go's CSR.T()/CSC pattern
// of swapping row/col structure over the same triples, adapted to build an
// independent row-sorted CSR since this package keeps no separate CSC type.
func (c *CSR) Transpose() *CSR {
	c.ensureColIndex()

	rowOf := make([]int, len(c.Data))
	for i := 0; i < c.rows; i++ {
		for k := c.RowPtr[i]; k < c.RowPtr[i+1]; k++ {
			rowOf[k] = i
		}
	}

	rowPtr := append([]int(nil), c.colPtr...)
	colIdx := make([]int, len(c.Data))
	data := make([]float64, len(c.Data))
	for k, orig := range c.toCol {
		colIdx[k] = rowOf[orig]
		data[k] = c.Data[orig]
	}
	return &CSR{rows: c.cols, cols: c.rows, RowPtr: rowPtr, ColIdx: colIdx, Data: data}
}

// NNZ returns the number of stored (non-zero) entries.
func (c *CSR) NNZ() int { return len(c.Data) }

// RowRange returns the half-open [start, end) slice bounds of row i within
// Data/ColIdx.
func (c *CSR) RowRange(i int) (start, end int) {
	return c.RowPtr[i], c.RowPtr[i+1]
}

// RowCols returns the column indices of row i, in sorted order.
func (c *CSR) RowCols(i int) []int {
	s, e := c.RowRange(i)
	return c.ColIdx[s:e]
}

// RowView returns the slice of vec (a parallel, E-length vector, e.g. Data,
// x or y messages) belonging to row i.
func (c *CSR) RowView(vec []float64, i int) []float64 {
	s, e := c.RowRange(i)
	return vec[s:e]
}

// ensureColIndex builds toCol/toRow/colPtr on first use (lazily, since many
// callers only ever perform row-oriented operations).
func (c *CSR) ensureColIndex() {
	if c.toCol != nil {
		return
	}
	n := len(c.Data)
	toCol := make([]int, n)
	for i := range toCol {
		toCol[i] = i
	}
	// stable sort by column so entries sharing a column keep their original
	// (row-major) relative order, matching the Python argsort(kind="mergesort").
	sort.SliceStable(toCol, func(a, b int) bool {
		return c.ColIdx[toCol[a]] < c.ColIdx[toCol[b]]
	})
	toRow := make([]int, n)
	for pos, orig := range toCol {
		toRow[orig] = pos
	}
	colPtr := make([]int, c.cols+1)
	for _, orig := range toCol {
		colPtr[c.ColIdx[orig]+1]++
	}
	for j := 0; j < c.cols; j++ {
		colPtr[j+1] += colPtr[j]
	}
	c.toCol, c.toRow, c.colPtr = toCol, toRow, colPtr
}

// ColView returns a new slice (not an in-place view, since columns are not
// contiguous in CSR storage) holding vec's entries for column j, in the
// order their rows appear.
func (c *CSR) ColView(vec []float64, j int) []float64 {
	c.ensureColIndex()
	s, e := c.colPtr[j], c.colPtr[j+1]
	out := make([]float64, e-s)
	for k := s; k < e; k++ {
		out[k-s] = vec[c.toCol[k]]
	}
	return out
}

// ColPermute returns vec permuted into column-major order (vec[toCol[k]] at
// position k); ColPtr delimits columns within the permuted vector. Used by
// OtherColMax to batch the leave-one-out reduction column-by-column.
func (c *CSR) ColPermute(vec []float64) []float64 {
	c.ensureColIndex()
	out := make([]float64, len(vec))
	for k, orig := range c.toCol {
		out[k] = vec[orig]
	}
	return out
}

// ToRow returns the permutation that maps a column-major-ordered vector back
// to row-major (candidate-edge-id) order.
func (c *CSR) ToRow() []int {
	c.ensureColIndex()
	return c.toRow
}

// ColPtr returns the column pointer array (length cols+1) used to delimit
// columns within a ColPermute-d vector.
func (c *CSR) ColPtr() []int {
	c.ensureColIndex()
	return c.colPtr
}

// RowHasEmptyRowOrCol reports whether any row or column of the matrix is
// entirely empty (no stored entries) -- the bipartite-incompleteness check
// that match.Matcher.Process and the MWM/NAQP constructors run on the
// sparsified candidate matrix.
func (c *CSR) RowHasEmptyRowOrCol() (row, col int, ok bool) {
	for i := 0; i < c.rows; i++ {
		if c.RowPtr[i] == c.RowPtr[i+1] {
			return i, -1, true
		}
	}
	c.ensureColIndex()
	for j := 0; j < c.cols; j++ {
		if c.colPtr[j] == c.colPtr[j+1] {
			return -1, j, true
		}
	}
	return 0, 0, false
}

// Index returns the candidate-edge id of (i,j) if it is a stored entry, or
// -1 otherwise. It is O(row degree); callers enumerating many lookups (the
// squares enumerator) should instead use BuildIndex.
func (c *CSR) Index(i, j int) int {
	for k := c.RowPtr[i]; k < c.RowPtr[i+1]; k++ {
		if c.ColIdx[k] == j {
			return k
		}
		if c.ColIdx[k] > j {
			break
		}
	}
	return -1
}

// BuildIndex returns a dense (rows x cols) lookup array mapping (i,j) to its
// candidate-edge id, or -1 if (i,j) is not a stored entry. This trades O(n*m)
// memory for O(1) lookups during squares enumeration, worthwhile once the
// same matrix is probed for many (i,j) pairs.
func (c *CSR) BuildIndex() []int {
	idx := make([]int, c.rows*c.cols)
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < c.rows; i++ {
		for k := c.RowPtr[i]; k < c.RowPtr[i+1]; k++ {
			idx[i*c.cols+c.ColIdx[k]] = k
		}
	}
	return idx
}
