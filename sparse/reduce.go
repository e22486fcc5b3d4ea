package sparse

// OtherRowMax computes, for every stored entry e of vec (an E-length vector
// sharing the receiver's sparsity pattern), the maximum of vec over every
// other entry in e's row. Rows of length 1 yield 0 at their single entry.
// Ties are broken by lowest index: the first occurrence of the row maximum
// keeps the slot, so for rows of length >= 2 the result equals the row max
// everywhere except at the argmax, where it holds the second-largest value.
func (c *CSR) OtherRowMax(vec []float64) []float64 {
	out := make([]float64, len(vec))
	for i := 0; i < c.rows; i++ {
		s, e := c.RowRange(i)
		otherMax(vec[s:e], out[s:e])
	}
	return out
}

// OtherColMax is the column-oriented counterpart of OtherRowMax.
func (c *CSR) OtherColMax(vec []float64) []float64 {
	c.ensureColIndex()
	permuted := c.ColPermute(vec)
	outPermuted := make([]float64, len(vec))
	for j := 0; j < c.cols; j++ {
		s, e := c.colPtr[j], c.colPtr[j+1]
		otherMax(permuted[s:e], outPermuted[s:e])
	}
	out := make([]float64, len(vec))
	for k, orig := range c.toCol {
		out[orig] = outPermuted[k]
	}
	return out
}

// otherMax fills dst[k] with max(src[j] : j != k) for a single row/column
// slice, finding the top two values in one pass (canonical implementation
// referenced by the spec). dst must have the same length as src.
func otherMax(src, dst []float64) {
	if len(src) == 0 {
		return
	}
	if len(src) == 1 {
		dst[0] = 0
		return
	}

	max1, max2 := 0, 1
	if src[max2] > src[max1] {
		max1, max2 = max2, max1
	}
	for k := 2; k < len(src); k++ {
		switch {
		case src[k] > src[max1]:
			max2 = max1
			max1 = k
		case src[k] > src[max2]:
			max2 = k
		}
	}

	for k := range src {
		dst[k] = src[max1]
	}
	dst[max1] = src[max2]
}
