package match

import (
	"math"
	"math/rand"

	"github.com/thebabush/qbindiff/sparse"
)

// NAQP computes the Network Alignment Quadratic Problem relaxation: C4's
// matching objective plus a reward for preserved-edge squares, via max-product
// belief propagation (C5), grounded on qbindiff/belief/belief_propagation.py's
// BeliefNAQP.
type NAQP struct {
	w      *sparse.CSR // original (unscaled) candidate similarity, for the objective
	wAlpha []float64   // alpha * w.Data, the per-edge node-score message input
	q      *sparse.CSR // squares-interaction matrix, E x E, symmetric, 0/1 (may be nil)

	alpha, beta float64

	x, y, mZ []float64
	mates    []bool

	// zclip/z are parallel to q.Data: zclip[k] = clip(z_prev[transpose[k]]+beta, 0, beta);
	// z[k] = m_xyz[row(k)] - zclip[k], carried into the next round.
	z, zclip    []float64
	qRowOf      []int
	qTransposed []int

	conv      convergenceTracker
	rng       *rand.Rand
	epsilon   float64
	converged bool
}

// NewNAQP validates w (and q, if non-nil) and prepares a solver whose x/y
// messages are initialized to the alpha-scaled weights, mirroring NewMWM's
// initialization of x=y=w.Data.
//
// q may be nil (or zero-NNZ), in which case the squares term contributes
// nothing and NAQP degenerates to MWM scaled by alpha -- callers normally
// only reach for NAQP when beta > 0 and a non-trivial Q exists, but the
// degenerate case is not an error.
func NewNAQP(w, q *sparse.CSR, alpha, beta, epsilon float64, seed int64) (*NAQP, error) {
	if err := checkBipartite(w); err != nil {
		return nil, err
	}
	e := w.NNZ()
	if q != nil {
		rows, cols := q.Dims()
		if rows != e || cols != e {
			return nil, ErrDimensionMismatch
		}
	}

	wAlpha := make([]float64, e)
	for i, v := range w.Data {
		wAlpha[i] = alpha * v
	}
	x := append([]float64(nil), wAlpha...)
	y := append([]float64(nil), wAlpha...)

	n := &NAQP{
		w:       w,
		wAlpha:  wAlpha,
		q:       q,
		alpha:   alpha,
		beta:    beta,
		x:       x,
		y:       y,
		mZ:      make([]float64, e),
		epsilon: epsilon,
		rng:     rand.New(rand.NewSource(seed)),
	}
	if q != nil && q.NNZ() > 0 {
		n.z = make([]float64, q.NNZ())
		n.zclip = make([]float64, q.NNZ())
		n.qRowOf = qRowIndex(q)
		n.qTransposed = qTransposeIndex(q)
	}
	return n, nil
}

// qRowIndex returns, for each stored entry of q (in candidate-edge-id order),
// the row it belongs to.
func qRowIndex(q *sparse.CSR) []int {
	rows, _ := q.Dims()
	out := make([]int, q.NNZ())
	for i := 0; i < rows; i++ {
		s, e := q.RowRange(i)
		for k := s; k < e; k++ {
			out[k] = i
		}
	}
	return out
}

// qTransposeIndex returns, for each stored entry (r,c) of q at position k,
// the position of (c,r) -- always present since squares.go's Q is built
// symmetric. A position with no mirror (e.g. a hand-built asymmetric Q in a
// test) maps to -1 and contributes 0 to zclip.
func qTransposeIndex(q *sparse.CSR) []int {
	rows, cols := q.Dims()
	index := q.BuildIndex()
	out := make([]int, q.NNZ())
	pos := 0
	for r := 0; r < rows; r++ {
		for _, c := range q.RowCols(r) {
			out[pos] = index[c*cols+r]
			pos++
		}
	}
	return out
}

// Step runs exactly one message-passing round, matching MWM.Step's contract.
func (n *NAQP) Step(iter int) (int, bool) {
	n.update()
	if n.conv.detect() {
		for i := 0; i < n.conv.extraIters; i++ {
			n.update()
			iter++
		}
		n.converged = true
		return iter, true
	}
	return iter + 1, false
}

func (n *NAQP) update() {
	w := n.w
	noise := n.epsilon * (n.rng.Float64()*2 - 1)

	rowsum := n.updateZClipAndRowsum()

	for e := range n.mZ {
		n.mZ[e] = n.wAlpha[e] + rowsum[e]
	}

	rowMax := w.OtherRowMax(n.y)
	for e := range n.x {
		n.x[e] = n.mZ[e] - math.Max(0, rowMax[e]) + noise
	}

	colMax := w.OtherColMax(n.x)
	for e := range n.y {
		n.y[e] = n.mZ[e] - math.Max(0, colMax[e]) + noise
	}

	mXYZ := make([]float64, len(n.mZ))
	n.mates = make([]bool, len(n.mZ))
	for e := range mXYZ {
		mXYZ[e] = n.x[e] + n.y[e] - n.mZ[e]
		n.mates[e] = mXYZ[e] >= 0
	}

	if n.q != nil && n.q.NNZ() > 0 {
		for k := range n.z {
			n.z[k] = mXYZ[n.qRowOf[k]] - n.zclip[k]
		}
	}

	n.conv.record(n.computeObjective(mXYZ))
}

// updateZClipAndRowsum computes zclip from the previous round's z (clip(z[transpose]+beta, 0, beta))
// and returns rowsum(zclip) indexed by candidate edge e.
func (n *NAQP) updateZClipAndRowsum() []float64 {
	rowsum := make([]float64, len(n.mZ))
	if n.q == nil || n.q.NNZ() == 0 {
		return rowsum
	}
	for k := range n.zclip {
		prev := 0.0
		if t := n.qTransposed[k]; t >= 0 {
			prev = n.z[t]
		}
		n.zclip[k] = math.Min(math.Max(prev+n.beta, 0), n.beta)
	}
	rows, _ := n.q.Dims()
	for i := 0; i < rows; i++ {
		s, e := n.q.RowRange(i)
		sum := 0.0
		for k := s; k < e; k++ {
			sum += n.zclip[k]
		}
		rowsum[i] = sum
	}
	return rowsum
}

// computeObjective sums the original (unscaled) similarity of matched edges
// plus beta times the number of matched squares, excluding self-squares
// (diagonal entries of Q) from the count per the explicit policy decision
// (see DESIGN.md).
func (n *NAQP) computeObjective(mXYZ []float64) float64 {
	total := 0.0
	for i := 0; i < rowsOf(n.w); i++ {
		s, e := n.w.RowRange(i)
		count, last := 0, -1
		for k := s; k < e; k++ {
			if n.mates[k] {
				count++
				last = k
			}
		}
		if count == 1 {
			total += n.w.Data[last]
		}
	}
	if n.q != nil && n.q.NNZ() > 0 {
		total += n.beta * float64(n.squaresMatched())
	}
	return total
}

// squaresMatched counts nonzeros of Q[mates,mates], halved for symmetry and
// excluding the diagonal (self-squares).
func (n *NAQP) squaresMatched() int {
	count := 0
	rows, _ := n.q.Dims()
	for i := 0; i < rows; i++ {
		if !n.mates[i] {
			continue
		}
		for _, j := range n.q.RowCols(i) {
			if j == i {
				continue // self-square: excluded from the count
			}
			if n.mates[j] {
				count++
			}
		}
	}
	return count / 2
}

// Mapping reads out the current matching, identical in shape to MWM.Mapping.
func (n *NAQP) Mapping() Mapping {
	var idx, idy []int
	for i := 0; i < rowsOf(n.w); i++ {
		s, e := n.w.RowRange(i)
		count, col := 0, -1
		for k := s; k < e; k++ {
			if n.mates[k] {
				count++
				col = n.w.ColIdx[k]
			}
		}
		if count == 1 {
			idx = append(idx, i)
			idy = append(idy, col)
		}
	}
	return Mapping{Idx: idx, Idy: idy}
}

// Objective returns the most recently recorded objective value.
func (n *NAQP) Objective() float64 { return n.conv.last() }

// Converged reports whether the cycle detector has fired.
func (n *NAQP) Converged() bool { return n.converged }
