package match

import (
	"math"
	"math/rand"

	"github.com/thebabush/qbindiff/sparse"
)

// MWM computes the Maximum Weight (bipartite) Matching relaxation via
// max-product belief propagation (C4), grounded on
// qbindiff/belief/belief_propagation.py's BeliefMWM.
type MWM struct {
	w *sparse.CSR

	x, y  []float64
	mates []bool

	conv      convergenceTracker
	rng       *rand.Rand
	epsilon   float64
	converged bool
}

// NewMWM validates w and prepares a solver whose messages are initialized to
// w's own values, as the reference implementation does.
func NewMWM(w *sparse.CSR, epsilon float64, seed int64) (*MWM, error) {
	if err := checkBipartite(w); err != nil {
		return nil, err
	}
	x := append([]float64(nil), w.Data...)
	y := append([]float64(nil), w.Data...)
	return &MWM{
		w:       w,
		x:       x,
		y:       y,
		epsilon: epsilon,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

func checkBipartite(w *sparse.CSR) error {
	if row, col, ok := w.RowHasEmptyRowOrCol(); ok {
		return &IsolatedError{Row: row, Col: col}
	}
	return nil
}

// Step runs exactly one message-passing round and reports the iteration
// count reached and whether the solver has converged (in which case the
// caller should stop calling Step). This is the "stateful iterator with an
// explicit step method" shape from the design notes, replacing the Python
// generator.
func (m *MWM) Step(iter int) (int, bool) {
	m.update()
	if m.conv.detect() {
		for i := 0; i < m.conv.extraIters; i++ {
			m.update()
			iter++
		}
		m.converged = true
		return iter, true
	}
	return iter + 1, false
}

func (m *MWM) update() {
	w := m.w
	noise := m.epsilon * (m.rng.Float64()*2 - 1)

	rowMax := w.OtherRowMax(m.y)
	for e := range m.x {
		m.x[e] = w.Data[e] - math.Max(0, rowMax[e]) + noise
	}

	colMax := w.OtherColMax(m.x)
	for e := range m.y {
		m.y[e] = w.Data[e] - math.Max(0, colMax[e]) + noise
	}

	m.mates = make([]bool, len(w.Data))
	for e := range m.mates {
		mu := m.x[e] + m.y[e] - w.Data[e]
		m.mates[e] = mu > 0
	}

	m.conv.record(m.computeObjective())
}

// computeObjective sums W.Data over candidate edges whose row has exactly
// one mated entry (the XOR row-match rule from the spec).
func (m *MWM) computeObjective() float64 {
	total := 0.0
	for i := 0; i < rowsOf(m.w); i++ {
		s, e := m.w.RowRange(i)
		count, last := 0, -1
		for k := s; k < e; k++ {
			if m.mates[k] {
				count++
				last = k
			}
		}
		if count == 1 {
			total += m.w.Data[last]
		}
	}
	return total
}

func rowsOf(w *sparse.CSR) int {
	r, _ := w.Dims()
	return r
}

// Mapping reads out the current matching: a row has a match iff exactly one
// of its candidate edges has mates=true; the matched column is that edge's
// column.
func (m *MWM) Mapping() Mapping {
	var idx, idy []int
	for i := 0; i < rowsOf(m.w); i++ {
		s, e := m.w.RowRange(i)
		count, col := 0, -1
		for k := s; k < e; k++ {
			if m.mates[k] {
				count++
				col = m.w.ColIdx[k]
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
func (m *MWM) Objective() float64 { return m.conv.last() }

// Converged reports whether the cycle detector has fired.
func (m *MWM) Converged() bool { return m.converged }
