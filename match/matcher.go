package match

import (
	"github.com/thebabush/qbindiff/sparse"
	"gonum.org/v1/gonum/mat"
)

// Matcher orchestrates the full pipeline (C7): sparsify a dense similarity
// matrix, optionally enumerate preserved-edge squares, run a belief
// propagation solver to a raw mapping, then refine it to a complete one.
// Grounded on qbindiff/matcher/matcher.py's Matcher.process/compute.
type Matcher struct {
	s  *mat.Dense
	a1 *sparse.Adjacency
	a2 *sparse.Adjacency

	w *sparse.CSR
	q *sparse.CSR

	mapping     Mapping
	diagnostics Diagnostics
}

// NewMatcher builds a Matcher over a dense similarity matrix and the two
// programs' call-graph adjacencies.
func NewMatcher(s *mat.Dense, a1, a2 *sparse.Adjacency) *Matcher {
	return &Matcher{s: s, a1: a1, a2: a2}
}

// Process builds the candidate matrix W (and, if wantSquares, the
// squares-interaction matrix Q). It must be called before Compute.
func (m *Matcher) Process(ratio float64, sparseRow, wantSquares bool) error {
	w, err := Sparsify(m.s, SparsifyOptions{Ratio: ratio, SparseRow: sparseRow, ComputeSquares: wantSquares})
	if err != nil {
		return err
	}
	if err := checkBipartite(w); err != nil {
		return err
	}
	m.w = w

	if !wantSquares {
		m.q = nil
		return nil
	}
	q, err := computeSquares(m.a1, m.a2, w)
	if err != nil {
		return err
	}
	m.q = q
	return nil
}

// solver is the shape both MWM and NAQP satisfy, so Compute can drive either
// through the same step loop.
type solver interface {
	Step(iter int) (int, bool)
	Mapping() Mapping
	Objective() float64
	Converged() bool
}

// Compute runs the belief-propagation solver selected by opts.Tradeoff
// (tradeoff=1 selects pure MWM; otherwise NAQP with alpha=1-tradeoff,
// beta=tradeoff) to convergence or opts.MaxIter, then refines the result to
// a complete mapping via Refine. It returns a pull-based step closure: each
// call runs one more solver round and reports the iteration count reached
// and whether the run is finished; after the closure reports done, Mapping
// and Diagnostics are populated.
func (m *Matcher) Compute(opts SolveOptions) func() (int, bool) {
	var sv solver
	var buildErr error

	if opts.Tradeoff >= 1 {
		sv, buildErr = NewMWM(m.w, opts.Epsilon, opts.Seed)
	} else {
		alpha, beta := 1-opts.Tradeoff, opts.Tradeoff
		sv, buildErr = NewNAQP(m.w, m.q, alpha, beta, opts.Epsilon, opts.Seed)
	}

	iter := 0
	done := buildErr != nil
	finished := false

	return func() (int, bool) {
		if done {
			if !finished {
				m.finish(sv, iter, buildErr)
				finished = true
			}
			return iter, true
		}
		next, stepDone := sv.Step(iter)
		iter = next
		if stepDone || iter >= opts.MaxIter {
			done = true
		}
		if done && !finished {
			m.finish(sv, iter, buildErr)
			finished = true
		}
		return iter, done
	}
}

func (m *Matcher) finish(sv solver, iter int, buildErr error) {
	if buildErr != nil {
		log.WithError(buildErr).Error("solver construction failed")
		return
	}
	raw := sv.Mapping()
	m.diagnostics = Diagnostics{
		Iterations: iter,
		Converged:  sv.Converged(),
		Objective:  sv.Objective(),
	}
	if !sv.Converged() {
		log.WithFields(map[string]interface{}{
			"iterations": iter,
			"objective":  sv.Objective(),
		}).Warn("solver did not converge within maxiter")
	}

	refined, err := Refine(m.s, raw)
	if err != nil {
		log.WithError(err).Error("refine failed, falling back to raw mapping")
		m.mapping = raw
		return
	}
	m.mapping = refined
}

// Mapping returns the completed mapping; only meaningful after the closure
// returned by Compute has reported done.
func (m *Matcher) Mapping() Mapping { return m.mapping }

// Diagnostics reports what happened during the last Compute run.
func (m *Matcher) Diagnostics() Diagnostics { return m.diagnostics }

// Result assembles the (idx, idy, similarities, squares_per_match) tuple the
// spec's output mapping consumer expects.
func (m *Matcher) Result() Result {
	mapping := m.mapping
	sims := make([]float64, mapping.Len())
	for k := range mapping.Idx {
		sims[k] = m.s.At(mapping.Idx[k], mapping.Idy[k])
	}

	squares := make([]int, mapping.Len())
	if m.q != nil && m.q.NNZ() > 0 && m.w != nil {
		matchedEdge := make(map[int]bool, mapping.Len())
		edgeOfMatch := make([]int, mapping.Len())
		for k := range mapping.Idx {
			e := m.w.Index(mapping.Idx[k], mapping.Idy[k])
			edgeOfMatch[k] = e
			if e >= 0 {
				matchedEdge[e] = true
			}
		}
		for k, e := range edgeOfMatch {
			if e < 0 {
				continue
			}
			count := 0
			for _, neighbor := range m.q.RowCols(e) {
				if neighbor != e && matchedEdge[neighbor] {
					count++
				}
			}
			squares[k] = count
		}
	}
	return Result{Idx: mapping.Idx, Idy: mapping.Idy, Similarities: sims, SquaresPerMatch: squares}
}
