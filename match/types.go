package match

// Mapping is the raw (idx, idy) pair produced by a solver or by Refine:
// idx[k] is a primary node index, idy[k] the secondary node index it is
// matched to. Values within idx are unique, as are values within idy.
type Mapping struct {
	Idx []int
	Idy []int
}

// Len returns the number of matched pairs.
func (m Mapping) Len() int { return len(m.Idx) }

// Clone returns a deep copy, so callers can keep mutating Idx/Idy in place
// (Refine does) without aliasing a caller's slice.
func (m Mapping) Clone() Mapping {
	idx := make([]int, len(m.Idx))
	idy := make([]int, len(m.Idy))
	copy(idx, m.Idx)
	copy(idy, m.Idy)
	return Mapping{Idx: idx, Idy: idy}
}

// Result is the shape handed to the "output mapping consumer" collaborator:
// a completed mapping annotated with per-pair similarity and, for NAQP runs,
// the number of preserved-edge squares each pair participates in.
type Result struct {
	Idx, Idy        []int
	Similarities    []float64
	SquaresPerMatch []int
}

// SparsifyOptions configures Matcher.Process (C2).
type SparsifyOptions struct {
	// Ratio is sparsity_ratio in [0,1]: the fraction of entries to discard.
	// 0 keeps every non-zero entry verbatim; 1 keeps only the row-wise
	// maxima.
	Ratio float64
	// SparseRow, when true, applies the ratio per-row instead of over the
	// whole matrix.
	SparseRow bool
	// ComputeSquares records Matcher.Process's wantSquares argument, which
	// decides whether the squares-interaction matrix Q is built; Sparsify
	// itself does not read it. Q can be skipped when Compute will be called
	// with Tradeoff == 1 (pure MWM never consults Q).
	ComputeSquares bool
}

// SolveOptions configures Matcher.Compute (C4/C5).
type SolveOptions struct {
	// Tradeoff in [0,1] interpolates between pure similarity (1) and
	// structural reward; Tradeoff == 1 selects the MWM solver, anything
	// else selects NAQP with Alpha = 1-Tradeoff, Beta = Tradeoff.
	Tradeoff float64
	// Epsilon is the perturbation amplitude used to break ties between
	// rounds. The convergence detector compares objective values exactly;
	// Epsilon does not widen that comparison.
	Epsilon float64
	// MaxIter bounds the number of belief-propagation rounds.
	MaxIter int
	// Seed seeds the perturbation RNG; identical Seed + inputs reproduce a
	// bit-identical run.
	Seed int64
}

// Diagnostics reports what happened during Compute, for callers that care
// whether the run actually converged.
type Diagnostics struct {
	Iterations int
	Converged  bool
	Objective  float64
}
