package match

import (
	"errors"
	"fmt"
)

// Sentinel errors for the matcher pipeline, wrapped with a package prefix so
// errors.Is keeps working across fmt.Errorf("...: %w", ...) wrapping at call
// boundaries.
var (
	errUnknownMatrixShape = errors.New("similarity matrix is not 2-D or has an unsupported element type")
	// ErrUnknownMatrixShape is returned when the input similarity matrix
	// cannot be interpreted as a dense (n,m) real matrix.
	ErrUnknownMatrixShape = fmt.Errorf("match: %w", errUnknownMatrixShape)

	errIncompleteBipartite = errors.New("incomplete bipartite graph: isolated row or column after sparsification")
	// ErrIncompleteBipartite is returned when Process leaves a row or column
	// of the candidate matrix with no surviving entries.
	ErrIncompleteBipartite = fmt.Errorf("match: %w", errIncompleteBipartite)

	errNegativeWeight = errors.New("similarity score is negative")
	// ErrNegativeWeight is returned when an input similarity score is
	// negative; the MWM/NAQP formulation requires non-negative weights.
	ErrNegativeWeight = fmt.Errorf("match: %w", errNegativeWeight)

	errDimensionMismatch = errors.New("adjacency shape inconsistent with similarity matrix shape")
	// ErrDimensionMismatch is returned when A1/A2 shapes don't line up with S.
	ErrDimensionMismatch = fmt.Errorf("match: %w", errDimensionMismatch)
)

// IsolatedError names the specific row or column that broke bipartite
// completeness, for callers that want to report it (e.g. widen the
// sparsification threshold and retry).
type IsolatedError struct {
	Row, Col int // one of the two is -1
}

func (e *IsolatedError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("match: row %d has no surviving candidate edges", e.Row)
	}
	return fmt.Sprintf("match: column %d has no surviving candidate edges", e.Col)
}

func (e *IsolatedError) Unwrap() error { return ErrIncompleteBipartite }
