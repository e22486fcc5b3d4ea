package lap

import (
	"errors"
	"fmt"
)

var (
	errInfeasible = errors.New("no augmenting path found for a square cost matrix")
	// ErrInfeasible is returned only on an internal invariant violation --
	// every square matrix of finite costs has a complete assignment, so this
	// signals a programmer error (e.g. a cost matrix containing +Inf) rather
	// than a normal failure mode.
	ErrInfeasible = fmt.Errorf("lap: %w", errInfeasible)

	errShapeMismatch = errors.New("cost matrix is not square")
	// ErrShapeMismatch is returned when Solve is given a jagged or
	// non-square matrix.
	ErrShapeMismatch = fmt.Errorf("lap: %w", errShapeMismatch)
)
