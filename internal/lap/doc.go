// Package lap implements the Jonker-Volgenant shortest-augmenting-path
// algorithm for the square linear assignment problem: given an n x n cost
// matrix, find the permutation minimizing total assigned cost.
//
// Specialized to float64 costs from the pack's generic Cost-interface
// reference implementation (see DESIGN.md); the caller (match.Refine) pads
// rectangular problems to square before calling Solve.
package lap
