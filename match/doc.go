// Package match implements the graph-matching core of the binary-diffing
// engine: turning a dense node-similarity matrix and two call-graph
// adjacencies into an approximate maximum-score one-to-one mapping (the
// Network Alignment Quadratic Problem, NAQP).
//
// The pipeline is Sparsify -> computeSquares -> (MWM | NAQP) -> Refine,
// sequenced by Matcher. Belief-propagation solvers expose progress through a
// pull-based step closure rather than a goroutine or channel (see Matcher.Compute)
// so a caller fully controls how many rounds run and can abandon the run at
// any iteration boundary.
package match
