// Package sparse provides the Compressed Sparse Row (CSR) matrix kernel used
// by the graph-matching core: construction from already-compressed
// row-pointer/column/value slices, row/column slicing, and the
// "leave-one-out max" reductions that the belief-propagation solvers run on
// their hot path.
//
// A CSR has Dims and At shaped like gonum.org/v1/gonum/mat.Matrix's methods
// but no T method, so it does not satisfy mat.Matrix and is not usable with
// gonum's formatting or comparison helpers; it is not a general-purpose
// arithmetic type (no Mul/Add) — only the operations the matcher package
// actually needs are exposed.
package sparse
