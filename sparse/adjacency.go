package sparse

/*
Adjacency

Description:
  A boolean square matrix recording the directed call-graph edges of one of
  the two programs being diffed (A[i][j] == true iff there is an edge i->j).
  Alongside the dense bitmap it keeps, per row, the precomputed list of
  successor indices, since the squares enumerator (match.computeSquares)
  walks successors far more often than it does single-cell lookups.

Use cases:
  - O(1) edge-existence test (At).
  - O(out-degree) successor enumeration (Neighbors), the hot loop of C3.

Memory:
  O(n^2) for the bitmap plus O(E) for the neighbor lists -- acceptable at the
  call-graph sizes this engine targets (the spec states all matrices fit in
  memory; no streaming).
*/
type Adjacency struct {
	n         int
	bits      []bool // row-major n*n
	neighbors [][]int
}

// NewAdjacency builds an empty n x n Adjacency.
func NewAdjacency(n int) (*Adjacency, error) {
	if n <= 0 {
		return nil, ErrBadShape
	}
	return &Adjacency{
		n:         n,
		bits:      make([]bool, n*n),
		neighbors: make([][]int, n),
	}, nil
}

// NewAdjacencyFromEdges builds an Adjacency from an explicit edge list
// edges[i] = successors of node i, mirroring the CallGraph shape
// (List[List[Idx]]) the original Python accepted. len(edges) must equal n;
// a mismatch is rejected with a *ShapeError rather than silently dropping or
// panicking on the nodes beyond len(edges).
func NewAdjacencyFromEdges(n int, edges [][]int) (*Adjacency, error) {
	a, err := NewAdjacency(n)
	if err != nil {
		return nil, err
	}
	if len(edges) != n {
		return nil, &ShapeError{Op: "NewAdjacencyFromEdges", Rows: len(edges), Cols: n, WantR: n, WantC: n}
	}
	for i, succs := range edges {
		for _, j := range succs {
			if j < 0 || j >= n {
				return nil, ErrColAccess
			}
			a.AddEdge(i, j)
		}
	}
	return a, nil
}

// AddEdge records a directed edge i->j.
func (a *Adjacency) AddEdge(i, j int) {
	if a.bits[i*a.n+j] {
		return
	}
	a.bits[i*a.n+j] = true
	a.neighbors[i] = append(a.neighbors[i], j)
}

// At reports whether the edge i->j exists.
func (a *Adjacency) At(i, j int) bool {
	return a.bits[i*a.n+j]
}

// N returns the number of nodes (the matrix is n x n).
func (a *Adjacency) N() int { return a.n }

// Neighbors returns the successors of node i, in the order they were added.
func (a *Adjacency) Neighbors(i int) []int {
	return a.neighbors[i]
}
