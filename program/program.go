// Package program defines the in-memory shape of a disassembled binary: a
// flat arena of functions, each an arena of basic blocks, each a list of
// instructions. It intentionally defines only this shape, not a parser --
// loading from a disassembler (IDA, Ghidra, or otherwise) is out of scope.
//
// Functions reference each other by index rather than by pointer
// (ProgramID + Index, never a back-pointer to *Program), so the graph of
// functions stays acyclic at the Go value level even though the call graph
// it represents is not.
package program

import "github.com/thebabush/qbindiff/sparse"

// Instruction is a single disassembled instruction.
type Instruction struct {
	Mnemonic string
	Operands []string
}

// BasicBlock is a straight-line run of instructions.
type BasicBlock struct {
	Index        int
	Instructions []Instruction
}

// Function is one function of a Program, identified by ProgramID+Index.
// CallTargets holds the indices (within the same Program's Functions slice)
// of its direct callees -- the call-graph out-edges.
type Function struct {
	ProgramID   string
	Index       int
	Name        string
	BasicBlocks []BasicBlock
	CallTargets []int
}

// Successors returns the call-graph out-edges of f: the indices of its
// direct callees. This is the adjacency(i,j) collaborator contract match's
// sparse.Adjacency is built from.
func (f Function) Successors() []int { return f.CallTargets }

// Instructions flattens f's basic blocks into a single instruction stream,
// in block order, for feature extractors that don't care about block
// boundaries.
func (f Function) Instructions() []Instruction {
	var out []Instruction
	for _, bb := range f.BasicBlocks {
		out = append(out, bb.Instructions...)
	}
	return out
}

// Program is an arena of functions belonging to one binary.
type Program struct {
	ID        string
	Functions []Function
}

// New builds an empty Program with the given id.
func New(id string) *Program {
	return &Program{ID: id}
}

// AddFunction appends a function to the arena, stamping its ProgramID and
// Index, and returns the assigned index.
func (p *Program) AddFunction(name string) int {
	idx := len(p.Functions)
	p.Functions = append(p.Functions, Function{ProgramID: p.ID, Index: idx, Name: name})
	return idx
}

// AddCall records a call-graph edge from the function at index i to the
// function at index j.
func (p *Program) AddCall(i, j int) {
	p.Functions[i].CallTargets = append(p.Functions[i].CallTargets, j)
}

// Adjacency builds the *sparse.Adjacency match's squares enumerator (C3)
// consumes, from every function's Successors().
func (p *Program) Adjacency() (*sparse.Adjacency, error) {
	n := len(p.Functions)
	edges := make([][]int, n)
	for i, fn := range p.Functions {
		edges[i] = fn.Successors()
	}
	return sparse.NewAdjacencyFromEdges(n, edges)
}
