package program

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddFunctionAssignsSequentialIndex(t *testing.T) {
	p := New("a.out")
	i0 := p.AddFunction("main")
	i1 := p.AddFunction("helper")
	require.Equal(t, 0, i0)
	require.Equal(t, 1, i1)
	require.Equal(t, "a.out", p.Functions[0].ProgramID)
	require.Equal(t, 0, p.Functions[0].Index)
}

func TestSuccessorsReflectsCallTargets(t *testing.T) {
	p := New("a.out")
	p.AddFunction("main")
	p.AddFunction("helper")
	p.AddCall(0, 1)
	require.Equal(t, []int{1}, p.Functions[0].Successors())
	require.Empty(t, p.Functions[1].Successors())
}

func TestAdjacencyBuildsFromCallGraph(t *testing.T) {
	p := New("a.out")
	p.AddFunction("a")
	p.AddFunction("b")
	p.AddFunction("c")
	p.AddCall(0, 1)
	p.AddCall(1, 2)
	p.AddCall(2, 0)

	adj, err := p.Adjacency()
	require.NoError(t, err)
	require.Equal(t, 3, adj.N())
	require.True(t, adj.At(0, 1))
	require.True(t, adj.At(1, 2))
	require.True(t, adj.At(2, 0))
	require.False(t, adj.At(0, 2))
}

func TestInstructionsFlattensBasicBlocks(t *testing.T) {
	p := New("a.out")
	p.AddFunction("main")
	p.Functions[0].BasicBlocks = []BasicBlock{
		{Index: 0, Instructions: []Instruction{{Mnemonic: "push"}, {Mnemonic: "mov"}}},
		{Index: 1, Instructions: []Instruction{{Mnemonic: "call"}}},
	}
	got := p.Functions[0].Instructions()
	require.Equal(t, []string{"push", "mov", "call"}, mnemonics(got))
}

func mnemonics(instrs []Instruction) []string {
	out := make([]string, len(instrs))
	for i, in := range instrs {
		out[i] = in.Mnemonic
	}
	return out
}
