package feature

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thebabush/qbindiff/program"
)

func TestMnemonicExtractorUnigramCounts(t *testing.T) {
	ext := NewMnemonicExtractor(1)
	fn := program.Function{
		BasicBlocks: []program.BasicBlock{{Instructions: []program.Instruction{
			{Mnemonic: "mov"}, {Mnemonic: "mov"}, {Mnemonic: "push"},
		}}},
	}
	ext.VisitFunction(fn)
	for _, inst := range fn.Instructions() {
		ext.VisitInstruction(inst)
	}
	v := ext.Vector()
	require.Equal(t, 2.0, v["mov"])
	require.Equal(t, 1.0, v["push"])
}

func TestMnemonicExtractorBigramSkipsShortWindow(t *testing.T) {
	ext := NewMnemonicExtractor(2)
	fn := program.Function{
		BasicBlocks: []program.BasicBlock{{Instructions: []program.Instruction{
			{Mnemonic: "mov"}, {Mnemonic: "push"}, {Mnemonic: "pop"},
		}}},
	}
	ext.VisitFunction(fn)
	for _, inst := range fn.Instructions() {
		ext.VisitInstruction(inst)
	}
	v := ext.Vector()
	require.Equal(t, 1.0, v["mov_push"])
	require.Equal(t, 1.0, v["push_pop"])
	require.Len(t, v, 2)
}

func TestExtractProgramResetsPerFunction(t *testing.T) {
	p := program.New("a.out")
	p.AddFunction("f0")
	p.AddFunction("f1")
	p.Functions[0].BasicBlocks = []program.BasicBlock{{Instructions: []program.Instruction{{Mnemonic: "mov"}}}}
	p.Functions[1].BasicBlocks = []program.BasicBlock{{Instructions: []program.Instruction{{Mnemonic: "ret"}}}}

	vectors := ExtractProgram(p, NewMnemonicExtractor(1))
	require.Len(t, vectors, 2)
	require.Equal(t, 1.0, vectors[0]["mov"])
	require.Equal(t, 0.0, vectors[0]["ret"])
	require.Equal(t, 1.0, vectors[1]["ret"])
}
