// Package feature extracts per-function feature vectors from a program.
// Extractors implement one or both of two small capability interfaces
// (InstructionVisitor, FunctionVisitor) rather than one fat visitor, so a
// function-level extractor never has to provide a no-op instruction method
// and vice versa -- composition instead of the multiple-inheritance visitor
// hierarchy disassembler APIs tend to grow.
package feature

import (
	"strings"

	"github.com/thebabush/qbindiff/program"
)

// Vector is a sparse per-function feature vector: feature key -> weight.
type Vector map[string]float64

// InstructionVisitor is implemented by extractors that observe individual
// instructions within a function.
type InstructionVisitor interface {
	VisitInstruction(inst program.Instruction)
}

// FunctionVisitor is implemented by extractors that need to know when a new
// function starts (typically to reset per-function accumulator state).
type FunctionVisitor interface {
	VisitFunction(fn program.Function)
}

// MnemonicExtractor builds a bag-of-mnemonic-n-grams feature vector per
// function: a sliding window of the last N instruction mnemonics is joined
// into a single feature key and counted. N=1 degenerates to a plain bag of
// mnemonics. Grounded on qbindiff/features/mnemonic.py.
type MnemonicExtractor struct {
	n      int
	counts Vector
	window []string
}

// NewMnemonicExtractor returns an extractor with n-gram length n (n<=0 is
// treated as 1).
func NewMnemonicExtractor(n int) *MnemonicExtractor {
	if n <= 0 {
		n = 1
	}
	return &MnemonicExtractor{n: n}
}

// VisitFunction resets the extractor's accumulator for a new function.
func (e *MnemonicExtractor) VisitFunction(program.Function) {
	e.counts = make(Vector)
	e.window = e.window[:0]
}

// VisitInstruction folds one more instruction's mnemonic into the sliding
// n-gram window.
func (e *MnemonicExtractor) VisitInstruction(inst program.Instruction) {
	e.window = append(e.window, inst.Mnemonic)
	if len(e.window) < e.n {
		return
	}
	gram := strings.Join(e.window[len(e.window)-e.n:], "_")
	e.counts[gram]++
}

// Vector returns the feature vector accumulated since the last VisitFunction.
func (e *MnemonicExtractor) Vector() Vector { return e.counts }

// ExtractProgram runs ext over every function of p, in function-index order,
// and returns one Vector per function.
func ExtractProgram(p *program.Program, ext *MnemonicExtractor) []Vector {
	out := make([]Vector, len(p.Functions))
	for i, fn := range p.Functions {
		ext.VisitFunction(fn)
		for _, inst := range fn.Instructions() {
			ext.VisitInstruction(inst)
		}
		out[i] = ext.Vector()
	}
	return out
}
