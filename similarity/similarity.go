// Package similarity turns two programs' per-function feature vectors into
// the dense similarity matrix the match package's core consumes. Grounded on
// qbindiff/differ/preprocessing.py's build_weight_matrix: a shared feature
// vocabulary densifies both feature sets, then a similarity transform scores
// every (i,j) pair: cosine similarity (1 - cdist, in scipy terms), or Pearson
// correlation rescaled to (corr+1)/2.
package similarity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/thebabush/qbindiff/feature"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	errUnknownMethod = errors.New("unknown similarity method")
	// ErrUnknownMethod is returned for a Method value other than Cosine or
	// Correlation.
	ErrUnknownMethod = fmt.Errorf("similarity: %w", errUnknownMethod)
)

// Method selects the distance-to-similarity transform BuildWeightMatrix uses.
type Method int

const (
	// Cosine scores pairs by cosine similarity of their feature vectors,
	// which is already in [0,1] for non-negative (count) features.
	Cosine Method = iota
	// Correlation scores pairs by Pearson correlation, rescaled from [-1,1]
	// to [0,1] via (corr+1)/2 so it fits the same convention as Cosine.
	Correlation
)

// BuildWeightMatrix computes the dense (len(f1), len(f2)) similarity matrix
// S between two programs' per-function feature vectors.
func BuildWeightMatrix(f1, f2 []feature.Vector, method Method) (*mat.Dense, error) {
	vocab := buildVocabulary(f1, f2)
	d1 := toDense(f1, vocab)
	d2 := toDense(f2, vocab)

	switch method {
	case Cosine:
		return cosineSimilarity(d1, d2), nil
	case Correlation:
		return correlationSimilarity(d1, d2), nil
	default:
		return nil, ErrUnknownMethod
	}
}

// buildVocabulary returns the sorted union of every feature key seen across
// both feature sets, the column order toDense uses.
func buildVocabulary(sets ...[]feature.Vector) []string {
	seen := make(map[string]struct{})
	for _, set := range sets {
		for _, v := range set {
			for k := range v {
				seen[k] = struct{}{}
			}
		}
	}
	vocab := make([]string, 0, len(seen))
	for k := range seen {
		vocab = append(vocab, k)
	}
	sort.Strings(vocab)
	return vocab
}

// toDense densifies a slice of sparse feature vectors against a fixed
// vocabulary (column order).
func toDense(vectors []feature.Vector, vocab []string) *mat.Dense {
	cols := make(map[string]int, len(vocab))
	for i, k := range vocab {
		cols[k] = i
	}
	out := mat.NewDense(len(vectors), len(vocab), nil)
	for i, v := range vectors {
		for k, val := range v {
			out.Set(i, cols[k], val)
		}
	}
	return out
}

func cosineSimilarity(a, b *mat.Dense) *mat.Dense {
	n, _ := a.Dims()
	m, _ := b.Dims()
	out := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		rowA := a.RawRowView(i)
		normA := floats.Norm(rowA, 2)
		for j := 0; j < m; j++ {
			rowB := b.RawRowView(j)
			normB := floats.Norm(rowB, 2)
			if normA == 0 || normB == 0 {
				out.Set(i, j, 0)
				continue
			}
			out.Set(i, j, floats.Dot(rowA, rowB)/(normA*normB))
		}
	}
	return out
}

func correlationSimilarity(a, b *mat.Dense) *mat.Dense {
	n, _ := a.Dims()
	m, _ := b.Dims()
	out := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		rowA := a.RawRowView(i)
		for j := 0; j < m; j++ {
			rowB := b.RawRowView(j)
			corr := stat.Correlation(rowA, rowB, nil)
			if math.IsNaN(corr) {
				corr = 0
			}
			out.Set(i, j, (corr+1)/2)
		}
	}
	return out
}
