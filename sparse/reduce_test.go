package sparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOtherMaxSingleElement(t *testing.T) {
	dst := make([]float64, 1)
	otherMax([]float64{4.2}, dst)
	require.Equal(t, []float64{0}, dst)
}

func TestOtherMaxTwoOrMore(t *testing.T) {
	var tests = []struct {
		name string
		src  []float64
		want []float64
	}{
		{"ascending", []float64{1, 2, 3}, []float64{3, 3, 2}},
		{"descending", []float64{3, 2, 1}, []float64{2, 3, 3}},
		{"max in middle", []float64{1, 5, 2}, []float64{5, 2, 5}},
		{"tie keeps first occurrence as the argmax", []float64{5, 5, 1}, []float64{5, 5, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]float64, len(tt.src))
			otherMax(tt.src, dst)
			require.Equal(t, tt.want, dst)
		})
	}
}

func TestOtherRowMaxAndColMax(t *testing.T) {
	c := buildTestCSR(t)

	rowMax := c.OtherRowMax(c.Data)
	// row0 = [1,7] -> other max: [7,1]; row1 = [2] -> [0]; row2 = [3,6] -> [6,3]
	require.Equal(t, []float64{7, 1, 0, 6, 3}, rowMax)

	colMax := c.OtherColMax(c.Data)
	// col0=[1]->[0]; col1=[2]->[0]; col2=[3]->[0]; col3=[7,6]->[6,7]
	require.Equal(t, []float64{0, 6, 0, 0, 7}, colMax)
}
