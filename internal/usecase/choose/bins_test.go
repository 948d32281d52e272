package choose

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBinQuotas_Shape verifies the last bin is under-sampled by one.
func TestBinQuotas_Shape(t *testing.T) {
	require.Equal(t, []int{5, 5, 5, 5, 4}, BinQuotas(21, 5))
	require.Equal(t, []int{2, 2, 2, 2, 1}, BinQuotas(10, 5))
	require.Equal(t, []int{0, 0, 0, 0, 0}, BinQuotas(1, 5))
	require.Equal(t, []int{9, 8}, BinQuotas(10, 2))
	require.Nil(t, BinQuotas(10, 1))
}

func TestBinEdges_Linspace(t *testing.T) {
	edges := BinEdges(0.1, 0.9, 5)
	require.Len(t, edges, 4)
	require.InDelta(t, 0.1, edges[0], 1e-12)
	require.InDelta(t, 0.1+0.8/3, edges[1], 1e-12)
	require.InDelta(t, 0.1+1.6/3, edges[2], 1e-12)
	require.Equal(t, 0.9, edges[3])

	require.Equal(t, []float64{0.1}, BinEdges(0.1, 0.9, 2))
	require.Nil(t, BinEdges(0.1, 0.9, 1))
}

// TestBinOf_Digitize checks the half-open interval semantics at the edges.
func TestBinOf_Digitize(t *testing.T) {
	edges := BinEdges(0.1, 0.9, 5)
	cases := []struct {
		score float64
		want  int
	}{
		{-1.0, 0},
		{0.05, 0},
		{0.1, 1},
		{0.2, 1},
		{0.5, 2},
		{0.7, 3},
		{0.8999, 3},
		{0.9, 4},
		{1.5, 4},
	}
	for _, c := range cases {
		require.Equal(t, c.want, BinOf(c.score, edges), "score %g", c.score)
	}
}
