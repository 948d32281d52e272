package choose

import "sort"

// BinEdges returns the nbins-1 evenly spaced inner edges over [lo, hi].
func BinEdges(lo, hi float64, nbins int) []float64 {
	num := nbins - 1
	if num <= 0 {
		return nil
	}
	edges := make([]float64, num)
	if num == 1 {
		edges[0] = lo
		return edges
	}
	step := (hi - lo) / float64(num-1)
	for i := range edges {
		edges[i] = lo + float64(i)*step
	}
	edges[num-1] = hi
	return edges
}

// BinOf returns the number of edges less than or equal to score: scores below
// the range land in bin 0, scores at or above the top edge in the last bin.
func BinOf(score float64, edges []float64) int {
	return sort.Search(len(edges), func(i int) bool { return edges[i] > score })
}

// BinQuotas returns the per-bin quota for selecting n variants over nbins
// bins. Every bin gets (n-1)/(nbins-1) except the last, which gets one fewer.
func BinQuotas(n, nbins int) []int {
	if nbins < 2 {
		return nil
	}
	per := 0
	if n > 0 {
		per = (n - 1) / (nbins - 1)
	}
	quotas := make([]int, nbins)
	for i := range quotas {
		quotas[i] = per
	}
	quotas[nbins-1] = max(per-1, 0)
	return quotas
}
