// Package filter reduces a raw target table to the parents eligible for design.
package filter

import "github.com/traeki/mismatch-crispri/internal/domain"

// Options controls target filtering.
type Options struct {
	// Antisense is the orientation marker rows must carry (default "anti").
	Antisense string
}

// Targets keeps antisense rows for the requested loci whose sequence occurs
// exactly once among the kept rows. Duplicated sequences are dropped entirely,
// not collapsed. Row order is preserved.
func Targets(rows []domain.Target, loci []string, opts Options) []domain.Target {
	marker := opts.Antisense
	if marker == "" {
		marker = domain.Antisense
	}

	want := make(map[string]struct{}, len(loci))
	for _, l := range loci {
		want[l] = struct{}{}
	}

	kept := make([]domain.Target, 0, len(rows))
	counts := map[string]int{}
	for _, r := range rows {
		if r.TransDir != marker {
			continue
		}
		if _, ok := want[r.LocusTag]; !ok {
			continue
		}
		kept = append(kept, r)
		counts[r.Sequence]++
	}

	out := make([]domain.Target, 0, len(kept))
	for _, r := range kept {
		if counts[r.Sequence] == 1 {
			out = append(out, r)
		}
	}
	return out
}

// ByLocus groups rows by locus tag, preserving row order within each group.
func ByLocus(rows []domain.Target) map[string][]domain.Target {
	out := map[string][]domain.Target{}
	for _, r := range rows {
		out[r.LocusTag] = append(out[r.LocusTag], r)
	}
	return out
}
