package choose

import (
	"fmt"
	"sort"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

// pickCounter is an insertion-ordered multiset of parents.
type pickCounter struct {
	order  []domain.Target
	counts map[string]int
	total  int
}

func newPickCounter() *pickCounter {
	return &pickCounter{counts: map[string]int{}}
}

func (pc *pickCounter) add(t domain.Target) {
	if _, ok := pc.counts[t.Sequence]; !ok {
		pc.order = append(pc.order, t)
	}
	pc.counts[t.Sequence]++
	pc.total++
}

func (pc *pickCounter) max() int {
	m := 0
	for _, t := range pc.order {
		m = max(m, pc.counts[t.Sequence])
	}
	return m
}

// elements expands the counter into one entry per pick, grouped in first-pick order.
func (pc *pickCounter) elements() []domain.Target {
	out := make([]domain.Target, 0, pc.total)
	for _, t := range pc.order {
		for i := 0; i < pc.counts[t.Sequence]; i++ {
			out = append(out, t)
		}
	}
	return out
}

// PickParents chooses n parents for one locus, repeats allowed.
//
// Candidates are tried in ascending offset order. A candidate closer than the
// exclusion radius to an already chosen parent is deferred to a fallback pool.
// Once untried candidates run out, the fallback pool is drawn at random; once
// that is empty too, already chosen parents are boosted, preferring those
// below the current maximum count. Every step makes progress, so the loop ends
// after at most 2*len(candidates)+n iterations.
func (c *Chooser) PickParents(locus string, candidates []domain.Target, n int) ([]domain.Target, error) {
	if n <= 0 {
		return []domain.Target{}, nil
	}

	unused := uniqueByOffset(candidates)
	if len(unused) == 0 {
		return nil, &domain.OpError{
			Op:    "choose.pick_parents",
			Kind:  domain.KindInsufficientPopulation,
			Locus: locus,
			Err:   fmt.Errorf("%w: %d parents requested from an empty population", domain.ErrInsufficientPopulation, n),
		}
	}

	chosen := newPickCounter()
	var fallback []domain.Target

	for chosen.total < n {
		switch {
		case len(unused) > 0:
			cand := unused[0]
			unused = unused[1:]
			if c.overlapsChosen(cand, chosen) {
				fallback = append(fallback, cand)
				continue
			}
			chosen.add(cand)
		case len(fallback) > 0:
			i := c.rng.IntN(len(fallback))
			chosen.add(fallback[i])
			fallback = append(fallback[:i], fallback[i+1:]...)
		default:
			chosen.add(c.boost(chosen))
		}
	}

	if top := chosen.max(); top > c.opts.RepeatWarn {
		counts := make(map[string]any, len(chosen.order))
		for _, t := range chosen.order {
			counts[t.Sequence] = chosen.counts[t.Sequence]
		}
		c.warn(domain.EventParentRepeated, locus,
			fmt.Sprintf("had to fall back to the same family too often (max %d picks)", top),
			map[string]any{"max_picks": top, "counts": counts})
	}

	return chosen.elements(), nil
}

func (c *Chooser) overlapsChosen(cand domain.Target, chosen *pickCounter) bool {
	for _, t := range chosen.order {
		d := t.Offset - cand.Offset
		if d < 0 {
			d = -d
		}
		if d < c.opts.ExclusionRadius {
			return true
		}
	}
	return false
}

// boost draws one already chosen parent, uniformly among those below the
// maximum count, or among all of them when counts are level.
func (c *Chooser) boost(chosen *pickCounter) domain.Target {
	top := chosen.max()
	eligible := make([]domain.Target, 0, len(chosen.order))
	for _, t := range chosen.order {
		if chosen.counts[t.Sequence] < top {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		eligible = chosen.order
	}
	return eligible[c.rng.IntN(len(eligible))]
}

// uniqueByOffset keeps one entry per sequence (its lowest offset) and sorts by
// offset, then sequence.
func uniqueByOffset(candidates []domain.Target) []domain.Target {
	best := map[string]domain.Target{}
	for _, t := range candidates {
		if prev, ok := best[t.Sequence]; !ok || t.Offset < prev.Offset {
			best[t.Sequence] = t
		}
	}
	out := make([]domain.Target, 0, len(best))
	for _, t := range best {
		out = append(out, t)
	}
	sortByOffset(out)
	return out
}

func sortByOffset(ts []domain.Target) {
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].Offset != ts[j].Offset {
			return ts[i].Offset < ts[j].Offset
		}
		return ts[i].Sequence < ts[j].Sequence
	})
}
