package choose

import (
	"fmt"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

// ChooseByBin selects exactly n distinct variants from one locus's candidates,
// stratified by prediction bin. When fewer than n candidates carry a valid
// prediction, all of them are returned and a shortfall is reported.
//
// Candidates from more than one locus are a usage error.
func (c *Chooser) ChooseByBin(cands []domain.ScoredPair, n int) (*domain.ChosenSet, error) {
	chosen := domain.NewChosenSet()
	if len(cands) == 0 {
		c.warn(domain.EventFamilyEmpty, "", "no candidates to choose from", map[string]any{"requested": n})
		return chosen, nil
	}

	locus := cands[0].LocusTag
	if loci := sortedLoci(cands); len(loci) != 1 {
		return nil, &domain.OpError{
			Op:    "choose.by_bin",
			Kind:  domain.KindUsage,
			Locus: locus,
			Err:   fmt.Errorf("%w: %v", domain.ErrMixedLoci, loci),
		}
	}
	if n <= 0 {
		return chosen, nil
	}

	raw, usable := usableCandidates(cands)
	if len(usable) < n {
		c.warn(domain.EventBinShortfall, locus,
			fmt.Sprintf("only found %d/%d binnable variants for locus %s", len(usable), n, locus),
			map[string]any{"found": len(usable), "requested": n})
		if raw < n {
			c.warn(domain.EventLocusShort, locus,
				fmt.Sprintf("fewer than %d variants exist for locus %s", n, locus),
				map[string]any{"exist": raw, "requested": n})
		}
		for _, u := range usable {
			chosen.Add(u)
		}
		return chosen, nil
	}

	last := c.opts.Bins - 1
	byBin := make([][]domain.ScoredPair, c.opts.Bins)
	for _, u := range usable {
		b := BinOf(u.Prediction.Value, c.edges)
		byBin[b] = append(byBin[b], u)
	}

	quotas := BinQuotas(n, c.opts.Bins)
	for b, items := range byBin {
		k := min(quotas[b], n-chosen.Len())
		if len(items) <= k {
			for _, it := range items {
				chosen.Add(it)
			}
			continue
		}
		for _, it := range c.sample(items, k) {
			chosen.Add(it)
		}
	}

	// Fill what is still missing, preferring anything outside the last bin.
	if z := n - chosen.Len(); z > 0 {
		var preferred, dregs []domain.ScoredPair
		for b, items := range byBin {
			for _, it := range items {
				if chosen.Has(it.Variant) {
					continue
				}
				if b == last {
					dregs = append(dregs, it)
				} else {
					preferred = append(preferred, it)
				}
			}
		}
		sortByVariant(preferred)
		sortByVariant(dregs)

		if len(preferred) >= z {
			for _, it := range c.sample(preferred, z) {
				chosen.Add(it)
			}
		} else {
			for _, it := range preferred {
				chosen.Add(it)
			}
			for _, it := range c.sample(dregs, z-len(preferred)) {
				chosen.Add(it)
			}
		}
	}

	if chosen.Len() != n {
		return nil, invariantError("choose.by_bin", locus, chosen.Len(), n)
	}
	return chosen, nil
}

// usableCandidates returns the number of distinct variants before dropping
// unscored rows, and the scored rows deduplicated by variant, sorted by variant.
func usableCandidates(cands []domain.ScoredPair) (int, []domain.ScoredPair) {
	distinct := map[string]struct{}{}
	seen := map[string]struct{}{}
	usable := make([]domain.ScoredPair, 0, len(cands))
	for _, p := range cands {
		distinct[p.Variant] = struct{}{}
		if !p.Prediction.Valid {
			continue
		}
		if _, ok := seen[p.Variant]; ok {
			continue
		}
		seen[p.Variant] = struct{}{}
		usable = append(usable, p)
	}
	sortByVariant(usable)
	return len(distinct), usable
}
