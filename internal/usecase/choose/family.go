package choose

import "github.com/traeki/mismatch-crispri/internal/domain"

// ChooseForEach runs ChooseByBin with quota n once per parent instance.
// Parents are processed in offset order (then sequence), and variants claimed
// by an earlier parent are excluded from every later family.
func (c *Chooser) ChooseForEach(parents []domain.Target, pairs []domain.ScoredPair, n int) (*domain.ChosenSet, error) {
	families := map[string][]domain.ScoredPair{}
	for _, p := range pairs {
		families[p.Original] = append(families[p.Original], p)
	}

	ordered := make([]domain.Target, len(parents))
	copy(ordered, parents)
	sortByOffset(ordered)

	chosen := domain.NewChosenSet()
	for _, parent := range ordered {
		family := families[parent.Sequence]
		remaining := make([]domain.ScoredPair, 0, len(family))
		for _, p := range family {
			if !chosen.Has(p.Variant) {
				remaining = append(remaining, p)
			}
		}
		if len(remaining) == 0 {
			c.warn(domain.EventFamilyEmpty, parent.LocusTag, "family has no unclaimed variants left",
				map[string]any{"parent": parent.Sequence, "requested": n})
			continue
		}

		picks, err := c.ChooseByBin(remaining, n)
		if err != nil {
			return nil, err
		}
		chosen.Merge(picks)
	}
	return chosen, nil
}
