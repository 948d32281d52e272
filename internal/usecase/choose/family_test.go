package choose

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

// parentA and parentB differ at two positions, so their families share two variants.
func sharedFamilies(t *testing.T) ([]domain.Target, []domain.ScoredPair) {
	t.Helper()
	a := domain.Target{LocusTag: "L1", Sequence: parentA, Offset: 100}
	b := domain.Target{LocusTag: "L1", Sequence: parentB, Offset: 0}
	pairs := append(family(t, parentA, "L1", spread), family(t, parentB, "L1", spread)...)
	return []domain.Target{a, b}, pairs
}

func TestChooseForEach_NoVariantTwice(t *testing.T) {
	parents, pairs := sharedFamilies(t)
	c, rec := newTestChooser(1)

	got, err := c.ChooseForEach(parents, pairs, 60)
	require.NoError(t, err)
	require.Equal(t, 118, got.Len())

	seen := map[string]bool{}
	for _, v := range variants(got) {
		require.False(t, seen[v], "variant %s chosen twice", v)
		seen[v] = true
	}
	// the later family lost its two shared variants
	require.Contains(t, rec.codes(), domain.EventBinShortfall)
}

// TestChooseForEach_OffsetOrderClaimsShared: parentB sits at offset 0, so it
// is processed first and claims the shared variants.
func TestChooseForEach_OffsetOrderClaimsShared(t *testing.T) {
	parents, pairs := sharedFamilies(t)
	c, _ := newTestChooser(1)

	got, err := c.ChooseForEach(parents, pairs, 60)
	require.NoError(t, err)

	shared := map[string]bool{
		"CAAAAAAAAAAAAAAAAAAA": true,
		"ACAAAAAAAAAAAAAAAAAA": true,
	}
	for _, it := range got.Items() {
		if shared[it.Variant] {
			require.Equal(t, parentB, it.Original)
		}
	}
}

func TestChooseForEach_RepeatedParentDrawsMore(t *testing.T) {
	p := domain.Target{LocusTag: "L1", Sequence: parentC, Offset: 5}
	c, _ := newTestChooser(2)

	got, err := c.ChooseForEach([]domain.Target{p, p}, family(t, parentC, "L1", spread), 10)
	require.NoError(t, err)
	require.Equal(t, 20, got.Len())
}

func TestChooseForEach_ExhaustedFamilyWarns(t *testing.T) {
	p := domain.Target{LocusTag: "L1", Sequence: parentC, Offset: 5}
	c, rec := newTestChooser(2)

	got, err := c.ChooseForEach([]domain.Target{p, p}, family(t, parentC, "L1", spread), 60)
	require.NoError(t, err)
	require.Equal(t, 60, got.Len())
	require.Contains(t, rec.codes(), domain.EventFamilyEmpty)
}

func TestChooseForEach_Deterministic(t *testing.T) {
	parents, pairs := sharedFamilies(t)

	c1, _ := newTestChooser(99)
	c2, _ := newTestChooser(99)
	a, err := c1.ChooseForEach(parents, pairs, 12)
	require.NoError(t, err)
	b, err := c2.ChooseForEach(parents, pairs, 12)
	require.NoError(t, err)
	require.Equal(t, variants(a), variants(b))
	require.Equal(t, 24, a.Len())
}

func TestChooseForEach_InputOrderDoesNotMatter(t *testing.T) {
	parents, pairs := sharedFamilies(t)
	reversed := []domain.Target{parents[1], parents[0]}

	c1, _ := newTestChooser(4)
	c2, _ := newTestChooser(4)
	a, err := c1.ChooseForEach(parents, pairs, 12)
	require.NoError(t, err)
	b, err := c2.ChooseForEach(reversed, pairs, 12)
	require.NoError(t, err)
	require.Equal(t, variants(a), variants(b))
}
