package choose

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/usecase/mutate"
)

const (
	parentA = "AAAAAAAAAAAAAAAAAAAA"
	parentB = "CCAAAAAAAAAAAAAAAAAA"
	parentC = "ACGTACGTACGTACGTACGT"
)

// recorder collects emitted events for assertions.
type recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recorder) Emit(ev domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) codes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Code)
	}
	return out
}

func newTestChooser(seed uint64) (*Chooser, *recorder) {
	rec := &recorder{}
	return New(NewRand(seed), rec, DefaultOptions()), rec
}

// family builds the 60 scored variants of parent, assigning score(i) to the i-th.
func family(t *testing.T, parent, locus string, score func(i int) domain.Prediction) []domain.ScoredPair {
	t.Helper()
	pairs, err := mutate.BuildPairs([]domain.Target{{LocusTag: locus, Sequence: parent, PAM: "AGG"}})
	require.NoError(t, err)

	out := make([]domain.ScoredPair, len(pairs))
	for i, p := range pairs {
		out[i] = domain.ScoredPair{Pair: p, Prediction: score(i)}
	}
	return out
}

// spread scores the family evenly over [0, 1].
func spread(i int) domain.Prediction {
	return domain.Scored(float64(i) / float64(mutate.PerParent-1))
}

func constant(v float64) func(int) domain.Prediction {
	return func(int) domain.Prediction { return domain.Scored(v) }
}

func variants(set *domain.ChosenSet) []string {
	items := set.Items()
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Variant
	}
	return out
}
