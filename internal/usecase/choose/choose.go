// Package choose implements the selection engine: spatially diverse parent
// picking per locus and bin-stratified quota sampling of each parent's variants.
//
// The engine is a pure function of its inputs plus an injected random source.
// It never logs; diagnostics are emitted as domain events to a ports.Diagnostics sink.
package choose

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

// Rand is the random source used for every draw. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a seeded PCG source, so identical seeds give identical designs.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Options tunes the engine. See domain.SelectionConfig for field meanings.
type Options struct {
	Bins            int
	BinMin          float64
	BinMax          float64
	ExclusionRadius int
	RepeatWarn      int
}

// DefaultOptions mirrors domain.DefaultConfig().Selection.
func DefaultOptions() Options {
	return OptionsFrom(domain.DefaultConfig().Selection)
}

func OptionsFrom(cfg domain.SelectionConfig) Options {
	return Options{
		Bins:            cfg.Bins,
		BinMin:          cfg.BinMin,
		BinMax:          cfg.BinMax,
		ExclusionRadius: cfg.ExclusionRadius,
		RepeatWarn:      cfg.RepeatWarn,
	}
}

// Chooser owns the random source and diagnostics sink for one design run.
// It is not safe for concurrent use.
type Chooser struct {
	opts  Options
	rng   Rand
	diag  ports.Diagnostics
	edges []float64
}

func New(rng Rand, diag ports.Diagnostics, opts Options) *Chooser {
	if diag == nil {
		diag = ports.NopDiagnostics{}
	}
	if opts.Bins < 2 {
		opts.Bins = DefaultOptions().Bins
	}
	return &Chooser{
		opts:  opts,
		rng:   rng,
		diag:  diag,
		edges: BinEdges(opts.BinMin, opts.BinMax, opts.Bins),
	}
}

func (c *Chooser) warn(code, locus, msg string, fields map[string]any) {
	c.diag.Emit(domain.Event{
		Level:   domain.LevelWarn,
		Code:    code,
		Locus:   locus,
		Message: msg,
		Fields:  fields,
	})
}

// sample draws k members uniformly without replacement using a partial
// Fisher-Yates shuffle over a copy of pool.
func (c *Chooser) sample(pool []domain.ScoredPair, k int) []domain.ScoredPair {
	if k <= 0 {
		return nil
	}
	cp := make([]domain.ScoredPair, len(pool))
	copy(cp, pool)
	if k >= len(cp) {
		return cp
	}
	for i := 0; i < k; i++ {
		j := i + c.rng.IntN(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:k]
}

func sortByVariant(pool []domain.ScoredPair) {
	sort.Slice(pool, func(i, j int) bool { return pool[i].Variant < pool[j].Variant })
}

func sortedLoci(pairs []domain.ScoredPair) []string {
	set := map[string]struct{}{}
	for _, p := range pairs {
		set[p.LocusTag] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func invariantError(op, locus string, got, want int) error {
	return &domain.OpError{
		Op:    op,
		Kind:  domain.KindInvariant,
		Locus: locus,
		Err:   fmt.Errorf("%w: chose %d variants, want %d", domain.ErrInvariant, got, want),
	}
}
