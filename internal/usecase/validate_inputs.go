package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/ports"
	"github.com/traeki/mismatch-crispri/internal/usecase/filter"
)

// LocusSummary counts what one locus contributes before scoring.
type LocusSummary struct {
	Locus   string `json:"locus"`
	Parents int    `json:"parents"`
	Pairs   int    `json:"pairs"`
}

// InputSummary is the result of a dry validation pass.
type InputSummary struct {
	Rows     int            `json:"rows"`
	Loci     int            `json:"loci"`
	Eligible int            `json:"eligible"`
	Pairs    int            `json:"pairs"`
	PerLocus []LocusSummary `json:"per_locus"`
	Missing  []string       `json:"missing,omitempty"`
	Events   []domain.Event `json:"events"`
}

type ValidateInputs struct {
	targets ports.TargetSource
	loci    ports.LociSource
	diag    ports.Diagnostics
	cfg     domain.SelectionConfig
}

type ValidateOption func(*ValidateInputs)

func WithValidateDiagnostics(d ports.Diagnostics) ValidateOption {
	return func(uc *ValidateInputs) {
		if d != nil {
			uc.diag = d
		}
	}
}

func WithValidateConfig(cfg domain.SelectionConfig) ValidateOption {
	return func(uc *ValidateInputs) { uc.cfg = cfg }
}

func NewValidateInputs(ts ports.TargetSource, ls ports.LociSource, opts ...ValidateOption) *ValidateInputs {
	uc := &ValidateInputs{
		targets: ts,
		loci:    ls,
		diag:    ports.NopDiagnostics{},
		cfg:     domain.DefaultConfig().Selection,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute loads, filters and mutates the inputs without scoring them.
// Loci with no row in the target table are listed in Missing and warned about.
func (uc *ValidateInputs) Execute(ctx context.Context, in Inputs) (InputSummary, error) {
	if err := uc.cfg.Validate(); err != nil {
		return InputSummary{}, err
	}

	log := newEventLog(uc.diag, time.Now)
	prep, err := prepare(ctx, uc.targets, uc.loci, in, uc.cfg.Antisense, log)
	if err != nil {
		return InputSummary{}, err
	}

	present := filter.ByLocus(prep.rows)
	parents := filter.ByLocus(prep.eligible)
	pairs := map[string]int{}
	for _, p := range prep.pairs {
		pairs[p.LocusTag]++
	}

	sum := InputSummary{
		Rows:     len(prep.rows),
		Loci:     len(prep.loci),
		Eligible: len(prep.eligible),
		Pairs:    len(prep.pairs),
		PerLocus: make([]LocusSummary, 0, len(prep.loci)),
	}
	for _, locus := range prep.loci {
		if _, ok := present[locus]; !ok {
			sum.Missing = append(sum.Missing, locus)
			log.warn(domain.EventLocusNotInTarget, locus,
				fmt.Sprintf("locus %s has no rows in the target table", locus), nil)
		}
		sum.PerLocus = append(sum.PerLocus, LocusSummary{
			Locus:   locus,
			Parents: len(parents[locus]),
			Pairs:   pairs[locus],
		})
	}
	sum.Events = log.snapshot()
	return sum, nil
}
