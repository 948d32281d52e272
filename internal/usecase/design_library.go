package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/ports"
	"github.com/traeki/mismatch-crispri/internal/usecase/choose"
	"github.com/traeki/mismatch-crispri/internal/usecase/filter"
)

type DesignLibrary struct {
	targets ports.TargetSource
	loci    ports.LociSource
	scorer  ports.Scorer
	store   ports.RunStore
	diag    ports.Diagnostics
	cfg     domain.SelectionConfig
	now     func() time.Time
}

// DesignInput is one design invocation: where to read from and what to pick.
type DesignInput struct {
	Inputs
	Request domain.SelectionRequest
}

type DesignOption func(*DesignLibrary)

// WithRunStore persists every run; a nil store disables saving.
func WithRunStore(s ports.RunStore) DesignOption {
	return func(uc *DesignLibrary) { uc.store = s }
}

func WithDiagnostics(d ports.Diagnostics) DesignOption {
	return func(uc *DesignLibrary) {
		if d != nil {
			uc.diag = d
		}
	}
}

func WithSelectionConfig(cfg domain.SelectionConfig) DesignOption {
	return func(uc *DesignLibrary) { uc.cfg = cfg }
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) DesignOption {
	return func(uc *DesignLibrary) { uc.now = now }
}

func NewDesignLibrary(ts ports.TargetSource, ls ports.LociSource, sc ports.Scorer, opts ...DesignOption) *DesignLibrary {
	uc := &DesignLibrary{
		targets: ts,
		loci:    ls,
		scorer:  sc,
		diag:    ports.NopDiagnostics{},
		cfg:     domain.DefaultConfig().Selection,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs the full pipeline: filter targets, enumerate variants, score
// them, then pick parents and allocate variants locus by locus.
// The returned run is populated as far as the pipeline got, even on error.
func (uc *DesignLibrary) Execute(ctx context.Context, di DesignInput) (domain.DesignRun, string, error) {
	in, req := di.Inputs, di.Request
	run := domain.DesignRun{
		TargetsPath: in.TargetsPath,
		LociPath:    in.LociPath,
		Scorer:      uc.scorer.Name(),
		Request:     req,
		StartedAt:   uc.now(),
		Loci:        []domain.LocusReport{},
		Chosen:      []domain.ChosenRow{},
	}
	log := newEventLog(uc.diag, uc.now)
	finish := func() {
		run.EndedAt = uc.now()
		run.Events = log.snapshot()
	}

	if err := req.Validate(); err != nil {
		finish()
		return run, "", err
	}
	if err := uc.cfg.Validate(); err != nil {
		finish()
		return run, "", err
	}

	if len(in.Loci) == 0 {
		in.Loci = req.Loci
	}
	prep, err := prepare(ctx, uc.targets, uc.loci, in, uc.cfg.Antisense, log)
	if err != nil {
		finish()
		return run, "", err
	}
	run.Request.Loci = prep.loci

	scored, err := uc.score(ctx, prep.pairs, log)
	if err != nil {
		finish()
		return run, "", err
	}

	perParent := req.N
	if req.DivideEvenly {
		perParent = req.N / req.Families
		if req.N%req.Families != 0 {
			log.warn(domain.EventRequestUneven, "",
				fmt.Sprintf("n=%d is not evenly divisible by families=%d; reducing to %d per locus", req.N, req.Families, perParent*req.Families),
				map[string]any{"n": req.N, "families": req.Families, "per_parent": perParent})
		}
	}

	pairsByLocus := map[string][]domain.ScoredPair{}
	for _, p := range scored {
		pairsByLocus[p.LocusTag] = append(pairsByLocus[p.LocusTag], p)
	}
	targetsByLocus := filter.ByLocus(prep.rows)

	chooser := choose.New(choose.NewRand(req.Seed), log, choose.OptionsFrom(uc.cfg))
	all := domain.NewChosenSet()

	for _, locus := range prep.loci {
		if err := ctx.Err(); err != nil {
			finish()
			return run, "", err
		}

		report, picks, err := uc.designLocus(chooser, log, locus, pairsByLocus[locus], targetsByLocus[locus], req, perParent)
		if err != nil {
			finish()
			return run, "", err
		}
		run.Loci = append(run.Loci, report)
		all.Merge(picks)
	}

	for _, it := range all.Items() {
		run.Chosen = append(run.Chosen, domain.RowFromPair(it))
	}
	finish()

	if uc.store == nil {
		return run, "", nil
	}
	id, err := uc.store.SaveRun(run)
	if err != nil {
		return run, "", err
	}
	run.ID = id
	return run, id, nil
}

func (uc *DesignLibrary) score(ctx context.Context, pairs []domain.Pair, log *eventLog) ([]domain.ScoredPair, error) {
	log.info(domain.EventScoringStarted, "",
		fmt.Sprintf("applying %s scorer to %d pairs", uc.scorer.Name(), len(pairs)),
		map[string]any{"pairs": len(pairs), "scorer": uc.scorer.Name()})

	preds, err := uc.scorer.Score(ctx, pairs)
	if err != nil {
		return nil, err
	}
	if len(preds) != len(pairs) {
		return nil, &domain.OpError{
			Op:   "usecase.score",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("%w: scorer %s returned %d predictions for %d pairs", domain.ErrExecution, uc.scorer.Name(), len(preds), len(pairs)),
		}
	}

	out := make([]domain.ScoredPair, len(pairs))
	unscored := 0
	for i, p := range pairs {
		out[i] = domain.ScoredPair{Pair: p, Prediction: preds[i]}
		if !preds[i].Valid {
			unscored++
		}
	}
	if unscored > 0 {
		log.warn(domain.EventScoringUnscored, "",
			fmt.Sprintf("%d of %d pairs have no prediction", unscored, len(pairs)),
			map[string]any{"unscored": unscored, "pairs": len(pairs)})
	}
	return out, nil
}

func (uc *DesignLibrary) designLocus(
	chooser *choose.Chooser,
	log *eventLog,
	locus string,
	pairs []domain.ScoredPair,
	locusTargets []domain.Target,
	req domain.SelectionRequest,
	perParent int,
) (domain.LocusReport, *domain.ChosenSet, error) {
	report := domain.LocusReport{
		Locus:     locus,
		Parents:   []domain.ParentCount{},
		Requested: req.N,
	}
	if req.DivideEvenly {
		report.Requested = perParent * req.Families
	}

	if len(pairs) == 0 {
		log.warn(domain.EventLocusEmpty, locus, fmt.Sprintf("no options found for locus %s", locus), nil)
		report.Skipped = "no eligible targets"
		report.Shortfall = report.Requested > 0
		return report, nil, nil
	}

	cands := parentCandidates(log, locus, pairs, locusTargets)
	report.Candidates = len(cands)

	parents, err := chooser.PickParents(locus, cands, req.Families)
	if err != nil {
		if domain.IsKind(err, domain.KindInsufficientPopulation) {
			log.warn(domain.EventLocusSkipped, locus, err.Error(), nil)
			report.Skipped = "no parents with a known offset"
			report.Shortfall = true
			return report, nil, nil
		}
		return report, nil, err
	}
	report.Parents = countParents(parents)

	var picks *domain.ChosenSet
	if req.DivideEvenly {
		picks, err = chooser.ChooseForEach(parents, pairs, perParent)
	} else {
		picked := make(map[string]struct{}, len(parents))
		for _, p := range parents {
			picked[p.Sequence] = struct{}{}
		}
		pool := make([]domain.ScoredPair, 0, len(pairs))
		for _, p := range pairs {
			if _, ok := picked[p.Original]; ok {
				pool = append(pool, p)
			}
		}
		picks, err = chooser.ChooseByBin(pool, req.N)
	}
	if err != nil {
		return report, nil, err
	}

	report.Chosen = picks.Len()
	report.Shortfall = report.Chosen < report.Requested
	log.info(domain.EventLocusDone, locus,
		fmt.Sprintf("chose %d/%d variants from %d parents", report.Chosen, report.Requested, len(report.Parents)),
		map[string]any{"chosen": report.Chosen, "requested": report.Requested, "parents": len(report.Parents)})
	return report, picks, nil
}

// parentCandidates joins the distinct originals of a locus's pairs to their
// lowest offset in the locus's target table.
func parentCandidates(log *eventLog, locus string, pairs []domain.ScoredPair, locusTargets []domain.Target) []domain.Target {
	offsets := map[string]int{}
	for _, t := range locusTargets {
		if prev, ok := offsets[t.Sequence]; !ok || t.Offset < prev {
			offsets[t.Sequence] = t.Offset
		}
	}

	seen := map[string]struct{}{}
	out := make([]domain.Target, 0)
	for _, p := range pairs {
		if _, ok := seen[p.Original]; ok {
			continue
		}
		seen[p.Original] = struct{}{}

		off, ok := offsets[p.Original]
		if !ok {
			log.warn(domain.EventParentNoOffset, locus,
				fmt.Sprintf("parent %s has no offset in the target table", p.Original),
				map[string]any{"parent": p.Original})
			continue
		}
		out = append(out, domain.Target{
			LocusTag: locus,
			Offset:   off,
			Sequence: p.Original,
			PAM:      p.PAM,
			TransDir: domain.Antisense,
		})
	}
	return out
}

func countParents(parents []domain.Target) []domain.ParentCount {
	idx := map[string]int{}
	out := []domain.ParentCount{}
	for _, p := range parents {
		if i, ok := idx[p.Sequence]; ok {
			out[i].Count++
			continue
		}
		idx[p.Sequence] = len(out)
		out = append(out, domain.ParentCount{Sequence: p.Sequence, Offset: p.Offset, Count: 1})
	}
	return out
}
