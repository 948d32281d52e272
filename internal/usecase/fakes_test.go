package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

const (
	seqL1a = "ACGTACGTACGTACGTACGT"
	seqL1b = "TTTTGGGGCCCCAAAAACGT"
	seqL1c = "GATTACAGATTACAGATTAC"
	seqL2a = "CCCCCCCCCCAAAAAAAAAA"
)

func sampleTargets() []domain.Target {
	return []domain.Target{
		{LocusTag: "L1", Offset: 0, Sequence: seqL1a, PAM: "AGG", TransDir: "anti"},
		{LocusTag: "L1", Offset: 10, Sequence: seqL1b, PAM: "TGG", TransDir: "anti"},
		{LocusTag: "L1", Offset: 50, Sequence: seqL1c, PAM: "CGG", TransDir: "anti"},
		{LocusTag: "L1", Offset: 70, Sequence: "GGGGGGGGGGGGGGGGGGGG", PAM: "AGG", TransDir: "sense"},
		{LocusTag: "L2", Offset: 5, Sequence: seqL2a, PAM: "GGG", TransDir: "anti"},
	}
}

type fakeTargets struct {
	rows []domain.Target
	err  error
}

func (f fakeTargets) LoadTargets(_ string) ([]domain.Target, error) {
	return f.rows, f.err
}

type fakeLoci struct {
	loci []string
	err  error
}

func (f fakeLoci) LoadLoci(_ string) ([]string, error) {
	return f.loci, f.err
}

// positionScorer spreads scores over [0.05, 0.95] by mismatch position.
type positionScorer struct {
	calls int
}

func (s *positionScorer) Name() string { return "position" }

func (s *positionScorer) Score(_ context.Context, pairs []domain.Pair) ([]domain.Prediction, error) {
	s.calls++
	out := make([]domain.Prediction, len(pairs))
	for i, p := range pairs {
		out[i] = domain.Scored(0.05 + 0.045*float64(p.Position))
	}
	return out, nil
}

// shortScorer drops the last prediction.
type shortScorer struct{}

func (shortScorer) Name() string { return "short" }

func (shortScorer) Score(_ context.Context, pairs []domain.Pair) ([]domain.Prediction, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	return make([]domain.Prediction, len(pairs)-1), nil
}

// ctxCancelScorer cancels the run context while scoring.
type ctxCancelScorer struct {
	cancel context.CancelFunc
	positionScorer
}

func (s *ctxCancelScorer) Score(ctx context.Context, pairs []domain.Pair) ([]domain.Prediction, error) {
	s.cancel()
	return s.positionScorer.Score(ctx, pairs)
}

type fakeStore struct {
	saved bool
	last  domain.DesignRun
}

func (s *fakeStore) SaveRun(run domain.DesignRun) (string, error) {
	s.saved = true
	s.last = run
	return "run-123", nil
}

type errStore struct{ err error }

func (s *errStore) SaveRun(_ domain.DesignRun) (string, error) { return "", s.err }

var errBoom = errors.New("boom")

type recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recorder) Emit(ev domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) has(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.Code == code {
			return true
		}
	}
	return false
}
