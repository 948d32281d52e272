package ports

import (
	"context"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

// Scorer predicts the efficacy of each (variant, original) pair.
// It returns exactly one prediction per input pair, in input order; pairs it
// cannot score come back with Valid=false.
type Scorer interface {
	Name() string
	Score(ctx context.Context, pairs []domain.Pair) ([]domain.Prediction, error)
}
