package linearscorer

import (
	"context"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

type Scorer struct {
	model    Model
	identity float64
}

var _ ports.Scorer = (*Scorer)(nil)

// New scores identity pairs as identity without consulting the model.
func New(m Model, identity float64) *Scorer {
	return &Scorer{model: m, identity: identity}
}

func (s *Scorer) Name() string {
	if s.model.Name != "" {
		return "linear:" + s.model.Name
	}
	return "linear"
}

func (s *Scorer) Score(ctx context.Context, pairs []domain.Pair) ([]domain.Prediction, error) {
	out := make([]domain.Prediction, len(pairs))
	for i, p := range pairs {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if p.IsIdentity() {
			out[i] = domain.Scored(s.identity)
			continue
		}
		v, err := s.model.Predict(p)
		if err != nil {
			return nil, &domain.OpError{
				Op:    "linearscorer.score",
				Kind:  domain.KindInvalidInput,
				Locus: p.LocusTag,
				Err:   err,
			}
		}
		out[i] = domain.Scored(v)
	}
	return out, nil
}
