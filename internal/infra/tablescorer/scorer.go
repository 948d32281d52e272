// Package tablescorer serves predictions from a precomputed TSV.
package tablescorer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/infra/tsvtable"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

type key struct{ variant, original string }

type Scorer struct {
	path     string
	scores   map[key]float64
	identity float64
}

var _ ports.Scorer = (*Scorer)(nil)

// Load reads variant, original and y_pred (alias score). Rows with an empty
// or NA prediction are left out and score as unscored.
func Load(path string, identity float64) (*Scorer, error) {
	tab, err := tsvtable.Read(path)
	if err != nil {
		return nil, err
	}
	cols, err := tab.Require([]string{"variant"}, []string{"original"}, []string{"y_pred", "score"})
	if err != nil {
		return nil, err
	}

	s := &Scorer{path: path, scores: make(map[key]float64, len(tab.Rows)), identity: identity}
	for i, row := range tab.Rows {
		raw := tsvtable.Cell(row, cols[2])
		if raw == "" || raw == "NA" || raw == "nan" || raw == "NaN" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "tablescorer.load",
				Kind: domain.KindInvalidInput,
				Path: path,
				Err:  fmt.Errorf("%w: line %d: y_pred %q is not a number", domain.ErrInvalidInput, tab.Lines[i], raw),
			}
		}
		s.scores[key{tsvtable.Cell(row, cols[0]), tsvtable.Cell(row, cols[1])}] = v
	}
	return s, nil
}

func (s *Scorer) Name() string { return "table" }

func (s *Scorer) Score(ctx context.Context, pairs []domain.Pair) ([]domain.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Prediction, len(pairs))
	for i, p := range pairs {
		if p.IsIdentity() {
			out[i] = domain.Scored(s.identity)
			continue
		}
		if v, ok := s.scores[key{p.Variant, p.Original}]; ok {
			out[i] = domain.Scored(v)
		}
	}
	return out, nil
}

// Len reports how many predictions were loaded.
func (s *Scorer) Len() int { return len(s.scores) }
