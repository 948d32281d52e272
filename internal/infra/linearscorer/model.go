// Package linearscorer predicts mismatch efficacy with a linear model over
// mismatch position, base transition and parent GC content.
package linearscorer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

// Model holds exported, scaler-folded coefficients.
type Model struct {
	Name       string             `yaml:"name"`
	Intercept  float64            `yaml:"intercept"`
	GCWeight   float64            `yaml:"gc_weight"`
	Position   []float64          `yaml:"position"`
	Transition map[string]float64 `yaml:"transition"`
}

func LoadModel(path string) (Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Model{}, &domain.OpError{
			Op:   "linearscorer.load_model",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var m Model
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Model{}, &domain.OpError{
			Op:   "linearscorer.load_model",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	if err := m.Validate(); err != nil {
		return Model{}, &domain.OpError{
			Op:   "linearscorer.load_model",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return m, nil
}

// Validate requires one weight per position and per ordered base pair.
// Missing identical-base transitions (AA, CC, ...) default to zero.
func (m Model) Validate() error {
	if len(m.Position) != domain.TargetLength {
		return fmt.Errorf("%w: position has %d weights, want %d", domain.ErrInvalidConfig, len(m.Position), domain.TargetLength)
	}
	for i := 0; i < len(domain.Bases); i++ {
		for j := 0; j < len(domain.Bases); j++ {
			if i == j {
				continue
			}
			k := string([]byte{domain.Bases[i], domain.Bases[j]})
			if _, ok := m.Transition[k]; !ok {
				return fmt.Errorf("%w: transition %s is missing", domain.ErrInvalidConfig, k)
			}
		}
	}
	return nil
}

// Predict scores one single-mismatch pair.
func (m Model) Predict(p domain.Pair) (float64, error) {
	pos, err := mismatchIndex(p.Variant, p.Original)
	if err != nil {
		return 0, err
	}
	trans := string([]byte{p.Original[pos], p.Variant[pos]})
	gc := float64(domain.GCCount(p.Original))
	return m.Intercept + m.GCWeight*gc + m.Position[pos] + m.Transition[trans], nil
}

func mismatchIndex(variant, original string) (int, error) {
	if len(variant) != len(original) || len(original) != domain.TargetLength {
		return 0, fmt.Errorf("%w: pair %s <- %s is not a pair of %d-mers", domain.ErrInvalidInput, variant, original, domain.TargetLength)
	}
	idx := -1
	for i := 0; i < len(original); i++ {
		if variant[i] == original[i] {
			continue
		}
		if idx >= 0 {
			return 0, fmt.Errorf("%w: too many mismatches in pair %s <- %s", domain.ErrInvalidInput, variant, original)
		}
		idx = i
	}
	if idx < 0 {
		return 0, fmt.Errorf("%w: no mismatch in pair %s <- %s", domain.ErrInvalidInput, variant, original)
	}
	if !domain.IsBase(variant[idx]) || !domain.IsBase(original[idx]) {
		return 0, fmt.Errorf("%w: pair %s <- %s has a non-ACGT mismatch", domain.ErrInvalidInput, variant, original)
	}
	return idx, nil
}
