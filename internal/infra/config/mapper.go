package config

import (
	"fmt"
	"strings"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

// Scorer kinds accepted in scorer.kind.
var scorerKinds = map[string]bool{"linear": true, "table": true, "http": true}

// MapWorkspace applies the parsed file on top of base.
func MapWorkspace(path string, y YAMLWorkspace, base domain.Config) (domain.Config, error) {
	cfg := base

	s := y.Selection
	if s.Bins != nil {
		cfg.Selection.Bins = *s.Bins
	}
	if s.BinMin != nil {
		cfg.Selection.BinMin = *s.BinMin
	}
	if s.BinMax != nil {
		cfg.Selection.BinMax = *s.BinMax
	}
	if s.ExclusionRadius != nil {
		cfg.Selection.ExclusionRadius = *s.ExclusionRadius
	}
	if s.RepeatWarn != nil {
		cfg.Selection.RepeatWarn = *s.RepeatWarn
	}
	if strings.TrimSpace(s.Antisense) != "" {
		cfg.Selection.Antisense = strings.TrimSpace(s.Antisense)
	}

	d := y.Defaults
	if d.N != nil {
		if *d.N <= 0 {
			return base, invalidField(path, "defaults.n", "must be positive")
		}
		cfg.Defaults.N = *d.N
	}
	if d.Families != nil {
		if *d.Families <= 0 {
			return base, invalidField(path, "defaults.families", "must be positive")
		}
		cfg.Defaults.Families = *d.Families
	}
	if d.DivideEvenly != nil {
		cfg.Defaults.DivideEvenly = *d.DivideEvenly
	}
	if d.Seed != nil {
		cfg.Defaults.Seed = *d.Seed
	}

	sc := y.Scorer
	if k := strings.ToLower(strings.TrimSpace(sc.Kind)); k != "" {
		if !scorerKinds[k] {
			return base, invalidField(path, "scorer.kind", fmt.Sprintf("unsupported scorer %q (want linear, table or http)", sc.Kind))
		}
		cfg.Scorer.Kind = k
	}
	if sc.Model != "" {
		cfg.Scorer.ModelPath = sc.Model
	}
	if sc.Scores != "" {
		cfg.Scorer.ScoresPath = sc.Scores
	}
	if sc.URL != "" {
		cfg.Scorer.URL = sc.URL
	}
	if sc.ScorePath != "" {
		cfg.Scorer.ScorePath = sc.ScorePath
	}
	if sc.BatchSize != nil {
		if *sc.BatchSize <= 0 {
			return base, invalidField(path, "scorer.batch_size", "must be positive")
		}
		cfg.Scorer.BatchSize = *sc.BatchSize
	}
	if sc.IdentityScore != nil {
		cfg.Scorer.IdentityScore = *sc.IdentityScore
	}

	if y.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = y.Paths.RunsDir
	}

	if err := cfg.Selection.Validate(); err != nil {
		if oe, ok := err.(*domain.OpError); ok {
			oe.Path = path
		}
		return base, err
	}
	return cfg, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
