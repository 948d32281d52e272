package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Config represents the workspace configuration loaded from mmdesign.yaml.
type Config struct {
	Selection SelectionConfig
	Defaults  DefaultsConfig
	Scorer    ScorerConfig
	Paths     PathsConfig
}

// SelectionConfig tunes the selection engine.
type SelectionConfig struct {
	// Bins is the number of prediction bins (NBINS).
	Bins   int
	BinMin float64
	BinMax float64

	// ExclusionRadius is the minimum offset distance between parents accepted
	// in the unused-pick tier.
	ExclusionRadius int

	// RepeatWarn triggers a warning when one parent is picked more than this many times.
	RepeatWarn int

	// Antisense is the orientation marker the target filter keeps.
	Antisense string
}

// DefaultsConfig holds request defaults used when flags are omitted.
type DefaultsConfig struct {
	N            int
	Families     int
	DivideEvenly bool
	Seed         uint64
}

type ScorerConfig struct {
	// Kind is one of linear|table|http.
	Kind string

	ModelPath  string
	ScoresPath string

	URL       string
	ScorePath string // JSONPath into the service response
	BatchSize int

	// IdentityScore is assigned to pairs whose variant equals the original.
	IdentityScore float64
}

type PathsConfig struct {
	RunsDir string
}

// DefaultConfig provides sane defaults if mmdesign.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Selection: SelectionConfig{
			Bins:            5,
			BinMin:          0.1,
			BinMax:          0.9,
			ExclusionRadius: 20,
			RepeatWarn:      4,
			Antisense:       Antisense,
		},
		Defaults: DefaultsConfig{
			N:        100,
			Families: 10,
			Seed:     1,
		},
		Scorer: ScorerConfig{
			Kind:          "linear",
			ModelPath:     "model/linear.yaml",
			ScorePath:     "$.scores",
			BatchSize:     500,
			IdentityScore: 1.0,
		},
		Paths: PathsConfig{
			RunsDir: "runs",
		},
	}
}

// Validate checks the selection parameters that the engine cannot recover from.
func (s SelectionConfig) Validate() error {
	var errs []error
	if s.Bins < 2 {
		errs = append(errs, fmt.Errorf("bins must be at least 2, got %d", s.Bins))
	}
	if !(s.BinMin < s.BinMax) {
		errs = append(errs, fmt.Errorf("bin_min (%g) must be below bin_max (%g)", s.BinMin, s.BinMax))
	}
	if s.ExclusionRadius < 0 {
		errs = append(errs, fmt.Errorf("exclusion_radius must not be negative, got %d", s.ExclusionRadius))
	}
	if strings.TrimSpace(s.Antisense) == "" {
		errs = append(errs, errors.New("antisense marker is required"))
	}
	if len(errs) == 0 {
		return nil
	}
	return &OpError{
		Op:   "config.validate",
		Kind: KindInvalidConfig,
		Err:  errors.Join(append([]error{ErrInvalidConfig}, errs...)...),
	}
}

// Validate checks the request parameters.
func (r SelectionRequest) Validate() error {
	var errs []error
	if r.N <= 0 {
		errs = append(errs, fmt.Errorf("n must be positive, got %d", r.N))
	}
	if r.Families <= 0 {
		errs = append(errs, fmt.Errorf("families must be positive, got %d", r.Families))
	}
	if len(errs) == 0 {
		return nil
	}
	return &OpError{
		Op:   "request.validate",
		Kind: KindUsage,
		Err:  errors.Join(errs...),
	}
}
