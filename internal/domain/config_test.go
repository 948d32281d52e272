package domain

import (
	"errors"
	"testing"
)

func TestDefaultConfigMatchesEngineDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Selection.Bins != 5 {
		t.Fatalf("expected 5 bins, got %d", cfg.Selection.Bins)
	}
	if cfg.Selection.BinMin != 0.1 || cfg.Selection.BinMax != 0.9 {
		t.Fatalf("unexpected bin range [%g, %g]", cfg.Selection.BinMin, cfg.Selection.BinMax)
	}
	if cfg.Selection.ExclusionRadius != 20 {
		t.Fatalf("expected radius 20, got %d", cfg.Selection.ExclusionRadius)
	}
	if cfg.Selection.RepeatWarn != 4 {
		t.Fatalf("expected repeat warning above 4, got %d", cfg.Selection.RepeatWarn)
	}
	if err := cfg.Selection.Validate(); err != nil {
		t.Fatalf("default selection config should validate: %v", err)
	}
}

func TestSelectionConfigValidate(t *testing.T) {
	cfg := DefaultConfig().Selection
	cfg.Bins = 1
	cfg.BinMin = 0.9
	cfg.BinMax = 0.1

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected invalid config kind, got %v", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig in chain, got %v", err)
	}
}

func TestSelectionRequestValidate(t *testing.T) {
	if err := (SelectionRequest{N: 10, Families: 2}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := SelectionRequest{N: 0, Families: 0}.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKind(err, KindUsage) {
		t.Fatalf("expected usage kind, got %v", err)
	}
}
