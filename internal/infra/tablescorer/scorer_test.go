package tablescorer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

const orig = "AAAAAAAAAAAAAAAAAAAA"

func writeTable(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "preds.tsv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestScore_LooksUpByPair(t *testing.T) {
	p := writeTable(t, "variant\toriginal\ty_pred\n"+
		"CAAAAAAAAAAAAAAAAAAA\t"+orig+"\t0.7\n"+
		"GAAAAAAAAAAAAAAAAAAA\t"+orig+"\tNA\n"+
		"TAAAAAAAAAAAAAAAAAAA\t"+orig+"\t\n")

	s, err := Load(p, 1.0)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 loaded prediction, got %d", s.Len())
	}

	pairs := []domain.Pair{
		{Variant: "CAAAAAAAAAAAAAAAAAAA", Original: orig},
		{Variant: "GAAAAAAAAAAAAAAAAAAA", Original: orig},
		{Variant: "CAAAAAAAAAAAAAAAAAAA", Original: "CCAAAAAAAAAAAAAAAAAA"},
		{Variant: orig, Original: orig},
	}
	preds, err := s.Score(context.Background(), pairs)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	want := []domain.Prediction{domain.Scored(0.7), {}, {}, domain.Scored(1.0)}
	for i := range want {
		if preds[i] != want[i] {
			t.Fatalf("pred %d: expected %+v, got %+v", i, want[i], preds[i])
		}
	}
}

func TestLoad_ScoreAlias(t *testing.T) {
	p := writeTable(t, "original\tvariant\tscore\n"+orig+"\tCAAAAAAAAAAAAAAAAAAA\t-0.1\n")
	s, err := Load(p, 1.0)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	preds, _ := s.Score(context.Background(), []domain.Pair{{Variant: "CAAAAAAAAAAAAAAAAAAA", Original: orig}})
	if !preds[0].Valid || preds[0].Value != -0.1 {
		t.Fatalf("unexpected prediction %+v", preds[0])
	}
}

func TestLoad_BadNumber(t *testing.T) {
	p := writeTable(t, "variant\toriginal\ty_pred\nCAAAAAAAAAAAAAAAAAAA\t"+orig+"\thigh\n")
	if _, err := Load(p, 1.0); !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected KindInvalidInput, got %v", err)
	}
}
