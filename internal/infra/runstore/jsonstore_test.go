package runstore

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

func sampleRun(start time.Time) domain.DesignRun {
	y := 0.42
	return domain.DesignRun{
		TargetsPath: "data/Targets Raw.tsv",
		LociPath:    "data/loci.txt",
		Scorer:      "linear",
		Request:     domain.SelectionRequest{Loci: []string{"L1"}, N: 1, Families: 1, Seed: 9},
		StartedAt:   start,
		EndedAt:     start.Add(time.Second),
		Loci:        []domain.LocusReport{{Locus: "L1", Requested: 1, Chosen: 1}},
		Chosen: []domain.ChosenRow{
			{Variant: "ACGTACGTACGTACGTACGA", Original: "ACGTACGTACGTACGTACGT", LocusTag: "L1", PAM: "AGG", YPred: &y},
		},
		Events: []domain.Event{},
	}
}

func TestSaveRun_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIDFunc(func() string { return "abcd1234" }))

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id, err := store.SaveRun(sampleRun(start))
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if id != "20260203T101112Z_targets-raw_abcd1234" {
		t.Fatalf("unexpected id %q", id)
	}

	b, err := os.ReadFile(filepath.Join(tmp, "runs", id+".json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	var decoded domain.DesignRun
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != id {
		t.Fatalf("expected id persisted, got %q", decoded.ID)
	}
	if len(decoded.Chosen) != 1 || decoded.Chosen[0].YPred == nil || *decoded.Chosen[0].YPred != 0.42 {
		t.Fatalf("unexpected chosen rows: %+v", decoded.Chosen)
	}
	if decoded.Request.Seed != 9 {
		t.Fatalf("expected seed=9, got %d", decoded.Request.Seed)
	}
}

func TestSaveRun_UsesNowWhenStartMissing(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithNow(func() time.Time { return now }))

	run := sampleRun(time.Time{})
	run.TargetsPath = ""
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if !strings.HasPrefix(id, "20250506T070809Z_design_") {
		t.Fatalf("unexpected id %q", id)
	}
	if len(strings.TrimPrefix(id, "20250506T070809Z_design_")) != 8 {
		t.Fatalf("expected 8-char random suffix in %q", id)
	}
}

func TestSaveRun_CustomRunsDirAndIndex(t *testing.T) {
	tmp := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.Paths.RunsDir = "out/designs"

	store := NewJSONStore(tmp, cfg, WithIndex(true))
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		if _, err := store.SaveRun(sampleRun(start)); err != nil {
			t.Fatalf("SaveRun error: %v", err)
		}
	}

	f, err := os.Open(filepath.Join(tmp, "out", "designs", "index.jsonl"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("bad index line %q: %v", sc.Text(), err)
		}
		if rec["scorer"] != "linear" || rec["chosen"].(float64) != 1 {
			t.Fatalf("unexpected index record %v", rec)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("expected 2 index lines, got %d", lines)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Targets Raw":  "targets-raw",
		"  a__b--c ":   "a-b-c",
		"":             "",
		"***":          "",
		"bsu_targets1": "bsu-targets1",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q)=%q, want %q", in, got, want)
		}
	}
}
