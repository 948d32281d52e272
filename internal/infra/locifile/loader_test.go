package locifile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

func TestLoadLoci_FirstFieldInOrder(t *testing.T) {
	p := filepath.Join(t.TempDir(), "loci.txt")
	content := "# essential genes\nBSU00010\tdnaA\n\n  BSU00020  \nBSU00010\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewLoader().LoadLoci(p)
	if err != nil {
		t.Fatalf("LoadLoci error: %v", err)
	}
	want := []string{"BSU00010", "BSU00020", "BSU00010"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLoadLoci_NotFound(t *testing.T) {
	if _, err := NewLoader().LoadLoci(filepath.Join(t.TempDir(), "x")); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}
