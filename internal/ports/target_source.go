package ports

import "github.com/traeki/mismatch-crispri/internal/domain"

// TargetSource loads the raw target table from a source (e.g., a TSV file).
type TargetSource interface {
	LoadTargets(path string) ([]domain.Target, error)
}

// LociSource loads the list of locus tags to design for.
type LociSource interface {
	LoadLoci(path string) ([]string, error)
}
