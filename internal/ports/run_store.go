package ports

import "github.com/traeki/mismatch-crispri/internal/domain"

// RunStore persists design runs for reproducibility.
type RunStore interface {
	SaveRun(run domain.DesignRun) (id string, err error)
}
