package ports

import (
	"io"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

// DesignWriter renders the chosen rows of a design run.
type DesignWriter interface {
	WriteChosen(w io.Writer, rows []domain.ChosenRow) error
}

// PairWriter renders an unscored mutation space.
type PairWriter interface {
	WritePairs(w io.Writer, pairs []domain.Pair) error
}
