// Package tsvtargets loads the target table from a TSV file.
package tsvtargets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/infra/tsvtable"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

var _ ports.TargetSource = (*Loader)(nil)

// LoadTargets reads locus_tag, offset, target (or original), pam and transdir.
// Sequences and PAMs are upper-cased; other columns are ignored.
func (l *Loader) LoadTargets(path string) ([]domain.Target, error) {
	tab, err := tsvtable.Read(path)
	if err != nil {
		return nil, err
	}

	cols, err := tab.Require(
		[]string{"locus_tag"},
		[]string{"offset"},
		[]string{"target", "original"},
		[]string{"pam"},
		[]string{"transdir"},
	)
	if err != nil {
		return nil, err
	}
	cLocus, cOffset, cSeq, cPAM, cDir := cols[0], cols[1], cols[2], cols[3], cols[4]

	out := make([]domain.Target, 0, len(tab.Rows))
	for i, row := range tab.Rows {
		locus := tsvtable.Cell(row, cLocus)
		if locus == "" {
			return nil, rowError(path, tab.Lines[i], "locus_tag is empty")
		}
		off, err := strconv.Atoi(tsvtable.Cell(row, cOffset))
		if err != nil {
			return nil, rowError(path, tab.Lines[i], fmt.Sprintf("offset %q is not an integer", tsvtable.Cell(row, cOffset)))
		}
		out = append(out, domain.Target{
			LocusTag: locus,
			Offset:   off,
			Sequence: strings.ToUpper(tsvtable.Cell(row, cSeq)),
			PAM:      strings.ToUpper(tsvtable.Cell(row, cPAM)),
			TransDir: tsvtable.Cell(row, cDir),
		})
	}
	return out, nil
}

func rowError(path string, line int, msg string) error {
	return &domain.OpError{
		Op:   "tsvtargets.load",
		Kind: domain.KindInvalidInput,
		Path: path,
		Err:  fmt.Errorf("%w: line %d: %s", domain.ErrInvalidInput, line, msg),
	}
}
