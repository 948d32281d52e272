// Package tsvwriter renders design output and mutation spaces as TSV.
package tsvwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

var (
	ChosenHeader = []string{"variant", "original", "locus_tag", "pam", "y_pred"}
	PairHeader   = []string{"variant", "original", "locus_tag", "pam", "offset", "position"}
)

type Writer struct{}

func New() *Writer { return &Writer{} }

var (
	_ ports.DesignWriter = (*Writer)(nil)
	_ ports.PairWriter   = (*Writer)(nil)
)

// WriteChosen writes one row per chosen variant; y_pred is empty when unscored.
func (Writer) WriteChosen(w io.Writer, rows []domain.ChosenRow) error {
	cw := newCSV(w)
	if err := cw.Write(ChosenHeader); err != nil {
		return err
	}
	for _, r := range rows {
		pred := ""
		if r.YPred != nil {
			pred = strconv.FormatFloat(*r.YPred, 'g', -1, 64)
		}
		if err := cw.Write([]string{r.Variant, r.Original, r.LocusTag, r.PAM, pred}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (Writer) WritePairs(w io.Writer, pairs []domain.Pair) error {
	cw := newCSV(w)
	if err := cw.Write(PairHeader); err != nil {
		return err
	}
	for _, p := range pairs {
		rec := []string{p.Variant, p.Original, p.LocusTag, p.PAM, strconv.Itoa(p.Offset), strconv.Itoa(p.Position)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func newCSV(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return cw
}
