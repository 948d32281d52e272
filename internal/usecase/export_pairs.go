package usecase

import (
	"context"
	"io"
	"time"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

// ExportPairs writes the unscored mutation space of the requested loci, for
// scoring by an external model.
type ExportPairs struct {
	targets ports.TargetSource
	loci    ports.LociSource
	writer  ports.PairWriter
	diag    ports.Diagnostics
	cfg     domain.SelectionConfig
}

func NewExportPairs(ts ports.TargetSource, ls ports.LociSource, pw ports.PairWriter, diag ports.Diagnostics, cfg domain.SelectionConfig) *ExportPairs {
	if diag == nil {
		diag = ports.NopDiagnostics{}
	}
	return &ExportPairs{targets: ts, loci: ls, writer: pw, diag: diag, cfg: cfg}
}

// Execute returns the number of pairs written.
func (uc *ExportPairs) Execute(ctx context.Context, in Inputs, w io.Writer) (int, error) {
	if err := uc.cfg.Validate(); err != nil {
		return 0, err
	}
	prep, err := prepare(ctx, uc.targets, uc.loci, in, uc.cfg.Antisense, newEventLog(uc.diag, time.Now))
	if err != nil {
		return 0, err
	}
	if err := uc.writer.WritePairs(w, prep.pairs); err != nil {
		return 0, err
	}
	return len(prep.pairs), nil
}
