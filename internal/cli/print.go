package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/usecase"
)

func checkFormat(format string) error {
	switch format {
	case "pretty", "json", "":
		return nil
	default:
		return &domain.OpError{
			Op:   "cli.format",
			Kind: domain.KindUsage,
			Err:  fmt.Errorf("unsupported format %q (expected pretty|json)", format),
		}
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printDesign(w io.Writer, run domain.DesignRun, runID string, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		// Chosen rows already went to --out; the summary keeps the reports.
		summary := run
		summary.Chosen = nil
		return encodeJSON(w, map[string]any{
			"run_id":       runID,
			"chosen_count": len(run.Chosen),
			"shortfalls":   run.Shortfalls(),
			"run":          summary,
		})
	}

	th := defaultTheme()
	total := run.EndedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.EndedAt.IsZero() {
		total = 0
	}

	var b strings.Builder
	fmt.Fprintln(&b, th.Title.Render("mmdesign design"))
	fmt.Fprintf(&b, "Targets:  %s\n", run.TargetsPath)
	fmt.Fprintf(&b, "Scorer:   %s\n", run.Scorer)
	mode := "pooled"
	if run.Request.DivideEvenly {
		mode = "divide-evenly"
	}
	fmt.Fprintf(&b, "Request:  n=%d families=%d seed=%d (%s)\n", run.Request.N, run.Request.Families, run.Request.Seed, mode)
	fmt.Fprintf(&b, "Duration: %s\n", total.Round(time.Millisecond))
	if runID != "" {
		fmt.Fprintf(&b, "Run ID:   %s\n", runID)
	}
	fmt.Fprintln(&b)

	for _, l := range run.Loci {
		switch {
		case l.Skipped != "":
			fmt.Fprintln(&b, th.Warn.Render(fmt.Sprintf("- [SKIP] %s: %s", l.Locus, l.Skipped)))
		case l.Shortfall:
			fmt.Fprintln(&b, th.Warn.Render(fmt.Sprintf("- [SHORT] %s %d/%d from %d parents", l.Locus, l.Chosen, l.Requested, len(l.Parents))))
		default:
			fmt.Fprintf(&b, "- [OK] %s %d/%d from %d parents\n", l.Locus, l.Chosen, l.Requested, len(l.Parents))
		}
	}
	fmt.Fprintln(&b)
	fmt.Fprint(&b, th.Subtitle.Render(fmt.Sprintf("%d variants, %d loci short, %d warnings", len(run.Chosen), run.Shortfalls(), countWarnings(run.Events))))

	_, err := fmt.Fprintln(w, th.Card.Render(b.String()))
	return err
}

func printSummary(w io.Writer, s usecase.InputSummary, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		return encodeJSON(w, s)
	}

	th := defaultTheme()
	rows := []string{
		th.Title.Render("inputs OK"),
		fmt.Sprintf("Rows:     %d (%d eligible)", s.Rows, s.Eligible),
		fmt.Sprintf("Loci:     %d", s.Loci),
		fmt.Sprintf("Variants: %d", s.Pairs),
		"",
	}
	for _, l := range s.PerLocus {
		rows = append(rows, fmt.Sprintf("- %s: %d parents, %d variants", l.Locus, l.Parents, l.Pairs))
	}
	if len(s.Missing) > 0 {
		rows = append(rows, "", th.Warn.Render("not in targets: "+strings.Join(s.Missing, ", ")))
	}
	_, err := fmt.Fprintln(w, th.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	return err
}

func countWarnings(evs []domain.Event) int {
	n := 0
	for _, ev := range evs {
		if ev.Level == domain.LevelWarn || ev.Level == domain.LevelError {
			n++
		}
	}
	return n
}
