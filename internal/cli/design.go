package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/infra/logger"
	"github.com/traeki/mismatch-crispri/internal/infra/logsink"
	"github.com/traeki/mismatch-crispri/internal/infra/tsvwriter"
	"github.com/traeki/mismatch-crispri/internal/usecase"
)

func designCmd(g *globalFlags) *cobra.Command {
	var noSave bool

	c := &cobra.Command{
		Use:   "design",
		Short: "Design a mismatch variant library for a set of loci",
		Example: `  mmdesign design --targets targets.tsv --loci loci.txt --n 100 --families 10 --out library.tsv
  mmdesign design --targets targets.tsv --locus b0001 --scorer table --scores preds.tsv --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}
			v, err := newSettings(cmd.Flags(), ws.cfg)
			if err != nil {
				return err
			}

			format := v.GetString("format")
			if err := checkFormat(format); err != nil {
				return err
			}
			in, err := inputs(ws, v.GetString("targets"), v.GetString("loci"), v.GetStringSlice("locus"))
			if err != nil {
				return err
			}

			scorer, err := buildScorer(ws, v, cmd.Flags())
			if err != nil {
				return err
			}

			opts := []usecase.DesignOption{
				usecase.WithDiagnostics(logsink.New(logger.L())),
				usecase.WithSelectionConfig(ws.cfg.Selection),
			}
			if !noSave && ws.store != nil {
				opts = append(opts, usecase.WithRunStore(ws.store))
			}

			uc := usecase.NewDesignLibrary(ws.targets, ws.loci, scorer, opts...)
			run, runID, err := uc.Execute(cmd.Context(), usecase.DesignInput{
				Inputs:  in,
				Request: request(v, in.Loci),
			})
			if err != nil {
				return err
			}

			out := v.GetString("out")
			if err := writeChosen(cmd.OutOrStdout(), out, run.Chosen); err != nil {
				return err
			}

			summary := cmd.OutOrStdout()
			if out == "" || out == "-" {
				summary = cmd.ErrOrStderr()
			}
			return printDesign(summary, run, runID, format)
		},
	}

	addInputFlags(c.Flags())
	c.Flags().Int("n", 0, "Variants per locus (default from mmdesign.yaml, else 100)")
	c.Flags().Int("families", 0, "Parent guides per locus (default from mmdesign.yaml, else 10)")
	c.Flags().Bool("divide-evenly", false, "Allocate n/families variants to each parent instead of pooling")
	c.Flags().Uint64("seed", 0, "Random seed (default from mmdesign.yaml, else 1)")
	c.Flags().StringP("out", "o", "-", "Output TSV path (- for stdout)")
	c.Flags().String("format", "pretty", "Summary format: pretty|json")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not persist the run artifact under runs/")
	addScorerFlags(c.Flags())
	return c
}

func addInputFlags(f *pflag.FlagSet) {
	f.StringP("targets", "t", "", "Target table TSV (required)")
	f.StringP("loci", "l", "", "Loci file, one locus tag per line")
	f.StringSlice("locus", nil, "Locus tag to design for (repeatable; replaces --loci)")
}

func inputs(ws *workspaceCtx, targets, loci string, explicit []string) (usecase.Inputs, error) {
	if strings.TrimSpace(targets) == "" {
		return usecase.Inputs{}, &domain.OpError{
			Op:   "cli.inputs",
			Kind: domain.KindUsage,
			Err:  errors.New("--targets is required"),
		}
	}
	return usecase.Inputs{
		TargetsPath: strings.TrimSpace(targets),
		LociPath:    strings.TrimSpace(loci),
		Loci:        explicit,
	}, nil
}

// writeChosen writes rows to path, or to stdout when path is empty or "-".
func writeChosen(stdout io.Writer, path string, rows []domain.ChosenRow) error {
	return withOutput(stdout, path, func(w io.Writer) error {
		return tsvwriter.New().WriteChosen(w, rows)
	})
}

func withOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return &domain.OpError{Op: "cli.output", Kind: domain.KindExecution, Path: path, Err: err}
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &domain.OpError{Op: "cli.output", Kind: domain.KindExecution, Path: path, Err: fmt.Errorf("close: %w", err)}
	}
	return nil
}
