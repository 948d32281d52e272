package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/traeki/mismatch-crispri/internal/infra/logger"
	"github.com/traeki/mismatch-crispri/internal/infra/logsink"
	"github.com/traeki/mismatch-crispri/internal/infra/tsvwriter"
	"github.com/traeki/mismatch-crispri/internal/usecase"
)

// mutateCmd exports the unscored single-mismatch space, e.g. as input for an
// offline model whose predictions come back through the table scorer.
func mutateCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "mutate",
		Short: "Export every single-mismatch variant of the eligible parents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}
			v, err := newSettings(cmd.Flags(), ws.cfg)
			if err != nil {
				return err
			}
			in, err := inputs(ws, v.GetString("targets"), v.GetString("loci"), v.GetStringSlice("locus"))
			if err != nil {
				return err
			}

			uc := usecase.NewExportPairs(ws.targets, ws.loci, tsvwriter.New(), logsink.New(logger.L()), ws.cfg.Selection)

			var n int
			err = withOutput(cmd.OutOrStdout(), v.GetString("out"), func(w io.Writer) error {
				var err error
				n, err = uc.Execute(cmd.Context(), in, w)
				return err
			})
			if err != nil {
				return err
			}
			logger.L().Info("mutate.done", "pairs", n)
			fmt.Fprintf(cmd.ErrOrStderr(), "%d variants\n", n)
			return nil
		},
	}

	addInputFlags(c.Flags())
	c.Flags().StringP("out", "o", "-", "Output TSV path (- for stdout)")
	return c
}
