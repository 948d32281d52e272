package cli

import (
	"github.com/spf13/cobra"

	"github.com/traeki/mismatch-crispri/internal/infra/logger"
	"github.com/traeki/mismatch-crispri/internal/infra/logsink"
	"github.com/traeki/mismatch-crispri/internal/usecase"
)

func validateCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "validate",
		Short: "Check the target table and loci without scoring",
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

			uc := usecase.NewValidateInputs(ws.targets, ws.loci,
				usecase.WithValidateDiagnostics(logsink.New(logger.L())),
				usecase.WithValidateConfig(ws.cfg.Selection),
			)
			summary, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), summary, format)
		},
	}

	addInputFlags(c.Flags())
	c.Flags().String("format", "pretty", "Output format: pretty|json")
	return c
}
