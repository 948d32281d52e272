package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/infra/logger"
	"github.com/traeki/mismatch-crispri/internal/infra/workspacefinder"
)

// Execute runs the command tree and exits with the status of the error kind.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, cleanup := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	if cleanup != nil {
		_ = (*cleanup)()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(domain.ExitCode(err))
	}
}

type globalFlags struct {
	debug     bool
	workspace string
}

func newRootCmd() (*cobra.Command, *func() error) {
	g := &globalFlags{}
	cleanup := func() error { return nil }

	cmd := &cobra.Command{
		Use:           "mmdesign",
		Short:         "Design mismatch-CRISPRi variant libraries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logRoot := ""
			if root, err := resolveWorkspaceRoot(g.workspace); err == nil {
				logRoot = root
			}
			c, err := logger.Setup(logger.Config{
				Root:    logRoot,
				Debug:   g.debug,
				Console: cmd.ErrOrStderr(),
			})
			if c != nil {
				cleanup = c
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: log file disabled: %v\n", err)
			}
			logger.L().Debug("command.start", "command", cmd.CommandPath(), "workspace", logRoot)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "verbose logging (info on stderr, debug in .mmdesign/logs/mmdesign.log)")
	cmd.PersistentFlags().StringVarP(&g.workspace, "workspace", "w", "", "Workspace root (optional; autodetected from "+workspacefinder.ConfigFile+")")

	cmd.AddCommand(
		designCmd(g),
		validateCmd(g),
		mutateCmd(g),
		initCmd(),
		versionCmd(),
	)
	return cmd, &cleanup
}
