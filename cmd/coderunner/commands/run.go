package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecairns22/coderunner/internal/orchestrator"
)

func runCmd(g *globalFlags) *cobra.Command {
	var (
		root      string
		timeout   time.Duration
		dryRun    bool
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "run <path>",
		Short: "Run a file with its configured command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orc, cleanup, err := buildOrchestrator(g, cmd.ErrOrStderr(), !noHistory)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := orc.Run(cmd.Context(), orchestrator.RunRequest{
				Path:    args[0],
				Root:    root,
				Timeout: timeout,
				DryRun:  dryRun,
			})
			if err != nil {
				return &userError{err: err}
			}

			w := cmd.OutOrStdout()
			if dryRun {
				printPlan(w, res.Resolution, res.Tokens)
				fmt.Fprintf(w, "Dir:      %s\n", res.Dir)
				return nil
			}
			fmt.Fprint(w, res.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Project root for project-type detection (default: the file's directory)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "Kill the command after this long, e.g. 30s (default: no limit)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve the command without running it")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run")

	return cmd
}
