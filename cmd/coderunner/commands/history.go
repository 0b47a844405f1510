package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecairns22/coderunner/internal/state"
)

func historyCmd() *cobra.Command {
	var (
		limit int
		path  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			var runs []*state.Run
			if path != "" {
				runs, err = store.ListRunsForPath(cmd.Context(), path, limit)
			} else {
				runs, err = store.ListRuns(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded. Run 'coderunner run <path>' to get started.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tOUTCOME\tEXIT\tDURATION\tPATH\tCOMMAND")
			for _, r := range runs {
				command := r.Command
				if command == "" {
					command = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
					r.StartedAt.Format("2006-01-02 15:04:05"), r.Outcome, r.ExitCode, r.Duration, r.Path, command)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVarP(&path, "path", "p", "", "Only show runs of this file")
	return cmd
}
