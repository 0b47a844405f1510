package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ecairns22/coderunner/internal/resolver"
)

func whichCmd(g *globalFlags) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "which <path>",
		Short: "Show the command that would run a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orc, cleanup, err := buildOrchestrator(g, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer cleanup()

			res, tokens, err := orc.Plan(args[0], root)
			if err != nil {
				return &userError{err: err}
			}
			printPlan(cmd.OutOrStdout(), res, tokens)
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Project root for project-type detection (default: the file's directory)")
	return cmd
}

func printPlan(w io.Writer, res *resolver.Resolution, tokens []string) {
	fmt.Fprintf(w, "Tier:     %s (%s)\n", res.Tier, res.Key)
	fmt.Fprintf(w, "Command:  %s\n", res.Command)
	fmt.Fprintf(w, "Program:  %s\n", tokens[0])
	for i, arg := range tokens[1:] {
		fmt.Fprintf(w, "Arg %d:    %q\n", i+1, arg)
	}
}
