package commands

import (
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	verbose    bool
}

// Root returns the root cobra command with all subcommands attached.
func Root() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:          "coderunner",
		Short:        "Run a file with the command configured for it",
		Long:         "coderunner picks a command for a file from runner.toml (by extension, then language, then project type) and runs it.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to runner.toml (default: search the standard locations)")
	cmd.PersistentFlags().BoolVar(&g.verbose, "verbose", false, "Log resolution and execution details to stderr")

	cmd.AddCommand(runCmd(&g))
	cmd.AddCommand(whichCmd(&g))
	cmd.AddCommand(historyCmd())
	cmd.AddCommand(initCmd(&g))
	cmd.AddCommand(versionCmd())

	return cmd
}
