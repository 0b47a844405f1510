package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ecairns22/coderunner/internal/config"
)

func initCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter runner.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.configPath
			if path == "" {
				path = config.DefaultPath()
			}

			if _, err := os.Stat(path); err == nil {
				if _, err := config.LoadFrom(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "config %s already exists and is valid\n", path)
				return nil
			}

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("creating directory for %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(config.TemplateConfig()), 0644); err != nil {
				return fmt.Errorf("writing config template: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote config template to %s\n", path)
			return nil
		},
	}
}
