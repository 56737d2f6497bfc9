package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/trendpost/internal/app"
	"github.com/doeshing/trendpost/internal/infrastructure/config"
)

func newConfigCommand(opts *Options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, opts, func(container *app.Container) error {
				raw, err := config.Describe(container.Config)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if container.ConfigLoader != nil {
					fmt.Fprintf(out, "# %s\n", container.ConfigLoader.Path())
				}
				_, err = out.Write(raw)
				return err
			})
		},
	})
	return configCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "trendpost", Version)
		},
	}
}
