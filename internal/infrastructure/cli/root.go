package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/trendpost/internal/app"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
	// Build constructs the container; app.BuildContainer when nil.
	Build func(context.Context, app.Options) (*app.Container, error)
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Build == nil {
		opts.Build = app.BuildContainer
	}

	flags := &generateFlags{}
	generateCmd := newGenerateCommand(&opts, flags)

	root := &cobra.Command{
		Use:   "trendpost [topic]",
		Short: "Generate a social post from fresh web results",
		Long: "trendpost searches the web for a topic, asks Gemini for a short upbeat post " +
			"based on the snippets and records every generation in a local history file.\n\n" +
			"A topic whose first word is a subcommand name (history, config, generate, version) " +
			"runs that subcommand instead; use \"trendpost generate <topic>\" for those topics.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, &opts, flags, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Config file (default ~/.trendpost/config.yaml)")
	flags.bind(root.Flags())

	root.AddCommand(generateCmd)
	root.AddCommand(newHistoryCommand(&opts))
	root.AddCommand(newConfigCommand(&opts))
	root.AddCommand(newVersionCommand())
	return root
}

// withContainer builds the container for one command and always closes it.
func withContainer(cmd *cobra.Command, opts *Options, fn func(*app.Container) error) error {
	container, err := opts.Build(cmd.Context(), app.Options{
		Verbose:    opts.Verbose,
		ConfigPath: opts.ConfigPath,
	})
	if err != nil {
		return err
	}
	defer container.Close()
	return fn(container)
}
