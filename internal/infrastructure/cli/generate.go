package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/doeshing/trendpost/internal/app"
	"github.com/doeshing/trendpost/internal/domain"
)

type generateFlags struct {
	timeout  time.Duration
	maxChars int
}

func (f *generateFlags) bind(fs *pflag.FlagSet) {
	fs.DurationVar(&f.timeout, "timeout", 0, "Abort the run after this long (0 waits indefinitely)")
	fs.IntVar(&f.maxChars, "max-chars", 0, "Post length requested from the model (default from config)")
}

func newGenerateCommand(opts *Options, flags *generateFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [topic]",
		Short: "Search a topic and generate a post about it",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, flags, args)
		},
	}
	flags.bind(cmd.Flags())
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *Options, flags *generateFlags, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		topic = domain.DefaultTopic
	}

	return withContainer(cmd, opts, func(container *app.Container) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if flags.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, flags.timeout)
			defer cancel()
		}
		if flags.maxChars > 0 {
			container.PostService.MaxChars = flags.maxChars
		}

		result := container.PostService.Run(ctx, topic)
		_, err := fmt.Fprintln(cmd.OutOrStdout(), result)
		return err
	})
}
