package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/e6viu/internal/app"
)

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "e6viu",
		Short: "View random e621 posts in the terminal",
		Long: `e6viu fetches a random post matching your tags, downloads it and draws it
inline. Press N for another image, Q or Esc to quit.

Set E621_TOKEN (and E621_USER) in the environment or a .env file to send
authenticated requests.`,
		Example: `  e6viu
  e6viu --tags wolf,canine
  e6viu --paws --renderer blocks`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.In = cmd.InOrStdin()
			opts.Out = cmd.OutOrStdout()
			opts.Err = cmd.ErrOrStderr()
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/e6viu/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/e6viu/prefs.toml)")

	cmd.Flags().StringSliceVarP(&opts.Tags, "tags", "t", nil, "tags to search for, comma separated (e.g. fox,canine,score:>50)")
	cmd.Flags().BoolVarP(&opts.Paws, "paws", "p", false, "search for paws and pawpads")
	cmd.Flags().BoolVarP(&opts.Cubs, "cubs", "c", false, "include cubs")
	cmd.Flags().StringVar(&opts.Renderer, "renderer", "", "image renderer: auto, kitty or blocks")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newLogsCmd(&opts),
		newThemeCmd(&opts),
	)
	return cmd
}
