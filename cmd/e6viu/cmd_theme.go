package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/e6viu/internal/app"
	"github.com/five82/e6viu/internal/prefs"
	"github.com/five82/e6viu/internal/ui"
)

func newThemeCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "theme [name]",
		Short:   "List color themes or choose one",
		Example: "  e6viu theme\n  e6viu theme Slate",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := prefs.Load(opts.PrefsPath)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, name := range ui.ThemeNames() {
					marker := " "
					if name == current.Theme {
						marker = "*"
					}
					fmt.Fprintf(out, "%s %s\n", marker, name)
				}
				return nil
			}

			name := args[0]
			if !ui.HasTheme(name) {
				return fmt.Errorf("unknown theme %q (available: %v)", name, ui.ThemeNames())
			}
			current.Theme = name
			if err := prefs.Save(opts.PrefsPath, current); err != nil {
				return err
			}
			fmt.Fprintf(out, "theme set to %s\n", name)
			return nil
		},
	}
}
