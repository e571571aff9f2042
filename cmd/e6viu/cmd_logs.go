package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/five82/e6viu/internal/app"
	"github.com/five82/e6viu/internal/config"
	"github.com/five82/e6viu/internal/logtail"
	"github.com/five82/e6viu/internal/prefs"
	"github.com/five82/e6viu/internal/ui"
)

const defaultLogLines = 50

func newLogsCmd(opts *app.Options) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			records, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no log entries in %s\n", cfg.LogFile)
				return nil
			}
			p, _ := prefs.Load(opts.PrefsPath)
			h := highlighter(ui.GetTheme(p.Theme).Styles())
			for _, line := range h.ColorizeLines(records) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of lines to show (0 for all)")
	return cmd
}

func highlighter(st ui.Styles) logtail.Highlighter {
	return logtail.Highlighter{
		Key:  st.FaintText,
		Time: st.MutedText,
		Levels: map[string]lipgloss.Style{
			"DEBUG": st.AccentText,
			"INFO":  st.SuccessText,
			"WARN":  st.WarningText.Bold(true),
			"ERROR": st.DangerText.Bold(true),
		},
	}
}
