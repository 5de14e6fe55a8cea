package cli

import (
	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/internal/tui"
)

func newConsoleCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the interactive admin console",
		Long:  "Open the full-screen console: tabbed resource tables, detail panes, live search, and guarded mutations.",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := theme
			if name == "" {
				name = cfg.Theme
			}
			return tui.Run(tui.Options{
				Context:   cmd.Context(),
				Stores:    stores,
				PageSize:  cfg.PageSize,
				ThemeName: name,
				ExportDir: ".",
			})
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Color theme (slate, dracula)")
	return cmd
}
