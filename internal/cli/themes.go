package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/gutterview/internal/renderer/theme"
)

func newThemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in colour themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{})
			logger.SetLevel(log.InfoLevel)

			for _, name := range theme.Names() {
				th, err := theme.Lookup(name)
				if err != nil {
					return err
				}
				logger.Info(name,
					"background", theme.Hex(th.Background),
					"foreground", theme.Hex(th.Foreground),
					"gutter", theme.Hex(th.GutterBackground),
				)
			}
			return nil
		},
	}
}
