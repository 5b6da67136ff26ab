// Package cli provides the Cobra command structure for gutterview.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/gutterview/internal/config"
	"github.com/dshills/gutterview/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootOptions are the global flags and the configuration they select.
type rootOptions struct {
	configPath string
	debug      bool
	logLevel   string

	cfg *config.Config
}

// NewRootCommand creates the root gutterview command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "gutterview",
		Short: "A text viewer with a line number gutter",
		Long: `gutterview shows text files with a line number gutter that resizes
itself as the line count gains or loses digits and repaints only the rows
that change when the view scrolls or the text is edited.

It can open an interactive terminal viewer or render a view to PNG.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a TOML or YAML config file")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newRenderCommand(opts))
	rootCmd.AddCommand(newViewCommand(opts))
	rootCmd.AddCommand(newThemesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// setup loads the configuration and installs the logger.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if cmd.Flags().Changed("log-level") {
		if !logging.ValidLevel(o.logLevel) {
			return &config.ValidationError{Field: "--log-level", Value: o.logLevel, Message: "unknown log level"}
		}
		level = o.logLevel
	}
	if o.debug {
		level = "debug"
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

	logger.Debug("configuration loaded",
		logging.FieldPath, o.configPath,
		logging.FieldTheme, cfg.Editor.Theme,
		logging.FieldFontSize, cfg.Editor.FontSize,
		logging.FieldMode, cfg.Gutter.Mode)

	o.cfg = cfg
	return nil
}

// settings returns a copy of the loaded configuration for a command to
// override with its own flags.
func (o *rootOptions) settings() *config.Config {
	if o.cfg == nil {
		return config.Default()
	}
	c := *o.cfg
	return &c
}
