// Package config loads gutterview settings.
//
// Settings come from built-in defaults, then an optional TOML or YAML
// file, then GUTTERVIEW_* environment variables. Validate checks the
// result; Watch reloads a file when it changes.
package config

import (
	"github.com/dshills/gutterview/internal/logging"
	"github.com/dshills/gutterview/internal/renderer/coordinator"
	"github.com/dshills/gutterview/internal/renderer/gutter"
	"github.com/dshills/gutterview/internal/renderer/theme"
)

// Font size limits, in points.
const (
	MinFontSize     = 10
	MaxFontSize     = 20
	DefaultFontSize = 12
)

// Config is the complete settings tree.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Gutter  GutterConfig  `toml:"gutter" yaml:"gutter"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// EditorConfig holds text area settings.
type EditorConfig struct {
	FontSize int    `toml:"font_size" yaml:"font_size"`
	Theme    string `toml:"theme" yaml:"theme"`
	TabWidth int    `toml:"tab_width" yaml:"tab_width"`
}

// GutterConfig holds line number gutter settings.
type GutterConfig struct {
	// Margin is the fixed padding in pixels added to the digit width.
	Margin int    `toml:"margin" yaml:"margin"`
	Mode   string `toml:"mode" yaml:"mode"`
	// RecheckOnFullUpdate re-derives the width from the block count
	// whenever the whole viewport is repainted.
	RecheckOnFullUpdate bool `toml:"recheck_on_full_update" yaml:"recheck_on_full_update"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			FontSize: DefaultFontSize,
			Theme:    theme.Default().Name,
			TabWidth: 4,
		},
		Gutter: GutterConfig{
			Margin:              coordinator.DefaultMargin,
			Mode:                gutter.LineNumberAbsolute.String(),
			RecheckOnFullUpdate: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if c.Editor.FontSize < MinFontSize || c.Editor.FontSize > MaxFontSize {
		return &ValidationError{Field: "editor.font_size", Value: c.Editor.FontSize, Message: "must be between 10 and 20"}
	}
	if _, err := theme.Lookup(c.Editor.Theme); err != nil {
		return &ValidationError{Field: "editor.theme", Value: c.Editor.Theme, Message: "unknown theme"}
	}
	if c.Editor.TabWidth < 1 {
		return &ValidationError{Field: "editor.tab_width", Value: c.Editor.TabWidth, Message: "must be at least 1"}
	}
	if c.Gutter.Margin < 0 {
		return &ValidationError{Field: "gutter.margin", Value: c.Gutter.Margin, Message: "must not be negative"}
	}
	if _, err := gutter.ParseMode(c.Gutter.Mode); err != nil {
		return &ValidationError{Field: "gutter.mode", Value: c.Gutter.Mode, Message: "must be absolute, relative or hybrid"}
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return &ValidationError{Field: "logging.level", Value: c.Logging.Level, Message: "unknown log level"}
	}
	return nil
}

// Theme returns the configured theme.
func (c *Config) Theme() (theme.Theme, error) {
	return theme.Lookup(c.Editor.Theme)
}

// LineNumberMode returns the configured gutter mode.
func (c *Config) LineNumberMode() (gutter.LineNumberMode, error) {
	return gutter.ParseMode(c.Gutter.Mode)
}
