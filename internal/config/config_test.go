package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 12, cfg.Editor.FontSize)
	assert.Equal(t, "light", cfg.Editor.Theme)
	assert.Equal(t, 3, cfg.Gutter.Margin)
	assert.Equal(t, "absolute", cfg.Gutter.Mode)
	assert.True(t, cfg.Gutter.RecheckOnFullUpdate)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"font too small", func(c *Config) { c.Editor.FontSize = 9 }, "editor.font_size"},
		{"font too large", func(c *Config) { c.Editor.FontSize = 21 }, "editor.font_size"},
		{"unknown theme", func(c *Config) { c.Editor.Theme = "neon" }, "editor.theme"},
		{"tab width", func(c *Config) { c.Editor.TabWidth = 0 }, "editor.tab_width"},
		{"negative margin", func(c *Config) { c.Gutter.Margin = -1 }, "gutter.margin"},
		{"unknown mode", func(c *Config) { c.Gutter.Mode = "roman" }, "gutter.mode"},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidateAcceptsBounds(t *testing.T) {
	cfg := Default()
	cfg.Editor.FontSize = 10
	cfg.Editor.Theme = "Forest"
	cfg.Gutter.Margin = 0
	cfg.Gutter.Mode = "HYBRID"
	require.NoError(t, cfg.Validate())

	cfg.Editor.FontSize = 20
	require.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "gutterview.toml", `
[editor]
font_size = 16
theme = "ocean"

[gutter]
mode = "relative"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Editor.FontSize)
	assert.Equal(t, "ocean", cfg.Editor.Theme)
	assert.Equal(t, "relative", cfg.Gutter.Mode)
	assert.Equal(t, 3, cfg.Gutter.Margin, "unset keys keep defaults")
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "gutterview.yml", `
editor:
  theme: dark
gutter:
  margin: 6
  recheck_on_full_update: false
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Editor.Theme)
	assert.Equal(t, 6, cfg.Gutter.Margin)
	assert.False(t, cfg.Gutter.RecheckOnFullUpdate)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 12, cfg.Editor.FontSize)
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadNoPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFontSize, cfg.Editor.FontSize)
}

func TestLoadErrors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "config.json", "{}"))
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("bad toml", func(t *testing.T) {
		path := writeFile(t, "bad.toml", "[editor\nfont_size = 12\n")
		_, err := Load(path)
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, path, pe.Path)
		assert.Positive(t, pe.Line)
	})

	t.Run("unknown toml key", func(t *testing.T) {
		_, err := Load(writeFile(t, "extra.toml", "[editor]\ncolour = 1\n"))
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
	})

	t.Run("unknown yaml key", func(t *testing.T) {
		_, err := Load(writeFile(t, "extra.yaml", "editor:\n  colour: 1\n"))
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Contains(t, pe.Error(), "extra.yaml")
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := Load(writeFile(t, "big.toml", "[editor]\nfont_size = 40\n"))
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, 40, ve.Value)
	})
}

func TestDecode(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(cfg, strings.NewReader("[gutter]\nmargin = 8\n"), FormatTOML))
	assert.Equal(t, 8, cfg.Gutter.Margin)

	require.ErrorIs(t, Decode(cfg, strings.NewReader(""), Format(9)), ErrUnsupportedFormat)
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("a/b.TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	f, err = FormatFor("x.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFor("x")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"GUTTERVIEW_FONT_SIZE":      "18",
		"GUTTERVIEW_THEME":          "sunset",
		"GUTTERVIEW_GUTTER_MODE":    "hybrid",
		"GUTTERVIEW_GUTTER_RECHECK": "false",
		"GUTTERVIEW_LOG_LEVEL":      "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, lookup))
	assert.Equal(t, 18, cfg.Editor.FontSize)
	assert.Equal(t, "sunset", cfg.Editor.Theme)
	assert.Equal(t, "hybrid", cfg.Gutter.Mode)
	assert.False(t, cfg.Gutter.RecheckOnFullUpdate)
	assert.Equal(t, "info", cfg.Logging.Level, "empty values are ignored")
}

func TestApplyEnvErrors(t *testing.T) {
	tests := map[string]string{
		"GUTTERVIEW_FONT_SIZE":      "big",
		"GUTTERVIEW_GUTTER_RECHECK": "maybe",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				if k == name {
					return value, true
				}
				return "", false
			}
			err := ApplyEnv(Default(), lookup)
			require.ErrorIs(t, err, ErrInvalidEnv)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoadAppliesEnvOverFile(t *testing.T) {
	path := writeFile(t, "c.toml", "[editor]\nfont_size = 14\n")
	t.Setenv("GUTTERVIEW_FONT_SIZE", "11")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.Editor.FontSize)
}

func TestEnvVars(t *testing.T) {
	vars := EnvVars()
	assert.Contains(t, vars, "GUTTERVIEW_FONT_SIZE")
	assert.IsIncreasing(t, vars)
}

func TestWatchReloads(t *testing.T) {
	path := writeFile(t, "live.toml", "[editor]\nfont_size = 12\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config, err error) {
			if err == nil {
				got <- cfg
			}
		}, WithDebounce(20*time.Millisecond))
	}()

	// Rewrite until the watcher is running and sees a change.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case cfg := <-got:
			if cfg.Editor.FontSize != 15 {
				continue
			}
			cancel()
			require.NoError(t, <-done)
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("[editor]\nfont_size = 15\n"), 0o600))
		case <-deadline:
			t.Fatal("no reload after writing the config file")
		}
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "c.toml"), func(*Config, error) {})
	require.Error(t, err)
}
