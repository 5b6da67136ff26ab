// Package theme provides the colour themes for the text area and gutter.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownTheme is returned for a theme name that is not built in.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme holds the colours used to paint one editor view.
type Theme struct {
	Name string

	Background color.RGBA
	Foreground color.RGBA

	GutterBackground color.RGBA
	GutterForeground color.RGBA
	CurrentLine      color.RGBA
}

// def describes a theme by hex colours. Empty gutter colours are derived
// from the text colours.
type def struct {
	name       string
	background string
	foreground string
	gutterBG   string
	gutterFG   string
}

// Built-in themes, in preferences order.
var builtins = []def{
	{name: "light", background: "#ffffff", foreground: "#000000", gutterBG: "#c0c0c0", gutterFG: "#000000"},
	{name: "dark", background: "#333333", foreground: "#ffffff"},
	{name: "ocean", background: "#007acc", foreground: "#ffffff"},
	{name: "sunset", background: "#ffa07a", foreground: "#ffffff"},
	{name: "forest", background: "#228b22", foreground: "#ffffff"},
}

// Names returns the built-in theme names in preferences order.
func Names() []string {
	names := make([]string, len(builtins))
	for i, s := range builtins {
		names[i] = s.name
	}
	return names
}

// Default returns the light theme.
func Default() Theme {
	t, _ := Lookup("light")
	return t
}

// Lookup returns the built-in theme with the given name (case-insensitive).
func Lookup(name string) (Theme, error) {
	for _, s := range builtins {
		if strings.EqualFold(s.name, name) {
			return s.build()
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// ByIndex returns the built-in theme at preferences index i.
func ByIndex(i int) (Theme, error) {
	if i < 0 || i >= len(builtins) {
		return Theme{}, fmt.Errorf("%w: index %d", ErrUnknownTheme, i)
	}
	return builtins[i].build()
}

func (s def) build() (Theme, error) {
	bg, err := colorful.Hex(s.background)
	if err != nil {
		return Theme{}, fmt.Errorf("theme %s background: %w", s.name, err)
	}
	fg, err := colorful.Hex(s.foreground)
	if err != nil {
		return Theme{}, fmt.Errorf("theme %s foreground: %w", s.name, err)
	}

	// Derived gutter: background pulled a quarter of the way toward grey,
	// numbers slightly muted.
	gutterBG := bg.BlendLab(colorful.Color{R: 0.5, G: 0.5, B: 0.5}, 0.25)
	gutterFG := fg.BlendLab(bg, 0.2)
	if s.gutterBG != "" {
		if gutterBG, err = colorful.Hex(s.gutterBG); err != nil {
			return Theme{}, fmt.Errorf("theme %s gutter background: %w", s.name, err)
		}
	}
	if s.gutterFG != "" {
		if gutterFG, err = colorful.Hex(s.gutterFG); err != nil {
			return Theme{}, fmt.Errorf("theme %s gutter foreground: %w", s.name, err)
		}
	}
	current := gutterFG.BlendLab(colorful.Color{R: 0.8, G: 0.1, B: 0.1}, 0.6)

	return Theme{
		Name:             s.name,
		Background:       toRGBA(bg),
		Foreground:       toRGBA(fg),
		GutterBackground: toRGBA(gutterBG),
		GutterForeground: toRGBA(gutterFG),
		CurrentLine:      toRGBA(current),
	}, nil
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex formats c as #rrggbb.
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
