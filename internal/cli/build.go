package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/dshills/gutterview/internal/config"
	"github.com/dshills/gutterview/internal/document"
	"github.com/dshills/gutterview/internal/host"
	"github.com/dshills/gutterview/internal/renderer/coordinator"
)

// loadDocument reads path, or returns an empty document when path is "".
func loadDocument(path string, lineHeight int) (*document.Document, error) {
	if path == "" {
		return document.New(lineHeight), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := document.FromReader(f, lineHeight)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return doc, nil
}

// hostOptions turns settings into text area options. margin is the gutter
// margin in the host's units.
func hostOptions(cfg *config.Config, margin int, logger *log.Logger) ([]host.Option, error) {
	th, err := cfg.Theme()
	if err != nil {
		return nil, err
	}
	mode, err := cfg.LineNumberMode()
	if err != nil {
		return nil, err
	}
	return []host.Option{
		host.WithLogger(logger),
		host.WithTheme(th),
		host.WithLineNumberMode(mode),
		host.WithTabWidth(cfg.Editor.TabWidth),
		host.WithCoordinatorOptions(
			coordinator.WithMargin(margin),
			coordinator.WithFullUpdateRecheck(cfg.Gutter.RecheckOnFullUpdate),
		),
	}, nil
}
