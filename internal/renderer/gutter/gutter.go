// Package gutter paints the line number panel beside the text area.
//
// The gutter keeps its rendered pixels between events. Scrolling blits the
// existing content and only the newly exposed band is repainted; edits and
// expose events mark rectangles dirty. Paint repaints exactly the dirty
// regions, and the result is always identical to repainting the whole
// gutter from scratch.
package gutter

import (
	"image"
	"image/color"
	"iter"
	"sync"

	"github.com/dshills/gutterview/internal/renderer/backend"
	"github.com/dshills/gutterview/internal/renderer/core"
	"github.com/dshills/gutterview/internal/renderer/dirty"
	"github.com/dshills/gutterview/internal/renderer/theme"
)

// Config holds gutter configuration.
type Config struct {
	Mode LineNumberMode

	Background color.RGBA
	Foreground color.RGBA

	// CurrentLine colours the current line's number when HighlightCurrent
	// is set.
	CurrentLine      color.RGBA
	HighlightCurrent bool
}

// DefaultConfig returns absolute numbers in the light theme's colours.
func DefaultConfig() Config {
	return ConfigFromTheme(theme.Default(), LineNumberAbsolute)
}

// ConfigFromTheme returns a configuration using the theme's gutter colours.
func ConfigFromTheme(t theme.Theme, mode LineNumberMode) Config {
	return Config{
		Mode:             mode,
		Background:       t.GutterBackground,
		Foreground:       t.GutterForeground,
		CurrentLine:      t.CurrentLine,
		HighlightCurrent: mode != LineNumberAbsolute,
	}
}

// Rows is the geometry the gutter paints from. *viewport.Viewport
// implements it.
type Rows interface {
	VisibleBlocks(rect image.Rectangle) iter.Seq[core.BlockGeometry]
	Geometry(index int) (core.BlockGeometry, bool)
}

// Gutter manages the gutter area rendering.
//
// Width is never computed here. The coordinator owns the width policy and
// hands the result over with SetWidth or SetGeometry.
type Gutter struct {
	mu sync.Mutex

	config    Config
	formatter *LineNumberFormatter

	surface backend.Surface
	rows    Rows
	tracker *dirty.Tracker

	// geometry is the gutter rectangle in the host frame.
	geometry image.Rectangle

	// repaint asks the host to schedule a Paint. Optional.
	repaint func(image.Rectangle)
}

// New creates a gutter that paints rows onto surface.
func New(surface backend.Surface, rows Rows, config Config) *Gutter {
	return &Gutter{
		config:    config,
		formatter: NewLineNumberFormatter(config.Mode),
		surface:   surface,
		rows:      rows,
		tracker:   dirty.NewTracker(surface.Bounds()),
		geometry:  surface.Bounds(),
	}
}

// SetRepaintFunc installs the host's repaint request capability. fn
// receives gutter-local rectangles and must not call back into the gutter
// synchronously.
func (g *Gutter) SetRepaintFunc(fn func(image.Rectangle)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.repaint = fn
}

// Config returns the current configuration.
func (g *Gutter) Config() Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.config
}

// SetConfig changes mode and colours and marks the whole gutter dirty.
func (g *Gutter) SetConfig(config Config) {
	g.mu.Lock()
	g.config = config
	g.formatter.SetMode(config.Mode)
	g.tracker.MarkFullRedraw()
	bounds := g.tracker.Bounds()
	g.mu.Unlock()

	g.request(bounds)
}

// Width returns the gutter width in pixels.
func (g *Gutter) Width() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.geometry.Dx()
}

// Geometry returns the gutter rectangle in the host frame.
func (g *Gutter) Geometry() image.Rectangle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.geometry
}

// Bounds returns the gutter rectangle in local coordinates.
func (g *Gutter) Bounds() image.Rectangle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tracker.Bounds()
}

// Surface returns the paint surface.
func (g *Gutter) Surface() backend.Surface {
	return g.surface
}

// SetGeometry moves and resizes the gutter. A width change invalidates
// every row. A height change marks nothing: rows exposed by a taller gutter
// are painted once the host requests them with Update.
func (g *Gutter) SetGeometry(r image.Rectangle) {
	core.MustValidRect("gutter.SetGeometry", r)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.setGeometry(r)
}

// SetWidth changes the gutter width, keeping its position and height.
func (g *Gutter) SetWidth(w int) {
	core.MustNonNegative("gutter.SetWidth", "width", w)

	g.mu.Lock()
	defer g.mu.Unlock()
	r := g.geometry
	r.Max.X = r.Min.X + w
	g.setGeometry(r)
}

func (g *Gutter) setGeometry(r image.Rectangle) {
	old := g.tracker.Bounds()
	g.geometry = r

	if rs, ok := g.surface.(backend.Resizer); ok {
		rs.Resize(r.Size())
	}

	bounds := image.Rectangle{Max: r.Size()}
	g.tracker.SetBounds(bounds)

	if bounds.Dx() != old.Dx() {
		// Numbers are right-aligned, so every row moves
		g.tracker.MarkFullRedraw()
	}
}

// Scroll shifts the rendered content by dy pixels and marks the exposed
// band dirty. Pending dirty regions move with the content.
func (g *Gutter) Scroll(dy int) {
	if dy == 0 {
		return
	}

	g.mu.Lock()
	bounds := g.tracker.Bounds()
	g.surface.Scroll(bounds, dy)
	g.tracker.Translate(dy)
	band := dirty.Band(bounds, dy)
	g.tracker.Mark(band)
	g.mu.Unlock()

	g.request(band)
}

// Update marks r dirty. r is in gutter-local coordinates and is clipped
// to the gutter.
func (g *Gutter) Update(r image.Rectangle) {
	core.MustValidRect("gutter.Update", r)

	g.mu.Lock()
	r = r.Intersect(g.tracker.Bounds())
	g.tracker.Mark(r)
	g.mu.Unlock()

	if !r.Empty() {
		g.request(r)
	}
}

// SetCurrentLine moves the current line. In absolute mode only the old and
// new rows change; in the other modes every number does.
func (g *Gutter) SetCurrentLine(line int) {
	g.mu.Lock()
	old := g.formatter.CurrentLine()
	if old == line {
		g.mu.Unlock()
		return
	}
	g.formatter.SetCurrentLine(line)

	var changed []image.Rectangle
	switch {
	case g.config.Mode == LineNumberAbsolute && !g.config.HighlightCurrent:
		// Numbers and colours are unchanged
	case g.config.Mode == LineNumberAbsolute:
		width := g.tracker.Bounds().Dx()
		for _, l := range []int{old, line} {
			if geo, ok := g.rows.Geometry(l); ok {
				r := geo.Rect(width).Intersect(g.tracker.Bounds())
				if !r.Empty() {
					g.tracker.Mark(r)
					changed = append(changed, r)
				}
			}
		}
	default:
		g.tracker.MarkFullRedraw()
		changed = append(changed, g.tracker.Bounds())
	}
	g.mu.Unlock()

	for _, r := range changed {
		g.request(r)
	}
}

// CurrentLine returns the 0-based current line.
func (g *Gutter) CurrentLine() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.formatter.CurrentLine()
}

// IsDirty reports whether a Paint is pending.
func (g *Gutter) IsDirty() bool {
	return g.tracker.IsDirty()
}

// DirtyRegions returns the pending dirty regions.
func (g *Gutter) DirtyRegions() []image.Rectangle {
	return g.tracker.Regions()
}

// Paint repaints every dirty region and clears them.
// Returns the regions painted.
func (g *Gutter) Paint() []image.Rectangle {
	g.mu.Lock()
	defer g.mu.Unlock()

	regions := g.tracker.Flush()
	for _, r := range regions {
		g.paintRect(r)
	}
	return regions
}

// PaintAll discards the rendered content and repaints the whole gutter.
func (g *Gutter) PaintAll() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tracker.Clear()
	g.paintRect(g.tracker.Bounds())
}

// paintRect paints one region (internal, no lock).
func (g *Gutter) paintRect(r image.Rectangle) {
	if r.Empty() {
		return
	}
	g.surface.Fill(r, g.config.Background)

	width := g.tracker.Bounds().Dx()
	for geo := range g.rows.VisibleBlocks(r) {
		text, current := g.formatter.Format(geo.Block.Index)
		fg := g.config.Foreground
		if current && g.config.HighlightCurrent {
			fg = g.config.CurrentLine
		}
		g.surface.DrawText(geo.Rect(width), r, text, backend.TextStyle{
			Foreground: fg,
			Background: g.config.Background,
			Align:      backend.AlignRight,
		})
	}
}

func (g *Gutter) request(r image.Rectangle) {
	g.mu.Lock()
	fn := g.repaint
	g.mu.Unlock()

	if fn != nil {
		fn(r)
	}
}
