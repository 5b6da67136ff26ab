// Package backend provides paint surfaces for the renderer.
//
// A Surface is the only thing the gutter and the host text area draw on.
// Coordinates are surface-local: (0, 0) is the top-left of the surface.
// Two implementations exist: Image paints into an RGBA buffer using an
// x/image font face, and Region paints into a rectangle of a tcell screen.
package backend

import (
	"image"
	"image/color"
)

// Align controls horizontal placement of text within its row.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// TextStyle describes how DrawText paints a string.
type TextStyle struct {
	Foreground color.RGBA

	// Background is used by cell surfaces, which paint glyph and
	// background together. Pixel surfaces draw glyphs over whatever
	// Fill left behind and ignore it.
	Background color.RGBA

	Align Align
}

// Surface defines the drawing operations used by the renderer.
type Surface interface {
	// Bounds returns the surface rectangle in local coordinates.
	Bounds() image.Rectangle

	// Fill paints r with c. Parts of r outside Bounds are ignored.
	Fill(r image.Rectangle, c color.RGBA)

	// DrawText draws s in the row rectangle, clipped to clip ∩ row.
	// Glyph positions depend only on row, never on clip, so a clipped
	// draw is identical to an unclipped one inside the clip.
	DrawText(row, clip image.Rectangle, s string, st TextStyle)

	// Scroll moves the content of r vertically by dy.
	// Content moved outside r is discarded; the exposed band keeps stale
	// content and must be repainted by the caller.
	Scroll(r image.Rectangle, dy int)
}

// Resizer is implemented by surfaces whose size the host controls.
type Resizer interface {
	Resize(size image.Point)
}

// scrollSpans returns the source rectangle and destination point of a
// vertical scroll of r by dy. ok is false when nothing survives.
func scrollSpans(r image.Rectangle, dy int) (src image.Rectangle, dst image.Point, ok bool) {
	if dy == 0 || r.Empty() {
		return image.Rectangle{}, image.Point{}, false
	}
	if dy >= r.Dy() || -dy >= r.Dy() {
		return image.Rectangle{}, image.Point{}, false
	}
	if dy < 0 {
		src = image.Rect(r.Min.X, r.Min.Y-dy, r.Max.X, r.Max.Y)
		return src, r.Min, true
	}
	src = image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y-dy)
	return src, image.Pt(r.Min.X, r.Min.Y+dy), true
}
