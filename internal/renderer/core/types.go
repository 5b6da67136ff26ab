// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between the viewport, gutter,
// coordinator and host packages.
package core

import (
	"fmt"
	"image"
)

// Block is one logical line of the document as seen by the renderer.
// The renderer never owns block storage; a Block is a transient copy
// that is only valid while the document is not mutated.
type Block struct {
	// Index is the 0-based line index. It shifts when lines are inserted
	// or removed above the block.
	Index int

	// Visible is false for folded lines.
	Visible bool

	// Height is the block height in pixels. Invisible blocks have zero height.
	Height int
}

// IsPaintable reports whether the block occupies vertical space.
func (b Block) IsPaintable() bool {
	return b.Visible && b.Height > 0
}

// LineNumber returns the 1-based number displayed for the block.
func (b Block) LineNumber() int {
	return b.Index + 1
}

// BlockGeometry is one element of the visible block sequence.
// Top and Bottom are viewport-relative pixel offsets; Top may be negative
// for a block that starts above the viewport.
type BlockGeometry struct {
	Block  Block
	Top    int
	Bottom int
}

// Rect returns the block's row as a rectangle of the given width.
func (g BlockGeometry) Rect(width int) image.Rectangle {
	return image.Rect(0, g.Top, width, g.Bottom)
}

// ViewportState is the host-owned scroll and size state of the text area.
// The renderer reads it on demand and never mutates it.
type ViewportState struct {
	FirstVisibleBlock int
	ScrollOffset      int
	Width             int
	Height            int
}

// Rect returns the viewport rectangle in viewport coordinates.
func (s ViewportState) Rect() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// RepaintRequest is produced by the host on every viewport change.
// DY == 0 means repaint exactly Rect; otherwise content scrolled by DY pixels.
type RepaintRequest struct {
	Rect image.Rectangle
	DY   int
}

// IsScroll reports whether the request carries a vertical scroll delta.
func (r RepaintRequest) IsScroll() bool {
	return r.DY != 0
}

// String implements fmt.Stringer.
func (r RepaintRequest) String() string {
	return fmt.Sprintf("repaint(%v, dy=%d)", r.Rect, r.DY)
}

// MustValidRect panics when r is inverted. Inverted rectangles are
// programming errors in the caller; correcting them silently would
// produce rendering that is hard to diagnose.
func MustValidRect(op string, r image.Rectangle) {
	if r.Min.X > r.Max.X || r.Min.Y > r.Max.Y {
		panic(fmt.Sprintf("%s: malformed rectangle %v", op, r))
	}
}

// MustNonNegative panics when n is negative.
func MustNonNegative(op, name string, n int) {
	if n < 0 {
		panic(fmt.Sprintf("%s: negative %s %d", op, name, n))
	}
}

// Contains reports whether outer fully contains inner.
// Empty rectangles never contain and are never contained.
func Contains(outer, inner image.Rectangle) bool {
	if outer.Empty() || inner.Empty() {
		return false
	}
	return inner.Min.X >= outer.Min.X && inner.Min.Y >= outer.Min.Y &&
		inner.Max.X <= outer.Max.X && inner.Max.Y <= outer.Max.Y
}
