// Package viewport maps the scrolled window of the document to pixel rows.
//
// The Viewport is a read model: it holds no scroll state of its own and
// re-reads the host's ViewportState on every query, so a sequence returned
// by VisibleBlocks can be ranged over again after a scroll and reflects the
// new position.
package viewport

import (
	"image"
	"iter"

	"github.com/dshills/gutterview/internal/renderer/core"
)

// Blocks is the part of the document the viewport reads.
type Blocks interface {
	// Block returns the block for line i.
	Block(i int) (core.Block, bool)

	// FirstVisibleBlockFrom returns the visible block covering the absolute
	// pixel offset. Returns false when no line is visible.
	FirstVisibleBlockFrom(scrollOffset int) (core.Block, bool)

	// Next returns the block after b. Implementations may skip invisible
	// blocks; the returned index must be greater than b.Index.
	Next(b core.Block) (core.Block, bool)

	// BlockTop returns the absolute pixel top of b.
	BlockTop(b core.Block) int
}

// StateSource supplies the host-owned viewport state.
type StateSource interface {
	ViewportState() core.ViewportState
}

// StateFunc adapts a function to StateSource.
type StateFunc func() core.ViewportState

// ViewportState implements StateSource.
func (f StateFunc) ViewportState() core.ViewportState { return f() }

// Viewport is a read model over the document restricted to the scrolled
// window.
type Viewport struct {
	doc   Blocks
	state StateSource
}

// New creates a viewport over doc whose scroll state comes from state.
func New(doc Blocks, state StateSource) *Viewport {
	return &Viewport{doc: doc, state: state}
}

// State returns the current host viewport state.
func (v *Viewport) State() core.ViewportState {
	return v.state.ViewportState()
}

// FirstVisibleBlock returns the block at the top edge of the viewport.
func (v *Viewport) FirstVisibleBlock() (core.Block, bool) {
	return v.doc.FirstVisibleBlockFrom(v.state.ViewportState().ScrollOffset)
}

// VisibleBlocks returns the blocks that intersect rect, top to bottom.
//
// Tops are relative to the scroll offset, so the first block may start
// above zero. Blocks with zero height are never yielded. The sequence ends
// at the first block starting at or below rect.Max.Y, or at the end of the
// document.
func (v *Viewport) VisibleBlocks(rect image.Rectangle) iter.Seq[core.BlockGeometry] {
	core.MustValidRect("viewport.VisibleBlocks", rect)

	return func(yield func(core.BlockGeometry) bool) {
		offset := v.state.ViewportState().ScrollOffset
		b, ok := v.doc.FirstVisibleBlockFrom(offset)
		if !ok {
			return
		}

		top := v.doc.BlockTop(b) - offset
		for ok && top < rect.Max.Y {
			if b.IsPaintable() {
				bottom := top + b.Height
				if bottom > rect.Min.Y {
					if !yield(core.BlockGeometry{Block: b, Top: top, Bottom: bottom}) {
						return
					}
				}
				top = bottom
			}

			next, more := v.doc.Next(b)
			if more && next.Index <= b.Index {
				return
			}
			b, ok = next, more
		}
	}
}

// Geometry returns the viewport-relative position of line index.
// Returns false for folded or nonexistent lines.
func (v *Viewport) Geometry(index int) (core.BlockGeometry, bool) {
	b, ok := v.doc.Block(index)
	if !ok || !b.IsPaintable() {
		return core.BlockGeometry{}, false
	}
	top := v.doc.BlockTop(b) - v.state.ViewportState().ScrollOffset
	return core.BlockGeometry{Block: b, Top: top, Bottom: top + b.Height}, true
}

// BlockRect returns the row of line index across the viewport width.
// The rectangle may lie partly or wholly outside the viewport.
func (v *Viewport) BlockRect(index int) (image.Rectangle, bool) {
	g, ok := v.Geometry(index)
	if !ok {
		return image.Rectangle{}, false
	}
	return g.Rect(v.state.ViewportState().Width), true
}

// BlockAt returns the visible block under viewport-relative y.
func (v *Viewport) BlockAt(y int) (core.Block, bool) {
	st := v.state.ViewportState()
	abs := st.ScrollOffset + y
	if y < 0 || y >= st.Height || abs < 0 {
		return core.Block{}, false
	}
	b, ok := v.doc.FirstVisibleBlockFrom(abs)
	if !ok {
		return core.Block{}, false
	}
	if top := v.doc.BlockTop(b); abs < top || abs >= top+b.Height {
		return core.Block{}, false
	}
	return b, true
}
