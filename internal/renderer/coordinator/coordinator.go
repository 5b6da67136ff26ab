// Package coordinator keeps the gutter in step with the text area.
//
// The Coordinator owns the gutter width and decides what to repaint. The
// host calls its three entry points from its event loop, in the order the
// events occur:
//
//	OnBlockCountChanged(n)   after edits that change the line count
//	OnUpdateRequest(r, dy)   after a scroll (dy != 0) or an edit/expose (dy == 0)
//	OnResize(contents)       after the text area is resized
//
// None of the entry points block, and none may be called concurrently.
package coordinator

import (
	"image"

	"github.com/charmbracelet/log"

	"github.com/dshills/gutterview/internal/logging"
	"github.com/dshills/gutterview/internal/renderer/core"
	"github.com/dshills/gutterview/internal/renderer/gutter"
	"github.com/dshills/gutterview/internal/renderer/metrics"
)

// DefaultMargin is the space in pixels added to the digits.
const DefaultMargin = 3

// Host is the text area the gutter sits beside.
type Host interface {
	// SetLeftMargin reserves w pixels for the gutter. The host may re-lay
	// itself out, but must not call back into the Coordinator before
	// SetLeftMargin returns.
	SetLeftMargin(w int)

	// ViewportRect returns the text viewport in viewport coordinates.
	ViewportRect() image.Rectangle
}

// Counter reports the document's line count.
type Counter interface {
	BlockCount() int
}

// Gutter is the paint side of the gutter. *gutter.Gutter implements it.
type Gutter interface {
	Scroll(dy int)
	Update(r image.Rectangle)
	SetWidth(w int)
	SetGeometry(r image.Rectangle)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithMargin sets the constant added to the digit width.
func WithMargin(px int) Option {
	return func(c *Coordinator) {
		core.MustNonNegative("coordinator.WithMargin", "margin", px)
		c.margin = px
	}
}

// WithLogger sets the logger for width changes.
func WithLogger(logger *log.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithFullUpdateRecheck controls whether an update covering the whole
// viewport re-checks the block count. It is on by default. The re-check is
// idempotent; OnBlockCountChanged alone keeps the width correct.
func WithFullUpdateRecheck(enabled bool) Option {
	return func(c *Coordinator) {
		c.recheck = enabled
	}
}

// Coordinator mediates between document and scroll events and the gutter.
type Coordinator struct {
	host    Host
	gutter  Gutter
	doc     Counter
	metrics metrics.FontMetrics
	logger  *log.Logger

	margin  int
	recheck bool

	digitCount  int
	widthPixels int
}

// New creates a coordinator and sizes the gutter for the document's
// current line count. The host is not told about the initial width; it
// reads CurrentWidthPixels when it first lays itself out.
func New(host Host, g Gutter, doc Counter, m metrics.FontMetrics, opts ...Option) *Coordinator {
	c := &Coordinator{
		host:    host,
		gutter:  g,
		doc:     doc,
		metrics: m,
		margin:  DefaultMargin,
		recheck: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Default()
	}

	c.digitCount = gutter.DigitCount(doc.BlockCount())
	c.widthPixels = c.width(c.digitCount)
	c.gutter.SetWidth(c.widthPixels)
	return c
}

// CurrentWidthPixels returns the gutter width the host should reserve.
func (c *Coordinator) CurrentWidthPixels() int {
	return c.widthPixels
}

// DigitCount returns the number of digits the gutter is sized for.
func (c *Coordinator) DigitCount() int {
	return c.digitCount
}

func (c *Coordinator) width(digits int) int {
	return c.margin + c.metrics.DigitWidth()*digits
}

// OnBlockCountChanged resizes the gutter when n needs a different number
// of digits than the current width provides. Panics if n is negative.
func (c *Coordinator) OnBlockCountChanged(n int) {
	core.MustNonNegative("coordinator.OnBlockCountChanged", "block count", n)

	digits := gutter.DigitCount(n)
	if digits == c.digitCount {
		return
	}
	c.digitCount = digits
	c.apply(c.width(digits), logging.FieldBlocks, n)
}

// OnUpdateRequest handles a viewport change. dy != 0 means the content
// scrolled by dy pixels: the gutter blits and repaints only the exposed
// band. dy == 0 repaints the rows of rect. Panics if rect is inverted.
func (c *Coordinator) OnUpdateRequest(rect image.Rectangle, dy int) {
	c.Repaint(core.RepaintRequest{Rect: rect, DY: dy})
}

// Repaint is OnUpdateRequest taking the request as a value.
func (c *Coordinator) Repaint(req core.RepaintRequest) {
	core.MustValidRect("coordinator.OnUpdateRequest", req.Rect)
	c.logger.Debug("repaint request", logging.FieldRequest, req)

	if req.IsScroll() {
		c.gutter.Scroll(req.DY)
	} else {
		c.gutter.Update(image.Rect(0, req.Rect.Min.Y, c.widthPixels, req.Rect.Max.Y))
	}

	if c.recheck && core.Contains(req.Rect, c.host.ViewportRect()) {
		c.OnBlockCountChanged(c.doc.BlockCount())
	}
}

// OnResize places the gutter flush against the left of the host's
// contents rectangle. Width and line geometry are unchanged, and nothing
// is marked for repaint. Panics if contents is inverted.
func (c *Coordinator) OnResize(contents image.Rectangle) {
	core.MustValidRect("coordinator.OnResize", contents)

	c.gutter.SetGeometry(image.Rect(
		contents.Min.X,
		contents.Min.Y,
		contents.Min.X+c.widthPixels,
		contents.Max.Y,
	))
}

// SetMetrics switches to new font metrics, typically after a font size
// change, and resizes the gutter for the new digit width.
func (c *Coordinator) SetMetrics(m metrics.FontMetrics) {
	c.metrics = m
	if w := c.width(c.digitCount); w != c.widthPixels {
		c.apply(w, logging.FieldDigitWidth, m.DigitWidth())
	}
}

func (c *Coordinator) apply(w int, reasonKey string, reason any) {
	c.logger.Debug("gutter width changed",
		logging.FieldDigits, c.digitCount,
		logging.FieldWidth, w,
		reasonKey, reason)

	c.widthPixels = w
	c.gutter.SetWidth(w)
	c.host.SetLeftMargin(w)
}
