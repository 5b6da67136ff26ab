// Package host provides TextArea, the text view the gutter is attached to.
//
// TextArea owns the viewport state (scroll offset and size) and the frame
// layout: the gutter on the left, the text viewport to its right. It turns
// its own scroll, edit and resize events into calls on the Coordinator,
// and applies the left margin the Coordinator asks for.
//
// TextArea is not safe for concurrent use. All methods must be called from
// one event loop.
package host

import (
	"image"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/image/font"

	"github.com/dshills/gutterview/internal/document"
	"github.com/dshills/gutterview/internal/logging"
	"github.com/dshills/gutterview/internal/renderer/backend"
	"github.com/dshills/gutterview/internal/renderer/coordinator"
	"github.com/dshills/gutterview/internal/renderer/core"
	"github.com/dshills/gutterview/internal/renderer/dirty"
	"github.com/dshills/gutterview/internal/renderer/gutter"
	"github.com/dshills/gutterview/internal/renderer/layout"
	"github.com/dshills/gutterview/internal/renderer/metrics"
	"github.com/dshills/gutterview/internal/renderer/theme"
	"github.com/dshills/gutterview/internal/renderer/viewport"
)

// textPadding is the default gap in pixels between the gutter and the text.
const textPadding = 4

// Option configures a TextArea.
type Option func(*TextArea)

// WithLogger sets the logger. The view ID is attached to it.
func WithLogger(logger *log.Logger) Option {
	return func(t *TextArea) {
		t.logger = logger
	}
}

// WithTheme sets the colour theme.
func WithTheme(th theme.Theme) Option {
	return func(t *TextArea) {
		t.theme = th
	}
}

// WithLineNumberMode sets how the gutter numbers lines.
func WithLineNumberMode(mode gutter.LineNumberMode) Option {
	return func(t *TextArea) {
		t.mode = mode
	}
}

// WithCoordinatorOptions passes options through to the Coordinator.
func WithCoordinatorOptions(opts ...coordinator.Option) Option {
	return func(t *TextArea) {
		t.coordOpts = append(t.coordOpts, opts...)
	}
}

// WithTextPadding sets the gap between the gutter and the text.
func WithTextPadding(n int) Option {
	return func(t *TextArea) {
		t.padding = max(n, 0)
	}
}

// WithTabWidth sets the tab stop width in columns.
func WithTabWidth(n int) Option {
	return func(t *TextArea) {
		t.tabs.SetTabWidth(n)
	}
}

// placer is implemented by surfaces that occupy part of a larger screen.
type placer interface {
	SetRect(r image.Rectangle)
}

// faceSetter is implemented by surfaces that draw with an x/image face.
type faceSetter interface {
	SetFace(face font.Face)
}

// TextArea is a scrolling text view with a line number gutter.
type TextArea struct {
	id     uuid.UUID
	logger *log.Logger

	doc     *document.Document
	metrics metrics.FontMetrics
	theme   theme.Theme
	mode    gutter.LineNumberMode
	tabs    *layout.TabExpander
	padding int

	vp          *viewport.Viewport
	gutter      *gutter.Gutter
	coord       *coordinator.Coordinator
	coordOpts   []coordinator.Option
	text        backend.Surface
	textTracker *dirty.Tracker

	// state is read by the viewport and the gutter through ViewportState.
	state      core.ViewportState
	frame      image.Rectangle
	leftMargin int

	currentLine   int
	currentColumn int

	// queue holds events dispatched while another event is running.
	queue       []func()
	dispatching bool

	damage []image.Rectangle
}

// New creates a text area of the given frame size over doc. The gutter
// paints onto gutterSurface and the text onto textSurface.
func New(doc *document.Document, gutterSurface, textSurface backend.Surface, m metrics.FontMetrics, size image.Point, opts ...Option) *TextArea {
	t := &TextArea{
		id:      uuid.New(),
		doc:     doc,
		metrics: m,
		theme:   theme.Default(),
		mode:    gutter.LineNumberAbsolute,
		tabs:    layout.NewTabExpander(layout.DefaultTabWidth),
		padding: textPadding,
		text:    textSurface,
		frame:   image.Rectangle{Max: size},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logging.Default()
	}
	t.logger = t.logger.With(logging.FieldView, t.id.String())

	if err := doc.SetLineHeight(m.LineHeight()); err != nil {
		panic("host.New: " + err.Error())
	}

	t.vp = viewport.New(doc, t)
	t.gutter = gutter.New(gutterSurface, t.vp, gutter.ConfigFromTheme(t.theme, t.mode))
	t.gutter.SetRepaintFunc(t.gutterDamaged)
	t.textTracker = dirty.NewTracker(image.Rectangle{})

	t.coord = coordinator.New(t, t.gutter, doc, m, append([]coordinator.Option{coordinator.WithLogger(t.logger)}, t.coordOpts...)...)
	t.leftMargin = t.coord.CurrentWidthPixels()

	t.dispatch(func() {
		t.layout()
		t.coord.OnResize(t.ContentsRect())
		t.fullUpdate()
	})
	return t
}

// ID returns the view's unique identifier.
func (t *TextArea) ID() uuid.UUID {
	return t.id
}

// Document returns the document being viewed.
func (t *TextArea) Document() *document.Document {
	return t.doc
}

// Viewport returns the viewport read model.
func (t *TextArea) Viewport() *viewport.Viewport {
	return t.vp
}

// Gutter returns the line number gutter.
func (t *TextArea) Gutter() *gutter.Gutter {
	return t.gutter
}

// Coordinator returns the gutter coordinator.
func (t *TextArea) Coordinator() *coordinator.Coordinator {
	return t.coord
}

// ViewportState implements viewport.StateSource.
func (t *TextArea) ViewportState() core.ViewportState {
	return t.state
}

// ViewportRect implements coordinator.Host. It is the text viewport in
// viewport coordinates.
func (t *TextArea) ViewportRect() image.Rectangle {
	return t.state.Rect()
}

// ContentsRect returns the frame area inside any border. TextArea has no
// border, so this is the frame.
func (t *TextArea) ContentsRect() image.Rectangle {
	return t.frame
}

// TextRect returns the text viewport in frame coordinates.
func (t *TextArea) TextRect() image.Rectangle {
	r := t.ContentsRect()
	r.Min.X = min(r.Min.X+t.leftMargin, r.Max.X)
	return r
}

// LeftMargin returns the space reserved for the gutter.
func (t *TextArea) LeftMargin() int {
	return t.leftMargin
}

// SetLeftMargin implements coordinator.Host. The re-layout runs after the
// current event finishes.
func (t *TextArea) SetLeftMargin(w int) {
	core.MustNonNegative("host.SetLeftMargin", "margin", w)
	t.dispatch(func() {
		if w == t.leftMargin {
			return
		}
		t.logger.Debug("left margin changed", logging.FieldWidth, w)
		t.leftMargin = w
		t.layout()
		t.coord.OnResize(t.ContentsRect())
		t.fullUpdate()
	})
}

// dispatch runs fn as one event, then any events it queued. Called while
// another event runs, it only queues fn.
func (t *TextArea) dispatch(fn func()) {
	t.queue = append(t.queue, fn)
	if t.dispatching {
		return
	}
	t.dispatching = true
	defer func() { t.dispatching = false }()

	for len(t.queue) > 0 {
		next := t.queue[0]
		t.queue = t.queue[1:]
		next()
	}
}

// layout sizes the viewport and text surface to the frame and margin.
func (t *TextArea) layout() {
	text := t.TextRect()
	t.state.Width = text.Dx()
	t.state.Height = text.Dy()

	if p, ok := t.text.(placer); ok {
		p.SetRect(text)
	}
	if rs, ok := t.text.(backend.Resizer); ok {
		rs.Resize(text.Size())
	}
	t.textTracker.SetBounds(t.text.Bounds())
	t.textTracker.MarkFullRedraw()

	t.clampScroll()
}

// clampScroll keeps the offset inside the content. Reports whether it moved.
func (t *TextArea) clampScroll() bool {
	offset := viewport.ClampScroll(t.state.ScrollOffset, t.doc.ContentHeight(), t.state.Height)
	moved := offset != t.state.ScrollOffset
	t.state.ScrollOffset = offset
	t.updateFirstVisible()
	return moved
}

func (t *TextArea) updateFirstVisible() {
	t.state.FirstVisibleBlock = 0
	if b, ok := t.vp.FirstVisibleBlock(); ok {
		t.state.FirstVisibleBlock = b.Index
	}
}

// fullUpdate repaints the whole viewport, as after a resize.
func (t *TextArea) fullUpdate() {
	r := t.ViewportRect()
	t.textTracker.MarkFullRedraw()
	t.addDamage(t.TextRect())
	t.coord.OnUpdateRequest(r, 0)
}

// Resize changes the frame size.
func (t *TextArea) Resize(size image.Point) {
	core.MustNonNegative("host.Resize", "width", size.X)
	core.MustNonNegative("host.Resize", "height", size.Y)

	t.dispatch(func() {
		t.frame = image.Rectangle{Max: size}
		t.layout()
		t.coord.OnResize(t.ContentsRect())
		t.fullUpdate()
	})
}

// ScrollBy scrolls the content by dy pixels; positive dy moves toward the
// end of the document. The offset is clamped to the content.
func (t *TextArea) ScrollBy(dy int) {
	t.dispatch(func() { t.scrollBy(dy) })
}

func (t *TextArea) scrollBy(dy int) {
	old := t.state.ScrollOffset
	offset := viewport.ClampScroll(old+dy, t.doc.ContentHeight(), t.state.Height)
	delta := offset - old
	if delta == 0 {
		return
	}
	t.state.ScrollOffset = offset
	t.updateFirstVisible()

	// Content moves opposite to the offset
	bounds := t.text.Bounds()
	t.text.Scroll(bounds, -delta)
	t.textTracker.Translate(-delta)
	t.textTracker.Mark(dirty.Band(bounds, -delta))
	t.addDamage(t.TextRect())

	t.coord.OnUpdateRequest(t.ViewportRect(), -delta)
}

// ScrollLines scrolls by n lines.
func (t *TextArea) ScrollLines(n int) {
	t.ScrollBy(n * t.doc.LineHeight())
}

// ScrollPages scrolls by n viewport heights, keeping one line of overlap.
func (t *TextArea) ScrollPages(n int) {
	page := max(t.state.Height-t.doc.LineHeight(), t.doc.LineHeight())
	t.ScrollBy(n * page)
}

// ScrollToLine scrolls as little as possible to make line visible.
func (t *TextArea) ScrollToLine(line int) {
	t.dispatch(func() { t.reveal(line) })
}

func (t *TextArea) reveal(line int) {
	b, ok := t.doc.Block(line)
	if !ok || !b.IsPaintable() {
		return
	}
	lh := t.doc.LineHeight()
	offset := viewport.Reveal(t.state.ScrollOffset, t.state.Height, t.doc.BlockTop(b), b.Height, viewport.DefaultMargins(1, lh))
	t.scrollBy(offset - t.state.ScrollOffset)
}

// CurrentLine returns the 0-based line of the cursor.
func (t *TextArea) CurrentLine() int {
	return t.currentLine
}

// CurrentColumn returns the 0-based column of the cursor.
func (t *TextArea) CurrentColumn() int {
	return t.currentColumn
}

// SetCursor moves the cursor and scrolls it into view. Out-of-range values
// are clamped.
func (t *TextArea) SetCursor(line, column int) {
	t.dispatch(func() {
		line = min(max(line, 0), t.doc.BlockCount()-1)
		text, _ := t.doc.Line(line)
		t.currentLine = line
		t.currentColumn = min(max(column, 0), len([]rune(text)))
		t.gutter.SetCurrentLine(line)
		t.reveal(line)
	})
}

// SetCurrentLine moves the cursor to the start of line.
func (t *TextArea) SetCurrentLine(line int) {
	t.SetCursor(line, 0)
}

// Insert inserts text before line at.
func (t *TextArea) Insert(at int, text string) error {
	var err error
	t.dispatch(func() {
		before := t.doc.BlockCount()
		var n int
		if n, err = t.doc.Insert(at, text); err != nil {
			return
		}
		t.edited(at, before, n)
	})
	return err
}

// Remove deletes lines from..to inclusive.
func (t *TextArea) Remove(from, to int) error {
	var err error
	t.dispatch(func() {
		before := t.doc.BlockCount()
		var n int
		if n, err = t.doc.RemoveRange(from, to); err != nil {
			return
		}
		if t.currentLine >= n {
			t.currentLine = n - 1
			t.currentColumn = 0
			t.gutter.SetCurrentLine(t.currentLine)
		}
		t.edited(from, before, n)
	})
	return err
}

// SetLine replaces the text of one line.
func (t *TextArea) SetLine(at int, text string) error {
	var err error
	t.dispatch(func() {
		if err = t.doc.Set(at, text); err != nil {
			return
		}
		n := t.doc.BlockCount()
		t.edited(at, n, n)
	})
	return err
}

// Fold hides lines from..to inclusive.
func (t *TextArea) Fold(from, to int) error {
	return t.setFolded(from, to, true)
}

// Unfold shows lines from..to inclusive.
func (t *TextArea) Unfold(from, to int) error {
	return t.setFolded(from, to, false)
}

func (t *TextArea) setFolded(from, to int, fold bool) error {
	var err error
	t.dispatch(func() {
		if fold {
			err = t.doc.Fold(from, to)
		} else {
			err = t.doc.Unfold(from, to)
		}
		if err != nil {
			return
		}
		n := t.doc.BlockCount()
		t.edited(from, n, n)
	})
	return err
}

// edited reports a change starting at line: the block count first, then
// the rows from the line's top to the bottom of the viewport.
func (t *TextArea) edited(line, before, after int) {
	if after != before {
		t.coord.OnBlockCountChanged(after)
	}

	if t.clampScroll() {
		t.fullUpdate()
		return
	}

	top := t.doc.ContentHeight() - t.state.ScrollOffset
	if b, ok := t.doc.Block(line); ok {
		top = t.doc.BlockTop(b) - t.state.ScrollOffset
	}
	top = max(top, 0)
	if top >= t.state.Height {
		return
	}

	r := image.Rect(0, top, t.state.Width, t.state.Height)
	t.textTracker.Mark(r)
	t.addDamage(r.Add(t.TextRect().Min))
	t.coord.OnUpdateRequest(r, 0)
}

// SetTheme changes colours and repaints everything.
func (t *TextArea) SetTheme(th theme.Theme) {
	t.dispatch(func() {
		t.theme = th
		t.gutter.SetConfig(gutter.ConfigFromTheme(th, t.mode))
		t.textTracker.MarkFullRedraw()
		t.addDamage(t.TextRect())
	})
}

// Theme returns the current theme.
func (t *TextArea) Theme() theme.Theme {
	return t.theme
}

// SetLineNumberMode changes how the gutter numbers lines.
func (t *TextArea) SetLineNumberMode(mode gutter.LineNumberMode) {
	t.dispatch(func() {
		t.mode = mode
		t.gutter.SetConfig(gutter.ConfigFromTheme(t.theme, mode))
	})
}

// SetFontMetrics switches fonts. Line height and digit width change, so
// the gutter width is recomputed and everything repainted.
func (t *TextArea) SetFontMetrics(m metrics.FontMetrics) {
	if m.LineHeight() <= 0 {
		panic("host.SetFontMetrics: " + document.ErrLineHeight.Error())
	}
	t.dispatch(func() {
		// Checked above
		_ = t.doc.SetLineHeight(m.LineHeight())
		t.metrics = m
		if f, ok := m.(*metrics.Face); ok {
			for _, s := range []backend.Surface{t.gutter.Surface(), t.text} {
				if fs, ok := s.(faceSetter); ok {
					fs.SetFace(f.FontFace())
				}
			}
		}
		t.coord.SetMetrics(m)
		t.clampScroll()
		t.fullUpdate()
	})
}

// Metrics returns the current font metrics.
func (t *TextArea) Metrics() metrics.FontMetrics {
	return t.metrics
}

// gutterDamaged records a gutter repaint request in frame coordinates.
func (t *TextArea) gutterDamaged(r image.Rectangle) {
	t.addDamage(r.Add(t.gutter.Geometry().Min))
}

func (t *TextArea) addDamage(r image.Rectangle) {
	if !r.Empty() {
		t.damage = append(t.damage, r)
	}
}

// TakeDamage returns the frame rectangles that changed since the last
// call and forgets them.
func (t *TextArea) TakeDamage() []image.Rectangle {
	d := t.damage
	t.damage = nil
	return d
}

// NeedsPaint reports whether the gutter or the text has dirty regions.
func (t *TextArea) NeedsPaint() bool {
	return t.gutter.IsDirty() || t.textTracker.IsDirty()
}

// Paint repaints the dirty regions of the gutter and the text.
func (t *TextArea) Paint() {
	t.gutter.Paint()
	for _, r := range t.textTracker.Flush() {
		t.paintText(r)
	}
}

// PaintText paints the text rows intersecting r (viewport coordinates)
// onto s. The text surface is painted through Paint; PaintText lets
// callers render the same content elsewhere.
func (t *TextArea) PaintText(s backend.Surface, r image.Rectangle) {
	core.MustValidRect("host.PaintText", r)

	s.Fill(r, t.theme.Background)
	for geo := range t.vp.VisibleBlocks(r) {
		line, _ := t.doc.Line(geo.Block.Index)
		row := geo.Rect(t.state.Width)
		row.Min.X = t.padding
		s.DrawText(row, r, t.tabs.ExpandTabs(line), backend.TextStyle{
			Foreground: t.theme.Foreground,
			Background: t.theme.Background,
		})
	}
}

func (t *TextArea) paintText(r image.Rectangle) {
	t.PaintText(t.text, r)
}

// ScrollOffset returns the scroll offset in pixels.
func (t *TextArea) ScrollOffset() int {
	return t.state.ScrollOffset
}

// ScrollPercent reports the scroll position from 0 to 100.
func (t *TextArea) ScrollPercent() int {
	p := viewport.ScrollPercent(t.state.ScrollOffset, t.doc.ContentHeight(), t.state.Height)
	return int(p*100 + 0.5)
}

// DisplayColumn returns the cursor column with tabs expanded.
func (t *TextArea) DisplayColumn() int {
	line, _ := t.doc.Line(t.currentLine)
	return t.tabs.DisplayColumn(line, t.currentColumn)
}
