package backend

import (
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int

	// Data carries the value passed to Interrupt.
	Data any
}

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyCtrlC
	KeyCtrlQ
)

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseWheelUp
	MouseWheelDown
)

// Terminal owns a tcell screen: lifecycle, events and cell regions.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a terminal backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a simulation
// screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init initializes the screen. Must be called before any other method.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Show flushes pending cell changes to the display.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// Sync repaints the whole display, used after a resize.
func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Sync()
}

// ShowCursor places the terminal cursor at cell (x, y).
func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

// HideCursor hides the terminal cursor.
func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// Interrupt wakes PollEvent with an EventInterrupt carrying data. It is
// safe to call from any goroutine.
func (t *Terminal) Interrupt(data any) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

// Region returns a surface over rect of the screen.
func (t *Terminal) Region(rect image.Rectangle) *Region {
	return &Region{term: t, rect: rect}
}

// PollEvent waits for and returns the next terminal event.
// Returns EventNone with ok=false once the screen is finalized.
func (t *Terminal) PollEvent() (Event, bool) {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{}, false
	}
	return convertEvent(ev), true
}

// Region is a Surface over a rectangle of a tcell screen. One cell is one
// unit in both directions.
type Region struct {
	term *Terminal
	rect image.Rectangle
}

// SetRect moves the region on the screen.
func (g *Region) SetRect(rect image.Rectangle) {
	g.rect = rect
}

// Rect returns the region's screen rectangle.
func (g *Region) Rect() image.Rectangle {
	return g.rect
}

// Bounds implements Surface.
func (g *Region) Bounds() image.Rectangle {
	return image.Rectangle{Max: g.rect.Size()}
}

// Resize implements Resizer. The origin stays put.
func (g *Region) Resize(size image.Point) {
	g.rect.Max = g.rect.Min.Add(size)
}

// Fill implements Surface.
func (g *Region) Fill(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(g.Bounds())
	if r.Empty() {
		return
	}
	style := tcell.StyleDefault.Background(convertColor(c))

	g.term.mu.Lock()
	defer g.term.mu.Unlock()

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g.term.screen.SetContent(g.rect.Min.X+x, g.rect.Min.Y+y, ' ', nil, style)
		}
	}
}

// DrawText implements Surface. Text occupies the first cell row of row;
// wide graphemes that would straddle the clip edge are skipped.
func (g *Region) DrawText(row, clip image.Rectangle, s string, st TextStyle) {
	clip = clip.Intersect(row).Intersect(g.Bounds())
	if clip.Empty() || s == "" {
		return
	}
	y := row.Min.Y
	if y < clip.Min.Y || y >= clip.Max.Y {
		return
	}

	style := tcell.StyleDefault.
		Foreground(convertColor(st.Foreground)).
		Background(convertColor(st.Background))

	x := row.Min.X
	if st.Align == AlignRight {
		x = row.Max.X - uniseg.StringWidth(s)
	}

	g.term.mu.Lock()
	defer g.term.mu.Unlock()

	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if w == 0 {
			continue
		}
		if x >= clip.Min.X && x+w <= clip.Max.X {
			runes := gr.Runes()
			g.term.screen.SetContent(g.rect.Min.X+x, g.rect.Min.Y+y, runes[0], runes[1:], style)
		}
		x += w
	}
}

type cellContent struct {
	mainc rune
	combc []rune
	style tcell.Style
}

// Scroll implements Surface by copying cells; tcell has no blit.
func (g *Region) Scroll(r image.Rectangle, dy int) {
	src, dst, ok := scrollSpans(r.Intersect(g.Bounds()), dy)
	if !ok {
		return
	}

	g.term.mu.Lock()
	defer g.term.mu.Unlock()

	rows := make([][]cellContent, src.Dy())
	for y := range rows {
		rows[y] = make([]cellContent, src.Dx())
		for x := range rows[y] {
			mainc, combc, style, _ := g.term.screen.GetContent(g.rect.Min.X+src.Min.X+x, g.rect.Min.Y+src.Min.Y+y) //nolint:staticcheck // GetContent is the correct API
			rows[y][x] = cellContent{mainc: mainc, combc: combc, style: style}
		}
	}
	for y, cells := range rows {
		for x, c := range cells {
			g.term.screen.SetContent(g.rect.Min.X+dst.X+x, g.rect.Min.Y+dst.Y+y, c.mainc, c.combc, c.style)
		}
	}
}

func convertColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyPgUp:
		return KeyPageUp
	case tcell.KeyPgDn:
		return KeyPageDown
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyCtrlC:
		return KeyCtrlC
	case tcell.KeyCtrlQ:
		return KeyCtrlQ
	default:
		return KeyNone
	}
}

// convertMouseButton converts tcell button mask to our MouseButton.
func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	default:
		return MouseNone
	}
}
