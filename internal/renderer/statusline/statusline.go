// Package statusline renders the one-row status bar of the viewer.
package statusline

import (
	"image"
	"image/color"
	"strconv"

	"github.com/rivo/uniseg"

	"github.com/dshills/gutterview/internal/renderer/backend"
	"github.com/dshills/gutterview/internal/renderer/theme"
)

// MessageType indicates the kind of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageError
)

var errorColor = color.RGBA{R: 0xcc, A: 0xff}

// StatusLine shows the file name, the cursor position and an optional
// message.
type StatusLine struct {
	filename   string
	line       int // 1-based
	column     int // 1-based
	totalLines int
	percent    int

	message     string
	messageType MessageType

	theme theme.Theme
}

// New creates a status line using th for colours.
func New(th theme.Theme) *StatusLine {
	return &StatusLine{line: 1, column: 1, theme: th}
}

// SetTheme changes the colours.
func (s *StatusLine) SetTheme(th theme.Theme) {
	s.theme = th
}

// SetFilename sets the displayed file name.
func (s *StatusLine) SetFilename(name string) {
	s.filename = name
}

// SetPosition sets the cursor position. line and column are 1-based.
func (s *StatusLine) SetPosition(line, column int) {
	s.line = max(line, 1)
	s.column = max(column, 1)
}

// SetTotalLines sets the document line count.
func (s *StatusLine) SetTotalLines(n int) {
	s.totalLines = n
}

// SetScrollPercent sets the scroll position, 0 to 100.
func (s *StatusLine) SetScrollPercent(p int) {
	s.percent = min(max(p, 0), 100)
}

// SetMessage replaces the position info with msg until ClearMessage.
func (s *StatusLine) SetMessage(msg string, t MessageType) {
	s.message = msg
	s.messageType = t
}

// ClearMessage removes the message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Position formats the cursor position, e.g. "Line: 3, Column: 7".
func (s *StatusLine) Position() string {
	return "Line: " + strconv.Itoa(s.line) + ", Column: " + strconv.Itoa(s.column)
}

// Right returns the text shown at the right edge. It is empty while a
// message is shown.
func (s *StatusLine) Right() string {
	if s.message != "" {
		return ""
	}
	pos := s.Position()
	switch {
	case s.totalLines <= 0:
		return pos
	case s.percent == 0:
		return pos + " | Top"
	case s.percent >= 100:
		return pos + " | Bot"
	default:
		return pos + " | " + strconv.Itoa(s.percent) + "%"
	}
}

// Left returns the text shown at the left edge.
func (s *StatusLine) Left() string {
	if s.message != "" {
		return s.message
	}
	if s.filename == "" {
		return "[No Name]"
	}
	return s.filename
}

// Render paints the status bar into row on surface. row is in cells; the
// left text is cut short so it never runs into the right text.
func (s *StatusLine) Render(surface backend.Surface, row image.Rectangle) {
	bg := s.theme.GutterBackground
	fg := s.theme.GutterForeground
	surface.Fill(row, bg)

	left := fg
	if s.messageType == MessageError {
		left = errorColor
	}
	pad := image.Rect(row.Min.X+1, row.Min.Y, row.Max.X-1, row.Max.Y)
	if pad.Empty() {
		return
	}
	leftRect := pad
	if right := s.Right(); right != "" {
		leftRect.Max.X = max(pad.Max.X-uniseg.StringWidth(right)-1, pad.Min.X)
		surface.DrawText(pad, pad, right, backend.TextStyle{Foreground: fg, Background: bg, Align: backend.AlignRight})
	}
	if !leftRect.Empty() {
		surface.DrawText(leftRect, leftRect, s.Left(), backend.TextStyle{Foreground: left, Background: bg})
	}
}
