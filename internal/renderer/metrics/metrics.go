// Package metrics provides font metrics for sizing the gutter and the
// document's blocks.
//
// The renderer only needs two numbers from a font: the advance of a decimal
// digit (gutter width is a whole number of digits) and the line height
// (every visible block is one line tall). Terminal hosts use Fixed cell
// metrics; pixel hosts measure an x/image font.Face.
package metrics

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// FontMetrics lets tests and hosts supply font measurements without a
// real font.
type FontMetrics interface {
	// DigitWidth returns the advance of the digit '9' in pixels.
	DigitWidth() int

	// LineHeight returns the height of one text line in pixels.
	LineHeight() int
}

// Fixed reports constant metrics. A terminal host uses Fixed{1, 1}: one
// cell per digit, one row per line.
type Fixed struct {
	Digit int
	Line  int
}

// Cells returns the metrics of a character-cell display.
func Cells() Fixed {
	return Fixed{Digit: 1, Line: 1}
}

// DigitWidth implements FontMetrics.
func (f Fixed) DigitWidth() int { return f.Digit }

// LineHeight implements FontMetrics.
func (f Fixed) LineHeight() int { return f.Line }

// Face measures an x/image font face.
type Face struct {
	face  font.Face
	digit int
	line  int
}

// NewFace wraps face, measuring it once.
func NewFace(face font.Face) *Face {
	m := face.Metrics()
	line := m.Height.Ceil()
	if asc := (m.Ascent + m.Descent).Ceil(); asc > line {
		line = asc
	}
	return &Face{
		face:  face,
		digit: font.MeasureString(face, "9").Ceil(),
		line:  line,
	}
}

// Basic returns metrics for the fixed 7x13 bitmap face.
func Basic() *Face {
	return NewFace(basicfont.Face7x13)
}

// GoMono returns metrics for Go Mono at the given point size (72 DPI, so
// points equal pixels).
func GoMono(size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size %v must be positive", size)
	}
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing Go Mono: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Go Mono face: %w", err)
	}
	return NewFace(face), nil
}

// FontFace returns the underlying face for drawing.
func (f *Face) FontFace() font.Face { return f.face }

// DigitWidth implements FontMetrics.
func (f *Face) DigitWidth() int { return f.digit }

// LineHeight implements FontMetrics.
func (f *Face) LineHeight() int { return f.line }

// Ascent returns the distance from the top of a line to its baseline.
func (f *Face) Ascent() int { return f.face.Metrics().Ascent.Ceil() }
