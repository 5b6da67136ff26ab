package host

import (
	"fmt"
	"image"

	"github.com/dshills/gutterview/internal/renderer/backend"
	"github.com/dshills/gutterview/internal/renderer/gutter"
)

// Mismatch reports the first pixel where an incrementally painted surface
// differs from a full repaint of the same state.
type Mismatch struct {
	Surface string // "gutter" or "text"
	At      image.Point
}

// Error implements the error interface.
func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s differs from a full repaint at %v", m.Surface, m.At)
}

// VerifyImages repaints the current state from scratch and compares it
// with the image surfaces this text area paints to. Call it after Paint.
// Returns a *Mismatch when they differ.
func (t *TextArea) VerifyImages(gutterImg, textImg *backend.Image) error {
	ref := backend.NewImage(gutterImg.Bounds().Size(), gutterImg.Face())
	g := gutter.New(ref, t.vp, t.gutter.Config())
	g.SetCurrentLine(t.gutter.CurrentLine())
	g.PaintAll()
	if p, diff := backend.FirstDiff(gutterImg.RGBA(), ref.RGBA()); diff {
		return &Mismatch{Surface: "gutter", At: p}
	}

	textRef := backend.NewImage(textImg.Bounds().Size(), textImg.Face())
	t.PaintText(textRef, textRef.Bounds())
	if p, diff := backend.FirstDiff(textImg.RGBA(), textRef.RGBA()); diff {
		return &Mismatch{Surface: "text", At: p}
	}
	return nil
}
