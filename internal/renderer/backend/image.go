package backend

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Image is a Surface backed by an *image.RGBA.
type Image struct {
	img    *image.RGBA
	face   font.Face
	ascent int
}

// NewImage creates an image surface of the given size that draws text
// with face.
func NewImage(size image.Point, face font.Face) *Image {
	s := &Image{img: image.NewRGBA(image.Rectangle{Max: size})}
	s.SetFace(face)
	return s
}

// SetFace changes the font used by DrawText.
func (s *Image) SetFace(face font.Face) {
	s.face = face
	s.ascent = face.Metrics().Ascent.Ceil()
}

// Face returns the font used by DrawText.
func (s *Image) Face() font.Face {
	return s.face
}

// RGBA returns the backing image. Callers must not retain it across Resize.
func (s *Image) RGBA() *image.RGBA {
	return s.img
}

// Bounds implements Surface.
func (s *Image) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// Resize implements Resizer. Content in the overlap of the old and new
// size is kept.
func (s *Image) Resize(size image.Point) {
	if s.img.Bounds().Size() == size {
		return
	}
	next := image.NewRGBA(image.Rectangle{Max: size})
	draw.Copy(next, image.Point{}, s.img, s.img.Bounds().Intersect(next.Bounds()), draw.Src, nil)
	s.img = next
}

// Fill implements Surface.
func (s *Image) Fill(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawText implements Surface. The baseline sits at row.Min.Y plus the
// face ascent.
func (s *Image) DrawText(row, clip image.Rectangle, text string, st TextStyle) {
	clip = clip.Intersect(row).Intersect(s.img.Bounds())
	if clip.Empty() || text == "" {
		return
	}

	d := font.Drawer{
		Dst:  s.img.SubImage(clip).(*image.RGBA),
		Src:  image.NewUniform(st.Foreground),
		Face: s.face,
	}

	x := row.Min.X
	if st.Align == AlignRight {
		x = row.Max.X - d.MeasureString(text).Ceil()
	}
	d.Dot = fixed.P(x, row.Min.Y+s.ascent)
	d.DrawString(text)
}

// Scroll implements Surface.
func (s *Image) Scroll(r image.Rectangle, dy int) {
	src, dst, ok := scrollSpans(r.Intersect(s.img.Bounds()), dy)
	if !ok {
		return
	}
	draw.Copy(s.img, dst, s.img, src, draw.Src, nil)
}

// Equal reports whether two RGBA images have identical bounds and pixels.
func Equal(a, b *image.RGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	r := a.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		ra := a.Pix[a.PixOffset(r.Min.X, y):a.PixOffset(r.Max.X, y)]
		rb := b.Pix[b.PixOffset(r.Min.X, y):b.PixOffset(r.Max.X, y)]
		if string(ra) != string(rb) {
			return false
		}
	}
	return true
}

// FirstDiff returns the first pixel where a and b differ.
// ok is false when the images are equal or have different bounds.
func FirstDiff(a, b *image.RGBA) (p image.Point, ok bool) {
	if a.Bounds() != b.Bounds() {
		return image.Point{}, false
	}
	r := a.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
				return image.Pt(x, y), true
			}
		}
	}
	return image.Point{}, false
}
