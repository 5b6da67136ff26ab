package viewport

// Scroll arithmetic in pixels. The host owns the scroll offset; these
// helpers only compute new values for it.

// Margins holds the number of pixels to keep between a revealed line and
// the viewport edges.
type Margins struct {
	Top    int
	Bottom int
}

// DefaultMargins returns margins of n lines of the given height.
func DefaultMargins(lines, lineHeight int) Margins {
	return Margins{Top: lines * lineHeight, Bottom: lines * lineHeight}
}

// maxMarginRatio limits margins to 1/3 of viewport height so a revealed
// line always has somewhere to go.
const maxMarginRatio = 3

// MaxScroll returns the largest scroll offset: the last line's bottom
// touches the viewport's bottom edge.
func MaxScroll(contentHeight, viewHeight int) int {
	return max(0, contentHeight-viewHeight)
}

// ClampScroll limits offset to [0, MaxScroll].
func ClampScroll(offset, contentHeight, viewHeight int) int {
	return min(max(offset, 0), MaxScroll(contentHeight, viewHeight))
}

// Reveal returns the scroll offset that makes the span [top, top+height)
// visible with the given margins, moving as little as possible.
// top is absolute. The result is not clamped to the content.
func Reveal(offset, viewHeight, top, height int, m Margins) int {
	limit := viewHeight / maxMarginRatio
	mt := min(m.Top, limit)
	mb := min(m.Bottom, limit)

	switch {
	case top-mt < offset:
		return top - mt
	case top+height+mb > offset+viewHeight:
		return top + height + mb - viewHeight
	default:
		return offset
	}
}

// ScrollPercent reports how far through the document the viewport is,
// from 0 to 1.
func ScrollPercent(offset, contentHeight, viewHeight int) float64 {
	maxScroll := MaxScroll(contentHeight, viewHeight)
	if maxScroll == 0 {
		return 0
	}
	return float64(ClampScroll(offset, contentHeight, viewHeight)) / float64(maxScroll)
}
