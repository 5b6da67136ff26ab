// Package layout expands tabs for painting and maps cursor columns to
// display columns.
package layout

import "strings"

// DefaultTabWidth is used when no tab width is configured.
const DefaultTabWidth = 4

// TabExpander expands tabs to the next tab stop.
type TabExpander struct {
	tabWidth int
}

// NewTabExpander creates a tab expander with the given tab width.
// Widths below 1 use DefaultTabWidth.
func NewTabExpander(tabWidth int) *TabExpander {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	return &TabExpander{tabWidth: tabWidth}
}

// TabWidth returns the current tab width.
func (t *TabExpander) TabWidth() int {
	return t.tabWidth
}

// SetTabWidth sets the tab width. Widths below 1 are raised to 1.
func (t *TabExpander) SetTabWidth(width int) {
	t.tabWidth = max(width, 1)
}

// NextTabStop returns the first tab stop after col.
func (t *TabExpander) NextTabStop(col int) int {
	return col + t.tabWidth - col%t.tabWidth
}

// ExpandTabs replaces each tab with spaces up to the next tab stop.
// Strings without tabs are returned unchanged.
func (t *TabExpander) ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + t.tabWidth)
	col := 0
	for _, r := range s {
		if r != '\t' {
			sb.WriteRune(r)
			col++
			continue
		}
		next := t.NextTabStop(col)
		sb.WriteString(strings.Repeat(" ", next-col))
		col = next
	}
	return sb.String()
}

// DisplayColumn returns the display column of the rune at index runeCol
// in s. Indexes past the end continue one column per rune.
func (t *TabExpander) DisplayColumn(s string, runeCol int) int {
	col, i := 0, 0
	for _, r := range s {
		if i == runeCol {
			return col
		}
		if r == '\t' {
			col = t.NextTabStop(col)
		} else {
			col++
		}
		i++
	}
	return col + runeCol - i
}
