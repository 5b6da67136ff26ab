package gutter

import (
	"fmt"
	"strconv"
	"strings"
)

// LineNumberMode defines how line numbers are displayed.
type LineNumberMode uint8

const (
	// LineNumberAbsolute shows absolute line numbers (1, 2, 3, ...).
	LineNumberAbsolute LineNumberMode = iota

	// LineNumberRelative shows relative line numbers from the current line.
	LineNumberRelative

	// LineNumberHybrid shows absolute for the current line, relative for others.
	LineNumberHybrid
)

var modeNames = [...]string{"absolute", "relative", "hybrid"}

// String returns the configuration name of the mode.
func (m LineNumberMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("LineNumberMode(%d)", m)
}

// ParseMode parses a mode name (case-insensitive).
func ParseMode(s string) (LineNumberMode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return LineNumberMode(i), nil
		}
	}
	return LineNumberAbsolute, fmt.Errorf("unknown line number mode %q", s)
}

// LineNumberFormatter formats line numbers according to the mode.
type LineNumberFormatter struct {
	mode        LineNumberMode
	currentLine int
}

// NewLineNumberFormatter creates a new line number formatter.
func NewLineNumberFormatter(mode LineNumberMode) *LineNumberFormatter {
	return &LineNumberFormatter{mode: mode}
}

// Mode returns the current mode.
func (f *LineNumberFormatter) Mode() LineNumberMode {
	return f.mode
}

// SetMode changes the line number mode.
func (f *LineNumberFormatter) SetMode(mode LineNumberMode) {
	f.mode = mode
}

// CurrentLine returns the 0-based current line.
func (f *LineNumberFormatter) CurrentLine() int {
	return f.currentLine
}

// SetCurrentLine sets the current line for relative numbers.
func (f *LineNumberFormatter) SetCurrentLine(line int) {
	f.currentLine = line
}

// Number returns the number displayed for the 0-based line.
func (f *LineNumberFormatter) Number(line int) int {
	switch f.mode {
	case LineNumberRelative:
		return absDiff(line, f.currentLine)

	case LineNumberHybrid:
		if line == f.currentLine {
			return line + 1
		}
		return absDiff(line, f.currentLine)

	default: // LineNumberAbsolute
		return line + 1
	}
}

// Format returns the text displayed for the 0-based line and whether it is
// the current line.
func (f *LineNumberFormatter) Format(line int) (string, bool) {
	return FormatNumber(f.Number(line)), line == f.currentLine
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// DigitCount returns the number of decimal digits used to size the gutter
// for n lines: 1 + floor(log10(max(1, n))).
func DigitCount(n int) int {
	digits := 1
	for n = max(n, 1); n >= 10; n /= 10 {
		digits++
	}
	return digits
}

// FormatNumber converts a number to its decimal text.
func FormatNumber(n int) string {
	return strconv.Itoa(n)
}
