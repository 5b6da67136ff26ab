package gutter

import "testing"

func TestDigitCount(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{9, 1},
		{10, 2},
		{99, 2},
		{100, 3},
		{999999, 6},
		{1000000, 7},
	}

	for _, tt := range tests {
		if got := DigitCount(tt.n); got != tt.want {
			t.Errorf("DigitCount(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestLineNumberFormatter(t *testing.T) {
	tests := []struct {
		mode    LineNumberMode
		line    int
		want    string
		current bool
	}{
		{LineNumberAbsolute, 0, "1", false},
		{LineNumberAbsolute, 9, "10", true},
		{LineNumberRelative, 9, "0", true},
		{LineNumberRelative, 4, "5", false},
		{LineNumberRelative, 12, "3", false},
		{LineNumberHybrid, 9, "10", true},
		{LineNumberHybrid, 7, "2", false},
	}

	for _, tt := range tests {
		f := NewLineNumberFormatter(tt.mode)
		f.SetCurrentLine(9)
		got, current := f.Format(tt.line)
		if got != tt.want || current != tt.current {
			t.Errorf("%v Format(%d) = %q, %v; want %q, %v", tt.mode, tt.line, got, current, tt.want, tt.current)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"absolute", "Relative", "HYBRID"} {
		m, err := ParseMode(name)
		if err != nil {
			t.Errorf("ParseMode(%q) error = %v", name, err)
			continue
		}
		if m.String() != map[string]string{"absolute": "absolute", "Relative": "relative", "HYBRID": "hybrid"}[name] {
			t.Errorf("ParseMode(%q) = %v", name, m)
		}
	}

	if _, err := ParseMode("octal"); err == nil {
		t.Error("ParseMode(octal) should fail")
	}
	if s := LineNumberMode(9).String(); s != "LineNumberMode(9)" {
		t.Errorf("String() = %q", s)
	}
}
