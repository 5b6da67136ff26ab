package metrics

import (
	"testing"
)

func TestCells(t *testing.T) {
	m := Cells()
	if m.DigitWidth() != 1 || m.LineHeight() != 1 {
		t.Errorf("Cells() = %d x %d, want 1 x 1", m.DigitWidth(), m.LineHeight())
	}
}

func TestFixed(t *testing.T) {
	var m FontMetrics = Fixed{Digit: 8, Line: 18}
	if m.DigitWidth() != 8 {
		t.Errorf("DigitWidth() = %d, want 8", m.DigitWidth())
	}
	if m.LineHeight() != 18 {
		t.Errorf("LineHeight() = %d, want 18", m.LineHeight())
	}
}

func TestBasic(t *testing.T) {
	m := Basic()
	if m.DigitWidth() != 7 {
		t.Errorf("DigitWidth() = %d, want 7", m.DigitWidth())
	}
	if m.LineHeight() < 13 {
		t.Errorf("LineHeight() = %d, want at least 13", m.LineHeight())
	}
	if m.Ascent() <= 0 || m.Ascent() > m.LineHeight() {
		t.Errorf("Ascent() = %d out of range", m.Ascent())
	}
	if m.FontFace() == nil {
		t.Error("FontFace() should not be nil")
	}
}

func TestGoMono(t *testing.T) {
	small, err := GoMono(10)
	if err != nil {
		t.Fatalf("GoMono(10) error = %v", err)
	}
	large, err := GoMono(20)
	if err != nil {
		t.Fatalf("GoMono(20) error = %v", err)
	}
	if small.DigitWidth() <= 0 {
		t.Errorf("DigitWidth() = %d, want positive", small.DigitWidth())
	}
	if large.DigitWidth() <= small.DigitWidth() {
		t.Errorf("20pt digit %d should be wider than 10pt digit %d", large.DigitWidth(), small.DigitWidth())
	}
	if large.LineHeight() <= small.LineHeight() {
		t.Errorf("20pt line %d should be taller than 10pt line %d", large.LineHeight(), small.LineHeight())
	}
}

func TestGoMonoRejectsBadSize(t *testing.T) {
	if _, err := GoMono(0); err == nil {
		t.Error("GoMono(0) should fail")
	}
}
