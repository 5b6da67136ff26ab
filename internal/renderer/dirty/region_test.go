package dirty

import (
	"image"
	"testing"
)

func TestBand(t *testing.T) {
	bounds := image.Rect(0, 0, 24, 288)

	tests := []struct {
		name string
		dy   int
		want Region
	}{
		{"no scroll", 0, Region{}},
		{"content up one line", -18, image.Rect(0, 270, 24, 288)},
		{"content down one line", 18, image.Rect(0, 0, 24, 18)},
		{"full page up", -288, bounds},
		{"beyond page down", 400, bounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Band(bounds, tt.dy); got != tt.want {
				t.Errorf("Band(%v, %d) = %v, want %v", bounds, tt.dy, got, tt.want)
			}
		})
	}
}

func TestBandEmptyBounds(t *testing.T) {
	if got := Band(Region{}, -5); !got.Empty() {
		t.Errorf("Band(empty) = %v, want empty", got)
	}
}

func TestAdjacent(t *testing.T) {
	tests := []struct {
		name string
		a, b Region
		want bool
	}{
		{"stacked", image.Rect(0, 0, 24, 18), image.Rect(0, 18, 24, 36), true},
		{"stacked reversed", image.Rect(0, 18, 24, 36), image.Rect(0, 0, 24, 18), true},
		{"side by side", image.Rect(0, 0, 10, 18), image.Rect(10, 0, 20, 18), true},
		{"gap", image.Rect(0, 0, 24, 18), image.Rect(0, 19, 24, 36), false},
		{"different widths", image.Rect(0, 0, 24, 18), image.Rect(0, 18, 20, 36), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Adjacent(tt.a, tt.b); got != tt.want {
				t.Errorf("Adjacent(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	a := image.Rect(0, 0, 24, 18)
	b := image.Rect(0, 10, 24, 40)

	m, ok := Merge(a, b)
	if !ok {
		t.Fatal("overlapping regions should merge")
	}
	if m != image.Rect(0, 0, 24, 40) {
		t.Errorf("Merge() = %v", m)
	}

	if _, ok := Merge(a, image.Rect(0, 100, 24, 118)); ok {
		t.Error("distant regions should not merge")
	}

	if m, ok := Merge(Region{}, a); !ok || m != a {
		t.Errorf("Merge(empty, a) = %v, %v", m, ok)
	}
}

func TestArea(t *testing.T) {
	if Area(image.Rect(0, 0, 10, 5)) != 50 {
		t.Error("Area of 10x5 should be 50")
	}
	if Area(Region{}) != 0 {
		t.Error("Area of empty should be 0")
	}
}
