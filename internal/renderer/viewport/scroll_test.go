package viewport

import "testing"

func TestClampScroll(t *testing.T) {
	tests := []struct {
		offset, content, view, want int
	}{
		{-5, 100, 40, 0},
		{30, 100, 40, 30},
		{80, 100, 40, 60},
		{10, 20, 40, 0},
	}
	for _, tt := range tests {
		if got := ClampScroll(tt.offset, tt.content, tt.view); got != tt.want {
			t.Errorf("ClampScroll(%d, %d, %d) = %d, want %d", tt.offset, tt.content, tt.view, got, tt.want)
		}
	}
}

func TestReveal(t *testing.T) {
	m := DefaultMargins(1, 10)

	tests := []struct {
		name   string
		offset int
		top    int
		want   int
	}{
		{"already visible", 0, 50, 0},
		{"above", 100, 40, 30},
		{"below", 0, 120, 40},
		{"inside margin bottom", 0, 85, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reveal(tt.offset, 100, tt.top, 10, m); got != tt.want {
				t.Errorf("Reveal() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRevealLimitsMargins(t *testing.T) {
	// Margins larger than a third of the view are cut down
	got := Reveal(0, 30, 50, 10, Margins{Top: 100, Bottom: 100})
	if got != 50+10+10-30 {
		t.Errorf("Reveal() = %d, want %d", got, 40)
	}
}

func TestScrollPercent(t *testing.T) {
	if got := ScrollPercent(30, 100, 40); got != 0.5 {
		t.Errorf("ScrollPercent = %v, want 0.5", got)
	}
	if got := ScrollPercent(0, 10, 40); got != 0 {
		t.Errorf("ScrollPercent short doc = %v, want 0", got)
	}
}
