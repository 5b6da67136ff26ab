package theme

import (
	"errors"
	"image/color"
	"testing"
)

func TestNames(t *testing.T) {
	want := []string{"light", "dark", "ocean", "sunset", "forest"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDefaultIsLight(t *testing.T) {
	th := Default()
	if th.Name != "light" {
		t.Errorf("Default().Name = %q, want light", th.Name)
	}
	if th.GutterBackground != (color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}) {
		t.Errorf("GutterBackground = %v, want light gray", th.GutterBackground)
	}
	if th.GutterForeground != (color.RGBA{A: 0xff}) {
		t.Errorf("GutterForeground = %v, want black", th.GutterForeground)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		th, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", name, err)
		}
		if th.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, th.Name)
		}
		if th.GutterBackground == th.GutterForeground {
			t.Errorf("%s: gutter colours must differ", name)
		}
		if th.CurrentLine == th.GutterBackground {
			t.Errorf("%s: current line colour must differ from gutter background", name)
		}
	}

	if _, err := Lookup("DARK"); err != nil {
		t.Errorf("Lookup should be case-insensitive: %v", err)
	}
	if _, err := Lookup("neon"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("Lookup(neon) error = %v, want ErrUnknownTheme", err)
	}
}

func TestByIndex(t *testing.T) {
	th, err := ByIndex(2)
	if err != nil {
		t.Fatalf("ByIndex(2) error = %v", err)
	}
	if th.Name != "ocean" {
		t.Errorf("ByIndex(2).Name = %q, want ocean", th.Name)
	}
	if Hex(th.Background) != "#007acc" {
		t.Errorf("ocean background = %s, want #007acc", Hex(th.Background))
	}
	if _, err := ByIndex(5); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("ByIndex(5) error = %v, want ErrUnknownTheme", err)
	}
}
