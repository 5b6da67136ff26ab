package backend

import (
	"image"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.Shutdown)
	screen.SetSize(40, 10)
	return term, screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	mainc, _, _, _ := screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return mainc
}

func TestRegionBoundsAreLocal(t *testing.T) {
	term, _ := newSimTerminal(t)
	r := term.Region(image.Rect(5, 2, 9, 8))

	if r.Bounds() != image.Rect(0, 0, 4, 6) {
		t.Errorf("Bounds() = %v", r.Bounds())
	}

	r.Resize(image.Pt(3, 4))
	if r.Rect() != image.Rect(5, 2, 8, 6) {
		t.Errorf("Rect() after Resize = %v", r.Rect())
	}
}

func TestRegionDrawTextRightAligned(t *testing.T) {
	term, screen := newSimTerminal(t)
	r := term.Region(image.Rect(2, 1, 7, 5))

	r.Fill(r.Bounds(), gray)
	r.DrawText(image.Rect(0, 1, 4, 2), r.Bounds(), "12", TextStyle{Foreground: black, Background: gray, Align: AlignRight})

	if got := runeAt(screen, 4, 2); got != '1' {
		t.Errorf("cell (4,2) = %q, want '1'", got)
	}
	if got := runeAt(screen, 5, 2); got != '2' {
		t.Errorf("cell (5,2) = %q, want '2'", got)
	}
	if got := runeAt(screen, 6, 2); got != ' ' {
		t.Errorf("cell (6,2) = %q, want blank margin", got)
	}
}

func TestRegionDrawTextClips(t *testing.T) {
	term, screen := newSimTerminal(t)
	r := term.Region(image.Rect(0, 0, 6, 3))
	r.Fill(r.Bounds(), gray)

	r.DrawText(image.Rect(0, 0, 6, 1), image.Rect(4, 0, 6, 1), "abcdef", TextStyle{Foreground: black})

	if got := runeAt(screen, 3, 0); got != ' ' {
		t.Errorf("cell (3,0) = %q, want clipped blank", got)
	}
	if got := runeAt(screen, 4, 0); got != 'e' {
		t.Errorf("cell (4,0) = %q, want 'e'", got)
	}
}

func TestRegionScroll(t *testing.T) {
	term, screen := newSimTerminal(t)
	r := term.Region(image.Rect(0, 0, 3, 5))
	for y, s := range []string{"a", "b", "c", "d", "e"} {
		r.DrawText(image.Rect(0, y, 3, y+1), r.Bounds(), s, TextStyle{Foreground: black})
	}

	r.Scroll(r.Bounds(), -2)

	want := []rune{'c', 'd', 'e', 'd', 'e'}
	for y, w := range want {
		if got := runeAt(screen, 0, y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyPgDn, KeyPageDown},
		{tcell.KeyUp, KeyUp},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyCtrlQ, KeyCtrlQ},
		{tcell.KeyF5, KeyNone},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConvertMouseButton(t *testing.T) {
	if convertMouseButton(tcell.WheelDown) != MouseWheelDown {
		t.Error("WheelDown not converted")
	}
	if convertMouseButton(tcell.ButtonNone) != MouseNone {
		t.Error("ButtonNone should map to MouseNone")
	}
}

func TestInterruptWakesPollEvent(t *testing.T) {
	term, _ := newSimTerminal(t)
	if err := term.Interrupt("reload"); err != nil {
		t.Fatalf("Interrupt() error = %v", err)
	}
	for {
		ev, ok := term.PollEvent()
		if !ok {
			t.Fatal("PollEvent() returned no event")
		}
		if ev.Type != EventInterrupt {
			continue
		}
		if ev.Data != "reload" {
			t.Errorf("Data = %v, want reload", ev.Data)
		}
		return
	}
}
