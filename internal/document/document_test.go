package document

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

const lh = 18

func numbered(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		sb.WriteString("line ")
		sb.WriteString(strings.Repeat("x", i%7))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestNewDocumentHasOneLine(t *testing.T) {
	d := New(lh)
	if d.BlockCount() != 1 {
		t.Errorf("BlockCount() = %d, want 1", d.BlockCount())
	}
	if line, ok := d.Line(0); !ok || line != "" {
		t.Errorf("Line(0) = %q, %v; want empty, true", line, ok)
	}
}

func TestNewDocumentPanicsOnBadLineHeight(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero line height")
		}
	}()
	New(0)
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 1},
		{"single", "hello", 1},
		{"trailing newline", "a\nb\n", 2},
		{"crlf", "a\r\nb\r\nc", 3},
		{"nine", numbered(9), 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromString(tt.text, lh)
			if d.BlockCount() != tt.want {
				t.Errorf("BlockCount() = %d, want %d", d.BlockCount(), tt.want)
			}
		})
	}
}

func TestFromReader(t *testing.T) {
	d, err := FromReader(strings.NewReader("one\r\ntwo\nthree\n"), lh)
	if err != nil {
		t.Fatalf("FromReader() error = %v", err)
	}
	if d.BlockCount() != 3 {
		t.Fatalf("BlockCount() = %d, want 3", d.BlockCount())
	}
	if line, _ := d.Line(0); line != "one" {
		t.Errorf("Line(0) = %q, want %q", line, "one")
	}

	empty, err := FromReader(strings.NewReader(""), lh)
	if err != nil {
		t.Fatalf("FromReader(empty) error = %v", err)
	}
	if empty.BlockCount() != 1 {
		t.Errorf("empty BlockCount() = %d, want 1", empty.BlockCount())
	}
}

func TestInsertAndRemove(t *testing.T) {
	d := FromString(numbered(9), lh)

	n, err := d.Insert(9, "tenth")
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if n != 10 {
		t.Errorf("Insert() count = %d, want 10", n)
	}
	if line, _ := d.Line(9); line != "tenth" {
		t.Errorf("Line(9) = %q, want tenth", line)
	}

	n, err = d.Remove(9)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if n != 9 {
		t.Errorf("Remove() count = %d, want 9", n)
	}

	n, err = d.Insert(0, "a\nb\nc")
	if err != nil {
		t.Fatalf("Insert(multi) error = %v", err)
	}
	if n != 12 {
		t.Errorf("Insert(multi) count = %d, want 12", n)
	}
	if line, _ := d.Line(1); line != "b" {
		t.Errorf("Line(1) = %q, want b", line)
	}
}

func TestInsertOutOfRange(t *testing.T) {
	d := New(lh)
	if _, err := d.Insert(5, "x"); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("Insert(5) error = %v, want ErrLineOutOfRange", err)
	}
	if _, err := d.Insert(-1, "x"); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("Insert(-1) error = %v, want ErrLineOutOfRange", err)
	}
}

func TestRemoveLastLineKeepsOne(t *testing.T) {
	d := FromString("only", lh)
	n, err := d.Remove(0)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	if line, _ := d.Line(0); line != "" {
		t.Errorf("Line(0) = %q, want empty", line)
	}
}

func TestRemoveRangeErrors(t *testing.T) {
	d := FromString(numbered(5), lh)
	if _, err := d.RemoveRange(3, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("RemoveRange(3,1) error = %v, want ErrRangeInvalid", err)
	}
	if _, err := d.RemoveRange(2, 9); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("RemoveRange(2,9) error = %v, want ErrLineOutOfRange", err)
	}
}

func TestSet(t *testing.T) {
	d := FromString("a\nb", lh)
	if err := d.Set(1, "c\nd"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if d.BlockCount() != 2 {
		t.Errorf("Set changed block count to %d", d.BlockCount())
	}
	if line, _ := d.Line(1); line != "c d" {
		t.Errorf("Line(1) = %q, want %q", line, "c d")
	}
	if err := d.Set(2, "x"); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("Set(2) error = %v, want ErrLineOutOfRange", err)
	}
}

func TestFirstVisibleBlockFrom(t *testing.T) {
	d := FromString(numbered(30), lh)

	tests := []struct {
		offset int
		want   int
	}{
		{-10, 0},
		{0, 0},
		{17, 0},
		{18, 1},
		{4*lh + 9, 4},
		{1000 * lh, 29},
	}

	for _, tt := range tests {
		b, ok := d.FirstVisibleBlockFrom(tt.offset)
		if !ok {
			t.Fatalf("FirstVisibleBlockFrom(%d) returned false", tt.offset)
		}
		if b.Index != tt.want {
			t.Errorf("FirstVisibleBlockFrom(%d) = %d, want %d", tt.offset, b.Index, tt.want)
		}
		if b.Height != lh || !b.Visible {
			t.Errorf("block %d: height %d visible %v", b.Index, b.Height, b.Visible)
		}
	}
}

func TestFoldAffectsGeometry(t *testing.T) {
	d := FromString(numbered(20), lh)

	if err := d.Fold(2, 5); err != nil {
		t.Fatalf("Fold() error = %v", err)
	}
	if d.VisibleCount() != 16 {
		t.Errorf("VisibleCount() = %d, want 16", d.VisibleCount())
	}
	if d.BlockCount() != 20 {
		t.Errorf("folding changed BlockCount() to %d", d.BlockCount())
	}
	if d.ContentHeight() != 16*lh {
		t.Errorf("ContentHeight() = %d, want %d", d.ContentHeight(), 16*lh)
	}

	b, _ := d.Block(3)
	if b.Visible || b.Height != 0 {
		t.Errorf("folded block = %+v, want invisible with zero height", b)
	}

	b6, _ := d.Block(6)
	if top := d.BlockTop(b6); top != 2*lh {
		t.Errorf("BlockTop(6) = %d, want %d", top, 2*lh)
	}

	first, _ := d.FirstVisibleBlockFrom(2 * lh)
	if first.Index != 6 {
		t.Errorf("FirstVisibleBlockFrom(2*lh) = %d, want 6", first.Index)
	}

	b1, _ := d.Block(1)
	next, ok := d.Next(b1)
	if !ok || next.Index != 6 {
		t.Errorf("Next(1) = %d, %v; want 6, true", next.Index, ok)
	}

	if err := d.Unfold(2, 5); err != nil {
		t.Fatalf("Unfold() error = %v", err)
	}
	next, _ = d.Next(b1)
	if next.Index != 2 {
		t.Errorf("after unfold Next(1) = %d, want 2", next.Index)
	}
}

func TestFoldEverything(t *testing.T) {
	d := FromString(numbered(4), lh)
	if err := d.Fold(0, 3); err != nil {
		t.Fatalf("Fold() error = %v", err)
	}
	if _, ok := d.FirstVisibleBlockFrom(0); ok {
		t.Error("FirstVisibleBlockFrom should fail when every line is folded")
	}
}

func TestFoldTrailingLinesEndsIteration(t *testing.T) {
	d := FromString(numbered(6), lh)
	if err := d.Fold(3, 5); err != nil {
		t.Fatalf("Fold() error = %v", err)
	}
	b2, _ := d.Block(2)
	if _, ok := d.Next(b2); ok {
		t.Error("Next should end when all remaining lines are folded")
	}
}

func TestFoldErrors(t *testing.T) {
	d := FromString(numbered(4), lh)
	if err := d.Fold(3, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("Fold(3,1) error = %v", err)
	}
	if err := d.Unfold(0, 10); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("Unfold(0,10) error = %v", err)
	}
}

func TestInsertKeepsFoldState(t *testing.T) {
	d := FromString(numbered(10), lh)
	_ = d.Fold(5, 6)
	if _, err := d.Insert(0, "new"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if d.IsVisible(6) || d.IsVisible(7) {
		t.Errorf("folded lines should move with the insert: 6=%v 7=%v", d.IsVisible(6), d.IsVisible(7))
	}
	if !d.IsVisible(5) {
		t.Error("line 5 should be visible after insert above the fold")
	}
}

func TestSetLineHeight(t *testing.T) {
	d := FromString(numbered(3), lh)
	if err := d.SetLineHeight(0); !errors.Is(err, ErrLineHeight) {
		t.Errorf("SetLineHeight(0) error = %v", err)
	}
	if err := d.SetLineHeight(20); err != nil {
		t.Fatalf("SetLineHeight(20) error = %v", err)
	}
	b, _ := d.Block(2)
	if b.Height != 20 || d.BlockTop(b) != 40 {
		t.Errorf("height %d top %d, want 20 40", b.Height, d.BlockTop(b))
	}
}

func TestRemoveFoldedLinesClearsFoldState(t *testing.T) {
	d := FromString(numbered(6), lh)
	_ = d.Fold(4, 5)
	if _, err := d.RemoveRange(3, 5); err != nil {
		t.Fatalf("RemoveRange() error = %v", err)
	}
	if d.VisibleCount() != 3 {
		t.Errorf("VisibleCount() = %d, want 3", d.VisibleCount())
	}
	if d.ContentHeight() != 3*lh {
		t.Errorf("ContentHeight() = %d, want %d", d.ContentHeight(), 3*lh)
	}
	if got := d.Text(); got != "line x\nline xx\nline xxx" {
		t.Errorf("Text() = %q", got)
	}
}

// TestRandomEditsMatchLineModel checks lines, folds and geometry against a
// plain slice after every edit.
func TestRandomEditsMatchLineModel(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	d := New(lh)
	lines := []string{""}
	hidden := []bool{false}

	for step := range 1500 {
		n := len(lines)
		switch op := rng.IntN(6); op {
		case 0, 1:
			at := rng.IntN(n + 1)
			text := strings.Repeat("ab\n", rng.IntN(3)) + "é" + strings.Repeat("z", rng.IntN(50))
			if _, err := d.Insert(at, text); err != nil {
				t.Fatalf("step %d: Insert(%d) error = %v", step, at, err)
			}
			added := strings.Split(text, "\n")
			lines = slices.Insert(lines, at, added...)
			hidden = slices.Insert(hidden, at, make([]bool, len(added))...)
		case 2:
			from := rng.IntN(n)
			to := min(from+rng.IntN(4), n-1)
			if _, err := d.RemoveRange(from, to); err != nil {
				t.Fatalf("step %d: RemoveRange(%d, %d) error = %v", step, from, to, err)
			}
			lines = slices.Delete(lines, from, to+1)
			hidden = slices.Delete(hidden, from, to+1)
			if len(lines) == 0 {
				lines, hidden = []string{""}, []bool{false}
			}
		case 3:
			at := rng.IntN(n)
			if err := d.Set(at, "set"); err != nil {
				t.Fatalf("step %d: Set(%d) error = %v", step, at, err)
			}
			lines[at] = "set"
		default:
			from := rng.IntN(n)
			to := min(from+rng.IntN(5), n-1)
			fold := op == 4
			var err error
			if fold {
				err = d.Fold(from, to)
			} else {
				err = d.Unfold(from, to)
			}
			if err != nil {
				t.Fatalf("step %d: fold(%d, %d) error = %v", step, from, to, err)
			}
			for i := from; i <= to; i++ {
				hidden[i] = fold
			}
		}

		if d.BlockCount() != len(lines) {
			t.Fatalf("step %d: BlockCount() = %d, want %d", step, d.BlockCount(), len(lines))
		}
		i := rng.IntN(len(lines))
		if got, _ := d.Line(i); got != lines[i] {
			t.Fatalf("step %d: Line(%d) = %q, want %q", step, i, got, lines[i])
		}
		visible := 0
		for j := range i {
			if !hidden[j] {
				visible++
			}
		}
		b, _ := d.Block(i)
		if b.Visible == hidden[i] {
			t.Fatalf("step %d: Block(%d).Visible = %v, want %v", step, i, b.Visible, !hidden[i])
		}
		if d.BlockTop(b) != visible*lh {
			t.Fatalf("step %d: BlockTop(%d) = %d, want %d", step, i, d.BlockTop(b), visible*lh)
		}
	}
	if d.Text() != strings.Join(lines, "\n") {
		t.Error("Text() diverged from the line model")
	}
}
