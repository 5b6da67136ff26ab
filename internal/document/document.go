package document

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/dshills/gutterview/internal/document/rope"
	"github.com/dshills/gutterview/internal/renderer/core"
)

// Errors returned by document operations.
var (
	ErrLineOutOfRange = errors.New("line out of range")
	ErrRangeInvalid   = errors.New("invalid line range")
	ErrLineHeight     = errors.New("line height must be positive")
)

// Document is an ordered sequence of text lines.
// All methods are safe for concurrent use, but the renderer expects all
// mutations to happen on the host's event thread.
//
// The text lives in a rope; line i spans from the i-th newline to the next.
// Visibility is tracked only while something is folded.
type Document struct {
	mu sync.RWMutex

	text       rope.Rope
	lineHeight int

	// hidden and visible are nil while folded == 0.
	hidden  []bool
	visible fenwick
	folded  int
}

// New creates a document holding a single empty line.
// lineHeight is the pixel height of every visible line.
func New(lineHeight int) *Document {
	return newDocument(rope.New(), lineHeight)
}

// FromString creates a document from text, splitting on newlines.
// A trailing newline does not produce an extra empty line.
func FromString(s string, lineHeight int) *Document {
	return newDocument(rope.FromLines(splitLines(s)), lineHeight)
}

// FromReader reads all lines from r.
func FromReader(r io.Reader, lineHeight int) (*Document, error) {
	var b rope.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for first := true; scanner.Scan(); first = false {
		if !first {
			_ = b.WriteByte('\n')
		}
		b.WriteString(strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return newDocument(b.Build(), lineHeight), nil
}

func newDocument(text rope.Rope, lineHeight int) *Document {
	if lineHeight <= 0 {
		panic(fmt.Sprintf("document: %v (%d)", ErrLineHeight, lineHeight))
	}
	return &Document{text: text, lineHeight: lineHeight}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// isHidden reports whether line i is folded (internal, no lock).
func (d *Document) isHidden(i int) bool {
	return d.folded > 0 && d.hidden[i]
}

// visibleBefore counts the visible lines in [0, i) (internal, no lock).
func (d *Document) visibleBefore(i int) int {
	if d.folded == 0 {
		return min(max(i, 0), d.text.LineCount())
	}
	return d.visible.prefix(max(i, 0))
}

// visibleTotal counts the visible lines (internal, no lock).
func (d *Document) visibleTotal() int {
	return d.text.LineCount() - d.folded
}

// visibleAt returns the line of the k-th (0-based) visible line
// (internal, no lock). The caller guarantees k < visibleTotal().
func (d *Document) visibleAt(k int) int {
	if d.folded == 0 {
		return k
	}
	return d.visible.find(k + 1)
}

// BlockCount returns the number of lines. It is always at least 1.
func (d *Document) BlockCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text.LineCount()
}

// VisibleCount returns the number of lines that are not folded.
func (d *Document) VisibleCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.visibleTotal()
}

// LineHeight returns the pixel height of a visible line.
func (d *Document) LineHeight() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lineHeight
}

// SetLineHeight changes the pixel height of every visible line,
// typically after a font change.
func (d *Document) SetLineHeight(h int) error {
	if h <= 0 {
		return fmt.Errorf("set line height %d: %w", h, ErrLineHeight)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lineHeight = h
	return nil
}

// ContentHeight returns the total pixel height of all visible lines.
func (d *Document) ContentHeight() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.visibleTotal() * d.lineHeight
}

// Line returns the text of line i.
func (d *Document) Line(i int) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= d.text.LineCount() {
		return "", false
	}
	return d.text.LineText(i), true
}

// Text returns the document joined with newlines.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text.String()
}

// Block returns the block for line i.
func (d *Document) Block(i int) (core.Block, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= d.text.LineCount() {
		return core.Block{}, false
	}
	return d.block(i), true
}

// block builds the block for line i (internal, no lock).
func (d *Document) block(i int) core.Block {
	b := core.Block{Index: i, Visible: !d.isHidden(i)}
	if b.Visible {
		b.Height = d.lineHeight
	}
	return b
}

// IsVisible reports whether line i is not folded.
func (d *Document) IsVisible(i int) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return i >= 0 && i < d.text.LineCount() && !d.isHidden(i)
}

// FirstVisibleBlockFrom returns the visible block that covers the given
// absolute pixel offset. Offsets past the end map to the last visible block.
// Returns false when every line is folded.
func (d *Document) FirstVisibleBlockFrom(scrollOffset int) (core.Block, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	total := d.visibleTotal()
	if total == 0 {
		return core.Block{}, false
	}
	k := min(max(scrollOffset, 0)/d.lineHeight, total-1)
	return d.block(d.visibleAt(k)), true
}

// Next returns the next visible block after b.
// Returns false at the end of the document.
func (d *Document) Next(b core.Block) (core.Block, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if b.Index < -1 || b.Index >= d.text.LineCount()-1 {
		return core.Block{}, false
	}
	rank := d.visibleBefore(b.Index + 1)
	if rank >= d.visibleTotal() {
		return core.Block{}, false
	}
	return d.block(d.visibleAt(rank)), true
}

// BlockTop returns the absolute pixel top of block b.
func (d *Document) BlockTop(b core.Block) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.visibleBefore(b.Index) * d.lineHeight
}

// Insert inserts text before line at. Text containing newlines inserts
// several lines. at may equal BlockCount to append.
// Returns the new block count.
func (d *Document) Insert(at int, text string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.text.LineCount()
	if at < 0 || at > n {
		return n, fmt.Errorf("insert at %d: %w", at, ErrLineOutOfRange)
	}

	added := splitLines(text)
	joined := strings.Join(added, "\n")
	if at < n {
		d.text = d.text.Insert(d.text.LineStartOffset(at), joined+"\n")
	} else {
		d.text = d.text.Insert(d.text.Len(), "\n"+joined)
	}

	if d.folded > 0 {
		d.hidden = slices.Insert(d.hidden, at, make([]bool, len(added))...)
		d.visible.build(d.hidden)
	}
	return d.text.LineCount(), nil
}

// Append adds text as new lines at the end of the document.
func (d *Document) Append(text string) int {
	n, _ := d.Insert(d.BlockCount(), text)
	return n
}

// Remove deletes line at. Removing the only line leaves one empty line,
// so the block count never drops below 1.
// Returns the new block count.
func (d *Document) Remove(at int) (int, error) {
	return d.RemoveRange(at, at)
}

// RemoveRange deletes lines from..to inclusive.
// Returns the new block count.
func (d *Document) RemoveRange(from, to int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.text.LineCount()
	if from > to {
		return n, fmt.Errorf("remove %d..%d: %w", from, to, ErrRangeInvalid)
	}
	if from < 0 || to >= n {
		return n, fmt.Errorf("remove %d..%d: %w", from, to, ErrLineOutOfRange)
	}

	switch {
	case to < n-1:
		d.text = d.text.Delete(d.text.LineStartOffset(from), d.text.LineStartOffset(to+1))
	case from > 0:
		// Last lines: take the newline that ends the line before them
		d.text = d.text.Delete(d.text.LineEndOffset(from-1), d.text.Len())
	default:
		d.text = rope.New()
	}

	if d.folded > 0 {
		d.hidden = slices.Delete(d.hidden, from, to+1)
		if len(d.hidden) == 0 {
			d.hidden = []bool{false}
		}
		d.refold()
	}
	return d.text.LineCount(), nil
}

// Set replaces the text of line at. Newlines are not allowed to change the
// block count here; use Insert for that.
func (d *Document) Set(at int, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if at < 0 || at >= d.text.LineCount() {
		return fmt.Errorf("set line %d: %w", at, ErrLineOutOfRange)
	}
	d.text = d.text.Replace(d.text.LineStartOffset(at), d.text.LineEndOffset(at), strings.ReplaceAll(text, "\n", " "))
	return nil
}

// Fold hides lines from..to inclusive.
func (d *Document) Fold(from, to int) error {
	return d.setHidden(from, to, true)
}

// Unfold shows lines from..to inclusive.
func (d *Document) Unfold(from, to int) error {
	return d.setHidden(from, to, false)
}

func (d *Document) setHidden(from, to int, hidden bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if from > to {
		return fmt.Errorf("fold %d..%d: %w", from, to, ErrRangeInvalid)
	}
	if from < 0 || to >= d.text.LineCount() {
		return fmt.Errorf("fold %d..%d: %w", from, to, ErrLineOutOfRange)
	}

	if d.folded == 0 {
		if !hidden {
			return nil
		}
		d.hidden = make([]bool, d.text.LineCount())
		d.visible.build(d.hidden)
	}

	for i := from; i <= to; i++ {
		if d.hidden[i] == hidden {
			continue
		}
		d.hidden[i] = hidden
		if hidden {
			d.folded++
			d.visible.add(i, -1)
		} else {
			d.folded--
			d.visible.add(i, 1)
		}
	}
	if d.folded == 0 {
		d.hidden = nil
		d.visible = fenwick{}
	}
	return nil
}

// refold recounts folded lines and rebuilds the visibility index after
// lines were removed (internal, no lock).
func (d *Document) refold() {
	d.folded = 0
	for _, h := range d.hidden {
		if h {
			d.folded++
		}
	}
	if d.folded == 0 {
		d.hidden = nil
		d.visible = fenwick{}
		return
	}
	d.visible.build(d.hidden)
}
