// Package rope stores document text in an immutable B+ tree of chunks.
//
// Leaves hold text chunks; internal nodes cache the byte and newline counts
// of their subtrees, so finding the start of a line is a walk from the root
// that never touches unrelated text. Edits return new ropes and share every
// untouched subtree with the original.
//
//	r := rope.FromString("one\ntwo")
//	r = r.Insert(r.LineStartOffset(1), "new\n") // "one\nnew\ntwo"
//	r.LineText(1)                               // "new"
package rope

import "strings"

// maxHeight bounds the tree height before an edit rebuilds the tree from
// its chunks. Repeated edits at one position can otherwise stack
// single-child nodes.
const maxHeight = 24

// Rope is an immutable sequence of text. The zero value is empty.
type Rope struct {
	root *Node
}

// New returns an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope holding s.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// buildFromChunks builds a balanced tree bottom-up.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var nodes []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		nodes = append(nodes, newLeafNodeWithChunks(append([]Chunk(nil), chunks[i:end]...)))
	}
	for len(nodes) > 1 {
		var parents []*Node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			parents = append(parents, newInternalNode(append([]*Node(nil), nodes[i:end]...)))
		}
		nodes = parents
	}
	return Rope{root: nodes[0]}
}

// Len returns the length in bytes.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// LineCount returns the number of lines: newlines plus one.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Height returns the number of tree levels.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// String returns the whole text.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(r.Len()))
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in [start, end).
func (r Rope) Slice(start, end ByteOffset) string {
	if r.root == nil || start >= end {
		return ""
	}
	return r.root.textInRange(start, end)
}

// Insert returns a rope with text inserted at offset. Offsets past the end
// append.
func (r Rope) Insert(offset ByteOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.IsEmpty() {
		return FromString(text)
	}
	if offset == 0 {
		return FromString(text).Concat(r)
	}
	if offset >= r.Len() {
		return r.Concat(FromString(text))
	}

	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete returns a rope without the bytes in [start, end). The range is
// clamped to the rope.
func (r Rope) Delete(start, end ByteOffset) Rope {
	n := r.Len()
	end = min(end, n)
	if r.root == nil || start >= end {
		return r
	}

	switch {
	case start == 0 && end == n:
		return New()
	case start == 0:
		_, right := r.Split(end)
		return right
	case end == n:
		left, _ := r.Split(start)
		return left
	}

	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Replace returns a rope with [start, end) replaced by text.
func (r Rope) Replace(start, end ByteOffset, text string) Rope {
	if start >= end {
		return r.Insert(start, text)
	}
	return r.Delete(start, end).Insert(start, text)
}

// Split returns [0, offset) and [offset, Len()).
func (r Rope) Split(offset ByteOffset) (Rope, Rope) {
	if r.root == nil || offset == 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat returns r followed by other.
func (r Rope) Concat(other Rope) Rope {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rope{root: concat(r.root, other.root)}.balanced()
}

// balanced rebuilds the tree when it has grown too tall.
func (r Rope) balanced() Rope {
	if r.root == nil || r.root.height < maxHeight {
		return r
	}
	var chunks []Chunk
	r.root.collectChunks(&chunks)
	return buildFromChunks(chunks)
}

// LineStartOffset returns the offset of the first byte of line (0-based).
// Lines past the end map to Len().
func (r Rope) LineStartOffset(line int) ByteOffset {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	return r.root.lineStart(line)
}

// LineEndOffset returns the offset of line's newline, or Len() for the
// last line.
func (r Rope) LineEndOffset(line int) ByteOffset {
	line = max(line, 0)
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	return r.LineStartOffset(line+1) - 1
}

// LineText returns line without its newline.
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}
