package rope

import "strings"

// Tree shape limits.
const (
	MaxChildren      = 8
	MaxChunksPerLeaf = 4
)

// Node is a rope tree node. Leaves (height 0) hold chunks; internal nodes
// hold children and a copy of each child's summary.
type Node struct {
	height  uint8
	summary TextSummary

	children       []*Node
	childSummaries []TextSummary

	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.Summary())
	}
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	n := &Node{
		children:       children,
		childSummaries: make([]TextSummary, len(children)),
	}
	for i, child := range children {
		n.height = max(n.height, child.height+1)
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
	return n
}

// IsLeaf reports whether n holds chunks.
func (n *Node) IsLeaf() bool {
	return n.height == 0 && len(n.children) == 0
}

// Len returns the subtree length in bytes.
func (n *Node) Len() ByteOffset {
	return n.summary.Bytes
}

func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.data)
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

func (n *Node) collectChunks(out *[]Chunk) {
	if n.IsLeaf() {
		*out = append(*out, n.chunks...)
		return
	}
	for _, child := range n.children {
		child.collectChunks(out)
	}
}

func (n *Node) textInRange(start, end ByteOffset) string {
	end = min(end, n.Len())
	if start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(end - start))
	n.appendRange(&sb, start, end)
	return sb.String()
}

func (n *Node) appendRange(sb *strings.Builder, start, end ByteOffset) {
	var off ByteOffset
	if n.IsLeaf() {
		for _, c := range n.chunks {
			cEnd := off + ByteOffset(c.Len())
			if cEnd > start && off < end {
				lo := int(max(start, off) - off)
				hi := int(min(end, cEnd) - off)
				sb.WriteString(c.data[lo:hi])
			}
			if cEnd >= end {
				return
			}
			off = cEnd
		}
		return
	}

	for i, child := range n.children {
		cEnd := off + n.childSummaries[i].Bytes
		if cEnd > start && off < end {
			child.appendRange(sb, max(start, off)-off, min(end, cEnd)-off)
		}
		if cEnd >= end {
			return
		}
		off = cEnd
	}
}

// lineStart returns the offset just past the line-th newline (1-based) in
// the subtree. The caller guarantees 1 <= line <= summary.Lines.
func (n *Node) lineStart(line int) ByteOffset {
	var off ByteOffset
	if n.IsLeaf() {
		for _, c := range n.chunks {
			if line <= c.summary.Lines {
				return off + ByteOffset(nthNewline(c.data, line)+1)
			}
			line -= c.summary.Lines
			off += ByteOffset(c.Len())
		}
		return off
	}

	for i, s := range n.childSummaries {
		if line <= s.Lines {
			return off + n.children[i].lineStart(line)
		}
		line -= s.Lines
		off += s.Bytes
	}
	return off
}

// split cuts the subtree at offset into [0, offset) and [offset, Len()).
func (n *Node) split(offset ByteOffset) (*Node, *Node) {
	if offset == 0 {
		return newLeafNode(), n
	}
	if offset >= n.Len() {
		return n, newLeafNode()
	}
	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *Node) splitLeaf(offset ByteOffset) (*Node, *Node) {
	var left, right []Chunk
	var off ByteOffset
	for _, c := range n.chunks {
		cLen := ByteOffset(c.Len())
		switch {
		case off+cLen <= offset:
			left = append(left, c)
		case off >= offset:
			right = append(right, c)
		default:
			l, r := c.Split(int(offset - off))
			left = append(left, l)
			right = append(right, r)
		}
		off += cLen
	}
	return newLeafNodeWithChunks(left), newLeafNodeWithChunks(right)
}

func (n *Node) splitInternal(offset ByteOffset) (*Node, *Node) {
	var left, right []*Node
	var off ByteOffset
	for i, child := range n.children {
		cLen := n.childSummaries[i].Bytes
		switch {
		case off+cLen <= offset:
			left = append(left, child)
		case off >= offset:
			right = append(right, child)
		default:
			l, r := child.split(offset - off)
			left = append(left, l)
			right = append(right, r)
		}
		off += cLen
	}
	return buildNodeFromChildren(left), buildNodeFromChildren(right)
}

// buildNodeFromChildren groups children under as few levels as needed.
func buildNodeFromChildren(children []*Node) *Node {
	switch {
	case len(children) == 0:
		return newLeafNode()
	case len(children) == 1:
		return children[0]
	case len(children) <= MaxChildren:
		return newInternalNode(children)
	}

	var parents []*Node
	for i := 0; i < len(children); i += MaxChildren {
		end := min(i+MaxChildren, len(children))
		parents = append(parents, newInternalNode(children[i:end:end]))
	}
	return buildNodeFromChildren(parents)
}

// concat joins two non-empty subtrees.
func concat(left, right *Node) *Node {
	if left.IsLeaf() && right.IsLeaf() {
		return concatLeaves(left, right)
	}

	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}

	all := make([]*Node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	all = append(all, right.children...)
	return buildNodeFromChildren(all)
}

func concatLeaves(left, right *Node) *Node {
	if len(left.chunks)+len(right.chunks) <= MaxChunksPerLeaf {
		chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return newLeafNodeWithChunks(chunks)
	}
	return newInternalNode([]*Node{left, right})
}
