package rope

import "strings"

// Chunk size limits in bytes.
const (
	MinChunkSize    = 128
	MaxChunkSize    = 256
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// ByteOffset is an absolute byte position in a rope.
type ByteOffset uint64

// TextSummary holds the metrics a node caches for its subtree.
type TextSummary struct {
	Bytes ByteOffset

	// Lines counts newline characters.
	Lines int
}

// Add combines the summaries of two adjacent spans.
func (s TextSummary) Add(other TextSummary) TextSummary {
	return TextSummary{Bytes: s.Bytes + other.Bytes, Lines: s.Lines + other.Lines}
}

// ComputeSummary measures s.
func ComputeSummary(s string) TextSummary {
	return TextSummary{Bytes: ByteOffset(len(s)), Lines: strings.Count(s, "\n")}
}

// Chunk is an immutable piece of text stored in a leaf.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk holding s.
func NewChunk(s string) Chunk {
	return Chunk{data: s, summary: ComputeSummary(s)}
}

func (c Chunk) String() string { return c.data }

// Summary returns the chunk's metrics.
func (c Chunk) Summary() TextSummary { return c.summary }

// Len returns the chunk length in bytes.
func (c Chunk) Len() int { return len(c.data) }

// IsEmpty reports whether the chunk holds no text.
func (c Chunk) IsEmpty() bool { return len(c.data) == 0 }

// Split cuts the chunk at a byte offset, which must be a UTF-8 boundary.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}
	return NewChunk(c.data[:offset]), NewChunk(c.data[offset:])
}

// splitIntoChunks cuts s into chunks of about TargetChunkSize bytes.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}

	var chunks []Chunk
	for len(s) > MaxChunkSize {
		at := findSplitPoint(s, TargetChunkSize)
		chunks = append(chunks, NewChunk(s[:at]))
		s = s[at:]
	}
	return append(chunks, NewChunk(s))
}

// findSplitPoint returns a cut position near target, preferring the byte
// after a newline and never splitting a UTF-8 sequence.
func findSplitPoint(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}

	lo := max(target-MinChunkSize/4, 1)
	hi := min(target+MinChunkSize/4, len(s))
	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos > 0 && !isUTF8Start(s[pos]) {
		pos--
	}
	if pos == 0 {
		// Not UTF-8; cut anywhere
		return target
	}
	return pos
}

// isUTF8Start reports whether b begins a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}

// nthNewline returns the index of the n-th (1-based) newline in s, or -1.
func nthNewline(s string, n int) int {
	off := 0
	for {
		i := strings.IndexByte(s[off:], '\n')
		if i < 0 {
			return -1
		}
		n--
		if n == 0 {
			return off + i
		}
		off += i + 1
	}
}
