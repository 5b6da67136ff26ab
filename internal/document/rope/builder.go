package rope

import "strings"

// Builder accumulates text and turns it into a rope in one pass.
type Builder struct {
	chunks []Chunk
	buf    strings.Builder
	n      int
}

// WriteString appends s.
func (b *Builder) WriteString(s string) {
	if len(s) == 0 {
		return
	}
	b.n += len(s)
	b.buf.WriteString(s)
	if b.buf.Len() >= MaxChunkSize*2 {
		b.flush()
	}
}

// WriteByte appends c.
func (b *Builder) WriteByte(c byte) error {
	b.n++
	return b.buf.WriteByte(c)
}

// Len returns the number of bytes written.
func (b *Builder) Len() int {
	return b.n
}

func (b *Builder) flush() {
	if b.buf.Len() == 0 {
		return
	}
	b.chunks = append(b.chunks, splitIntoChunks(b.buf.String())...)
	b.buf.Reset()
}

// Build returns the rope and resets the builder.
func (b *Builder) Build() Rope {
	b.flush()
	r := buildFromChunks(b.chunks)
	*b = Builder{}
	return r
}

// FromLines joins lines with newlines.
func FromLines(lines []string) Rope {
	var b Builder
	for i, line := range lines {
		if i > 0 {
			_ = b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.Build()
}
