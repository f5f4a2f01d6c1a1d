// Package iolist implements the rope-style byte-chunk writer the render
// package composes SQL text with (spec.md §4.A, Design Notes §9 "Iolist
// output"). Chunks are appended in left-to-right traversal order and
// materialized to a contiguous byte slice only at the render API boundary,
// which is what fixes both the SQL byte order and the parameter placeholder
// numbering (spec.md §5).
package iolist

// Builder accumulates byte chunks without eagerly concatenating them.
// It has no exported fields and carries no state beyond the chunk list, so
// it is safe to pass by pointer through a single render call and discard
// afterward.
type Builder struct {
	chunks [][]byte
	size   int
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// WriteString appends a string chunk.
func (b *Builder) WriteString(s string) *Builder {
	if s == "" {
		return b
	}
	b.append([]byte(s))
	return b
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) *Builder {
	b.append([]byte{c})
	return b
}

// Write appends a raw byte chunk, taking ownership of it.
func (b *Builder) Write(p []byte) *Builder {
	if len(p) == 0 {
		return b
	}
	b.append(p)
	return b
}

// WriteList splices another Builder's chunks in, preserving order.
func (b *Builder) WriteList(other *Builder) *Builder {
	if other == nil {
		return b
	}
	b.chunks = append(b.chunks, other.chunks...)
	b.size += other.size
	return b
}

// Join appends each item joined by sep, in order.
func (b *Builder) Join(items []*Builder, sep string) *Builder {
	for i, item := range items {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteList(item)
	}
	return b
}

func (b *Builder) append(p []byte) {
	b.chunks = append(b.chunks, p)
	b.size += len(p)
}

// Len returns the total number of bytes that Bytes would produce.
func (b *Builder) Len() int {
	return b.size
}

// Bytes materializes the chunk list into one contiguous slice.
func (b *Builder) Bytes() []byte {
	out := make([]byte, 0, b.size)
	for _, c := range b.chunks {
		out = append(out, c...)
	}
	return out
}

// String materializes the chunk list into a string.
func (b *Builder) String() string {
	return string(b.Bytes())
}
