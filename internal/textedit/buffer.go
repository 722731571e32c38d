package textedit

import "unicode/utf16"

// Buffer is a growable run of UTF-16 code units, always NUL-terminated.
// The length is cached and recomputed lazily after every mutation.
type Buffer struct {
	units  []uint16
	length int
	cached bool
}

// NewBuffer copies text up to its first NUL.
func NewBuffer(text []uint16) *Buffer {
	text = untilNUL(text)
	units := make([]uint16, len(text)+1)
	copy(units, text)
	return &Buffer{units: units}
}

// Len returns the number of code units before the terminator.
func (b *Buffer) Len() int {
	if !b.cached {
		n := 0
		for n < len(b.units) && b.units[n] != 0 {
			n++
		}
		b.length = n
		b.cached = true
	}
	return b.length
}

// Text returns a copy of the content without the terminator.
func (b *Buffer) Text() []uint16 {
	return b.Slice(0, b.Len())
}

func (b *Buffer) String() string {
	return string(utf16.Decode(b.units[:b.Len()]))
}

// Slice copies [from, to) clamped to the content.
func (b *Buffer) Slice(from, to int) []uint16 {
	n := b.Len()
	from = clamp(from, 0, n)
	to = clamp(to, from, n)
	out := make([]uint16, to-from)
	copy(out, b.units[from:to])
	return out
}

// At returns the unit at i, or 0 past the end.
func (b *Buffer) At(i int) uint16 {
	if i < 0 || i >= b.Len() {
		return 0
	}
	return b.units[i]
}

// Splice removes [start, end) and inserts ins at start. It returns the
// removed units. The bounds must already be ordered and in range.
func (b *Buffer) Splice(start, end int, ins []uint16) []uint16 {
	n := b.Len()
	removed := make([]uint16, end-start)
	copy(removed, b.units[start:end])

	size := n - (end - start) + len(ins) + 1
	next := make([]uint16, size, max(size, cap(b.units)))
	copy(next, b.units[:start])
	copy(next[start:], ins)
	copy(next[start+len(ins):], b.units[end:n])
	next[size-1] = 0
	b.units = next
	b.cached = false
	return removed
}

type bufferState struct {
	units []uint16
}

func (b *Buffer) snapshot() bufferState {
	return bufferState{units: append([]uint16(nil), b.units...)}
}

func (b *Buffer) restore(s bufferState) {
	b.units = s.units
	b.cached = false
}

func untilNUL(text []uint16) []uint16 {
	for i, u := range text {
		if u == 0 {
			return text[:i]
		}
	}
	return text
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
