package bipbuf

import "fmt"

var _ fmt.Stringer = (*Buffer[byte])(nil)

// region is a half-open [start, end) range of indices into the backing store.
type region struct {
	start int
	end   int
}

func (r region) len() int {
	return r.end - r.start
}

func (r region) empty() bool {
	return r.end <= r.start
}

// Buffer is a bip-buffer with a fixed capacity.
//
// Committed data lives in at most two regions. A is the region handed to
// readers, B fills the front of the store once the writer wraps and becomes
// A when A is fully decommitted. Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	a       region
	b       region
	reserve region
	buf     []T

	pipe *pipe // set while a byte buffer backs a pipe
}

// New creates a buffer over buf. The capacity is len(buf) and buf is never resized.
func New[T any](buf []T) *Buffer[T] {
	return &Buffer[T]{buf: buf}
}

// NewSize creates a buffer with capacity zero-valued slots.
func NewSize[T any](capacity int) *Buffer[T] {
	return New(make([]T, max(capacity, 0)))
}

// Cap returns the size of the backing store.
func (b *Buffer[T]) Cap() int {
	return len(b.buf)
}

// Committed returns the number of committed elements across both regions.
func (b *Buffer[T]) Committed() int {
	return b.a.len() + b.b.len()
}

// Reserved returns the length of the outstanding reservation.
func (b *Buffer[T]) Reserved() int {
	return b.reserve.len()
}

// IsEmpty reports whether nothing is reserved or committed.
func (b *Buffer[T]) IsEmpty() bool {
	return b.Reserved() == 0 && b.Committed() == 0
}

// Clear drops all regions and the reservation. The backing store is left as is.
func (b *Buffer[T]) Clear() {
	b.a = region{}
	b.b = region{}
	b.reserve = region{}
}

// Reserve returns a writable window of up to count elements, replacing any
// outstanding reservation. The window is empty when there is no free space.
func (b *Buffer[T]) Reserve(count int) []T {
	start, free := b.freeSpace()
	b.reserve = region{start: start, end: start + min(free, max(count, 0))}
	return b.buf[b.reserve.start:b.reserve.end]
}

// ReserveMax reserves the largest window available.
func (b *Buffer[T]) ReserveMax() []T {
	return b.Reserve(b.Cap())
}

// Available returns the length ReserveMax would return, without changing
// the outstanding reservation.
func (b *Buffer[T]) Available() int {
	_, free := b.freeSpace()
	return free
}

// freeSpace picks where the next reservation starts and how much room it has.
// An active B keeps growing towards A; otherwise the larger gap wins, with
// ties going to the space after A.
func (b *Buffer[T]) freeSpace() (start, free int) {
	if !b.b.empty() {
		return b.b.end, b.a.start - b.b.end
	}
	if after := b.Cap() - b.a.end; after >= b.a.start {
		return b.a.end, after
	}
	return 0, b.a.start
}

// Commit makes the first n elements of the reservation readable and clears
// the reservation. n is clamped to the reservation; n <= 0 only clears it.
func (b *Buffer[T]) Commit(n int) {
	if n > 0 {
		n = min(n, b.reserve.len())
		switch {
		case b.a.empty() && b.b.empty():
			b.a = region{start: b.reserve.start, end: b.reserve.start + n}
		case b.reserve.start == b.a.end:
			b.a.end += n
		case b.b.empty():
			// Pop may have left a drained B away from the front.
			b.b = region{start: b.reserve.start, end: b.reserve.start + n}
		default:
			b.b.end += n
		}
	}
	b.reserve = region{}
}

// Read returns the A region. Data committed into B becomes visible only
// after A has been fully decommitted.
func (b *Buffer[T]) Read() []T {
	return b.buf[b.a.start:b.a.end]
}

// Decommit marks the first n elements returned by Read as consumed.
//
// Consuming all of A moves B into its place. Any excess over len(A) is
// ignored: at most one rotation happens per call.
func (b *Buffer[T]) Decommit(n int) {
	if n < 0 {
		return
	}
	if n >= b.a.len() {
		b.a = b.b
		b.b = region{}
		return
	}
	b.a.start += n
}

// Pop removes the earliest committed element and returns a pointer to its
// slot, or false if nothing is committed. Unlike Decommit, Pop never rotates:
// once A is exhausted it consumes B in place.
func (b *Buffer[T]) Pop() (*T, bool) {
	var idx int
	switch {
	case !b.a.empty():
		idx = b.a.start
		b.a.start++
	case !b.b.empty():
		idx = b.b.start
		b.b.start++
	default:
		return nil, false
	}
	return &b.buf[idx], true
}

func (b *Buffer[T]) String() string {
	return fmt.Sprintf("bipbuf.Buffer{cap: %d, a: [%d, %d), b: [%d, %d), reserve: [%d, %d)}",
		b.Cap(), b.a.start, b.a.end, b.b.start, b.b.end, b.reserve.start, b.reserve.end)
}
