package bipbuf

// byteBuffer moves bytes in and out of a Buffer[byte].
// It adds no locking of its own; the pipe serializes access.
type byteBuffer struct {
	buf *Buffer[byte]
}

func newByteBuffer(size int) *byteBuffer {
	return &byteBuffer{buf: NewSize[byte](size)}
}

// read copies committed bytes into dst and returns the number of bytes read.
// Only the A region is read, so a single call never crosses the wrap point.
func (r *byteBuffer) read(dst []byte) int {
	n := copy(dst, r.peek())
	r.consume(n)
	return n
}

// write copies as much of src as fits into the next reservation and commits it.
func (r *byteBuffer) write(src []byte) int {
	n := copy(r.buf.Reserve(len(src)), src)
	r.buf.Commit(n)
	return n
}

// peek returns the readable bytes without consuming them.
func (r *byteBuffer) peek() []byte {
	return r.buf.Read()
}

func (r *byteBuffer) consume(n int) {
	if n > 0 {
		r.buf.Decommit(n)
	}
}

// reserve returns the largest writable window. The window stays valid until
// commit, even while the reader consumes committed bytes.
func (r *byteBuffer) reserve() []byte {
	return r.buf.ReserveMax()
}

func (r *byteBuffer) commit(n int) {
	r.buf.Commit(n)
}

// empty returns true if there is nothing to read.
func (r *byteBuffer) empty() bool {
	return r.buf.Committed() == 0
}

// full returns true if a reservation would come back empty.
func (r *byteBuffer) full() bool {
	return r.buf.Available() == 0
}
