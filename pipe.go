package bipbuf

import (
	"io"
	"sync"
)

var (
	_ io.Reader     = (*PipeReader)(nil)
	_ io.WriterTo   = (*PipeReader)(nil)
	_ io.Closer     = (*PipeReader)(nil)
	_ io.Writer     = (*PipeWriter)(nil)
	_ io.ReaderFrom = (*PipeWriter)(nil)
	_ io.Closer     = (*PipeWriter)(nil)
)

// pipe owns a byte bip-buffer shared by one reading and one writing side.
//
// mu guards the buffer regions and the close state. rmu and wmu serialize
// each side, and are held while the buffer is touched outside mu: a reader
// holding a readable chunk, a writer filling a reserved window. The two never
// overlap since reservations only cover free space.
type pipe struct {
	mu  sync.Mutex
	rmu sync.Mutex
	wmu sync.Mutex

	readable sync.Cond
	writable sync.Cond

	buf *byteBuffer

	// First close error of each side; nil while that side is open.
	readerErr error
	writerErr error
}

func newPipe(buf *byteBuffer) *pipe {
	p := &pipe{buf: buf}
	p.readable.L = &p.mu
	p.writable.L = &p.mu
	return p
}

// readErrLocked is the error a read returns once nothing is buffered.
func (p *pipe) readErrLocked() error {
	if p.readerErr != nil {
		return p.readerErr
	}
	return p.writerErr
}

// writeErrLocked is the error a write returns regardless of free space.
func (p *pipe) writeErrLocked() error {
	if p.readerErr != nil {
		return p.readerErr
	}
	if p.writerErr != nil {
		return io.ErrClosedPipe
	}
	return nil
}

func (p *pipe) awaitDataLocked() error {
	for p.buf.empty() {
		if err := p.readErrLocked(); err != nil {
			return err
		}
		p.readable.Wait()
	}
	return nil
}

func (p *pipe) awaitSpaceLocked() error {
	for {
		if err := p.writeErrLocked(); err != nil {
			return err
		}
		if !p.buf.full() {
			return nil
		}
		p.writable.Wait()
	}
}

func (p *pipe) read(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	p.rmu.Lock()
	defer p.rmu.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.awaitDataLocked(); err != nil {
		return 0, err
	}
	n := p.buf.read(dst)
	p.writable.Signal()
	return n, nil
}

func (p *pipe) write(src []byte) (int, error) {
	p.wmu.Lock()
	defer p.wmu.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()

	var n int
	// A window may be shorter than src when free space is split around A.
	for n < len(src) {
		if err := p.awaitSpaceLocked(); err != nil {
			return n, err
		}
		n += p.buf.write(src[n:])
		p.readable.Signal()
	}
	return n, nil
}

// writeTo hands the readable region straight to dst, releasing mu while
// dst.Write runs.
func (p *pipe) writeTo(dst io.Writer) (int64, error) {
	p.rmu.Lock()
	defer p.rmu.Unlock()

	var total int64
	for {
		p.mu.Lock()
		if err := p.awaitDataLocked(); err != nil {
			p.mu.Unlock()
			if err == io.EOF {
				err = nil
			}
			return total, err
		}
		chunk := p.buf.peek()
		p.mu.Unlock()

		n, err := dst.Write(chunk)
		if n < 0 || n > len(chunk) {
			n = 0
			if err == nil {
				err = io.ErrShortWrite
			}
		}

		p.mu.Lock()
		p.buf.consume(n)
		p.writable.Signal()
		p.mu.Unlock()

		total += int64(n)
		switch {
		case err != nil:
			return total, err
		case n < len(chunk):
			return total, io.ErrShortWrite
		}
	}
}

// readFrom reads from src straight into a reserved window, releasing mu
// while src.Read runs. The reader may decommit and rotate meanwhile;
// Commit places the window against whatever A and B have become.
func (p *pipe) readFrom(src io.Reader) (int64, error) {
	p.wmu.Lock()
	defer p.wmu.Unlock()

	var total int64
	for {
		p.mu.Lock()
		if err := p.awaitSpaceLocked(); err != nil {
			p.mu.Unlock()
			return total, err
		}
		window := p.buf.reserve()
		p.mu.Unlock()

		n, err := src.Read(window)
		if n < 0 || n > len(window) {
			n = 0
			if err == nil {
				err = errInvalidRead
			}
		}

		p.mu.Lock()
		p.buf.commit(n)
		p.readable.Signal()
		p.mu.Unlock()

		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

func (p *pipe) closeReader(err error) {
	if err == nil {
		err = io.ErrClosedPipe
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.readerErr == nil {
		p.readerErr = err
	}
	p.readable.Broadcast()
	p.writable.Broadcast()
}

func (p *pipe) closeWriter(err error) {
	if err == nil {
		err = io.EOF
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writerErr == nil {
		p.writerErr = err
	}
	p.readable.Broadcast()
	p.writable.Broadcast()
}

// open reports whether either side has not been closed yet.
func (p *pipe) open() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readerErr == nil || p.writerErr == nil
}

// Pipe creates a pipe buffered by a bip-buffer of bufferSize bytes.
// A non-positive size is raised to one byte.
func Pipe(bufferSize int) (*PipeReader, *PipeWriter) {
	p := newPipe(newByteBuffer(max(bufferSize, 1)))
	return &PipeReader{p}, &PipeWriter{p}
}

// NewPipe creates a pipe that buffers through buf, for example the store of
// a Mapped buffer. buf is cleared and belongs to the pipe until both halves
// are closed; a buffer still attached to an open pipe is rejected with
// ErrBufferInUse.
func NewPipe(buf *Buffer[byte]) (*PipeReader, *PipeWriter, error) {
	if buf == nil || buf.Cap() == 0 {
		return nil, nil, ErrInvalidSize
	}
	if buf.pipe != nil && buf.pipe.open() {
		return nil, nil, ErrBufferInUse
	}
	buf.Clear()
	p := newPipe(&byteBuffer{buf: buf})
	buf.pipe = p
	return &PipeReader{p}, &PipeWriter{p}, nil
}

// PipeReader is the read half of a pipe.
type PipeReader struct {
	p *pipe
}

// Read implements io.Reader. A single Read never returns bytes from both
// sides of the wrap point.
func (r *PipeReader) Read(b []byte) (int, error) {
	return r.p.read(b)
}

// WriteTo implements io.WriterTo. Buffered data is passed to w without an
// intermediate copy until the writer closes or an error occurs.
func (r *PipeReader) WriteTo(w io.Writer) (int64, error) {
	return r.p.writeTo(w)
}

// Close closes the reader side. Buffered data can still be read.
func (r *PipeReader) Close() error {
	return r.CloseWithError(nil)
}

// CloseWithError closes the reader side; writes then fail with err, or
// io.ErrClosedPipe if err is nil. Only the first close error is kept.
func (r *PipeReader) CloseWithError(err error) error {
	r.p.closeReader(err)
	return nil
}

// PipeWriter is the write half of a pipe.
type PipeWriter struct {
	p *pipe
}

// Write implements io.Writer. It blocks until all of b is buffered or the
// pipe is closed.
func (w *PipeWriter) Write(b []byte) (int, error) {
	return w.p.write(b)
}

// ReadFrom implements io.ReaderFrom, reading from r straight into the
// pipe's free space until io.EOF or an error occurs.
func (w *PipeWriter) ReadFrom(r io.Reader) (int64, error) {
	return w.p.readFrom(r)
}

// Close closes the writer side. Reads drain the buffer, then return io.EOF.
func (w *PipeWriter) Close() error {
	return w.CloseWithError(nil)
}

// CloseWithError closes the writer side; once drained, reads return err, or
// io.EOF if err is nil. Only the first close error is kept.
func (w *PipeWriter) CloseWithError(err error) error {
	w.p.closeWriter(err)
	return nil
}
