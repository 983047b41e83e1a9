package bipbuf

import (
	"fmt"
	"io"
)

var _ io.Closer = (*Mapped)(nil)

// Mapped is a byte bip-buffer whose store is a single allocation made outside
// the Go heap where the platform allows it. Close releases the store; the
// buffer must not be used afterwards.
type Mapped struct {
	*Buffer[byte]
	data   []byte
	closed bool
}

// NewMapped allocates a size-byte store and wraps it in a Buffer.
func NewMapped(size int) (*Mapped, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	data, err := mapStore(size)
	if err != nil {
		return nil, fmt.Errorf("bipbuf: map %d bytes: %w", size, err)
	}
	return &Mapped{Buffer: New(data), data: data}, nil
}

// Close releases the store. It fails with ErrBufferInUse while a pipe made
// by NewPipe over this buffer has an open half, and otherwise waits for calls
// still running on that pipe. Calling Close more than once is a no-op.
func (m *Mapped) Close() error {
	if m.closed {
		return nil
	}
	if p := m.pipe; p != nil {
		if p.open() {
			return ErrBufferInUse
		}
		p.rmu.Lock()
		defer p.rmu.Unlock()
		p.wmu.Lock()
		defer p.wmu.Unlock()
		p.mu.Lock()
		defer p.mu.Unlock()
	}
	m.closed = true
	m.Clear()
	m.Buffer.buf = nil
	if err := unmapStore(m.data); err != nil {
		return fmt.Errorf("bipbuf: unmap: %w", err)
	}
	m.data = nil
	return nil
}
