// Package bipbuf implements a bip-buffer: a fixed-capacity circular buffer that
// keeps committed data in at most two regions so that every read and every
// reservation is a single contiguous slice of the backing store.
//
// Writers call Reserve, fill the returned slice and Commit what they wrote.
// Readers call Read and Decommit what they consumed, or Pop single elements.
// Buffer does no locking; Pipe wraps a byte Buffer in io.Pipe semantics for
// use across goroutines.
package bipbuf
