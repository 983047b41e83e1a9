package bipbuf

import "errors"

var (
	// ErrInvalidSize is returned when a backing store would have no capacity.
	ErrInvalidSize = errors.New("bipbuf: invalid buffer size")
	// ErrBufferInUse is returned when a buffer still backs an open pipe.
	ErrBufferInUse = errors.New("bipbuf: buffer in use by an open pipe")

	errInvalidRead = errors.New("bipbuf: reader returned invalid count")
)
