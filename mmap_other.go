//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package bipbuf

// mapStore falls back to the Go heap.
func mapStore(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmapStore([]byte) error {
	return nil
}
