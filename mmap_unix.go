//go:build linux || darwin || freebsd || netbsd || openbsd

package bipbuf

import "golang.org/x/sys/unix"

// mapStore maps an anonymous private region of exactly size bytes.
func mapStore(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmapStore(data []byte) error {
	return unix.Munmap(data)
}
