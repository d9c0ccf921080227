//go:build unix

package osmem

import (
	"errors"
	"sync"

	"golang.org/x/sys/unix"
)

// Anonymous maps size bytes of zeroed, private, anonymous memory.
func Anonymous(size int) ([]byte, func() error, error) {
	if err := checkSize(size); err != nil {
		return nil, nil, err
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	var once sync.Once
	cleanup := func() error {
		var err error
		once.Do(func() {
			err = unix.Munmap(data)
			if errors.Is(err, unix.EINVAL) {
				// Treat double-unmap as no-op for callers.
				err = nil
			}
		})
		return err
	}
	return data, cleanup, nil
}
