// Package osmem provides arenas backed by operating-system memory instead of
// the Go heap. Callers own the returned arena and must invoke the cleanup
// function once they are done with every allocator built on top of it.
package osmem

import (
	"errors"
	"fmt"
)

// ErrBadSize indicates a non-positive arena size.
var ErrBadSize = errors.New("osmem: size must be positive")

func checkSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	return nil
}

// Heap returns a Go-heap arena with a no-op cleanup. It is the fallback on
// platforms without anonymous mappings.
func Heap(size int) ([]byte, func() error, error) {
	if err := checkSize(size); err != nil {
		return nil, nil, err
	}
	return make([]byte, size), func() error { return nil }, nil
}
