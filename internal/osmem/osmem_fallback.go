//go:build !unix && !windows

package osmem

// Anonymous falls back to a heap arena when no mapping API is available.
func Anonymous(size int) ([]byte, func() error, error) {
	return Heap(size)
}
