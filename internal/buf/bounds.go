// Package buf contains overflow-safe range arithmetic for arena offsets.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// AddU64 adds a and b, returning ok = false on wrap-around.
func AddU64(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum >= a
}

// InRange reports whether [off, off+n) lies inside a buffer of length size.
func InRange(size, off, n uint64) bool {
	end, ok := AddU64(off, n)
	return ok && end <= size
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// SliceU64 is Slice for unsigned arena offsets.
func SliceU64(b []byte, off, n uint64) ([]byte, bool) {
	if !InRange(uint64(len(b)), off, n) {
		return nil, false
	}
	return b[off : off+n], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
