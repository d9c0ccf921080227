package format

import "math/bits"

// Size-class arithmetic. A class c describes a block of 1<<c bytes.

// BlockSize returns the byte length of a block of class c.
//
// Example:
//
//	BlockSize(5)  = 32
//	BlockSize(10) = 1024
func BlockSize(c uint8) uint64 {
	return uint64(1) << c
}

// FloorClass returns floor(log2(n)), the largest class whose block fits in n
// bytes. n must be non-zero.
//
// Example:
//
//	FloorClass(1024) = 10
//	FloorClass(1500) = 10
func FloorClass(n uint64) uint8 {
	return uint8(bits.Len64(n) - 1)
}

// CeilClass returns the smallest class c with 1<<c >= n. n must be non-zero
// and at most 1<<63.
//
// Example:
//
//	CeilClass(54) = 6
//	CeilClass(64) = 6
//	CeilClass(65) = 7
func CeilClass(n uint64) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(bits.Len64(n - 1))
}

// Aligned reports whether off is a multiple of the block size of class c.
func Aligned(off uint64, c uint8) bool {
	return off&(BlockSize(c)-1) == 0
}

// Buddy returns the offset of the block that was split off the same parent as
// the class-c block at off.
func Buddy(off uint64, c uint8) uint64 {
	return off ^ BlockSize(c)
}
