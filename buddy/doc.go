// Package buddy implements a fixed-pool power-of-two ("buddy") allocator over
// a caller-owned byte slice.
//
// # Overview
//
// The pool is handed to the allocator once. It is partitioned into maximal
// power-of-two free blocks (a binary decomposition of its length), and
// requests are served by splitting larger free blocks into half-size buddies
// until a block of the right size class exists.
//
// Every block, free or in use, starts with a 24-byte in-band header
// (see internal/format) holding the list links, the size class, the state and
// a magic number. Blocks are addressed by byte offsets into the arena rather
// than by pointers, and every offset is bounds-checked before it is followed.
//
// # Usage Example
//
//	a, err := buddy.New(make([]byte, 1024), nil)
//	if err != nil {
//	    return err
//	}
//
//	ref, p, err := a.Alloc(30)
//	if err != nil {
//	    return err // ErrZeroSize, ErrTooLarge or ErrNoSpace
//	}
//	copy(p, data)
//
//	// Later, return the block; free buddies are merged back together.
//	err = a.Free(ref)
//
// # Size Classes
//
// A block of class c is 1<<c bytes long and starts at an offset that is a
// multiple of 1<<c. Class c holds payloads of up to (1<<c)-24 bytes:
//
//	Class  5:   32 bytes (8 byte payload)
//	Class  6:   64 bytes (40 byte payload)
//	Class  7:  128 bytes (104 byte payload)
//	...
//	Class 10: 1024 bytes (1000 byte payload)
//
// Class 5 is the smallest class, the first whose block is larger than the
// header. Bytes at the end of the pool that are too few to form a class-5
// block are never handed out and are reported as slack.
//
// # Splitting
//
// A request that needs class r while the smallest non-empty free list is
// class r+k splits k times; each of the classes r..r+k-1 gains exactly one
// free block as a side effect.
//
// # Freeing
//
// Free moves a block back to its free list and merges it with its buddy
// (offset XOR block size) for as long as the buddy is a free block of the
// same class. Freeing every allocation restores the initial partition.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Wrap one with NewLocked to share
// it between goroutines.
//
// # Related Packages
//
//   - github.com/joshuapare/buddykit/internal/format: block header layout
//   - github.com/joshuapare/buddykit/internal/osmem: OS-backed arenas
package buddy
