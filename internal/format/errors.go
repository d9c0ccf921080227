package format

import "errors"

var (
	// ErrTruncated indicates the arena lacked the bytes required for a header or block.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadMagic indicates an offset that does not start with an allocator header.
	ErrBadMagic = errors.New("format: bad block magic")
	// ErrBadClass indicates a header whose class is out of range or misaligned.
	ErrBadClass = errors.New("format: bad size class")
	// ErrBadState indicates a header whose state byte is neither free nor used.
	ErrBadState = errors.New("format: bad block state")
)
