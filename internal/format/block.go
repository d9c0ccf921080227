package format

import (
	"fmt"

	"github.com/joshuapare/buddykit/internal/buf"
)

// Header is a decoded block header.
type Header struct {
	Offset uint64 // Offset of the block relative to the arena start
	Next   uint64
	Prev   uint64
	Class  uint8
	State  State
	Flags  uint8
}

// Size returns the block length.
func (h Header) Size() uint64 { return BlockSize(h.Class) }

// End returns the offset just past the block.
func (h Header) End() uint64 { return h.Offset + h.Size() }

// Payload returns the offset of the first payload byte.
func (h Header) Payload() uint64 { return h.Offset + HeaderSize }

// Text reports whether the payload is flagged as NUL-terminated text.
func (h Header) Text() bool { return h.Flags&FlagText != 0 }

// headerSlice bounds-checks off and returns the header bytes.
func headerSlice(b []byte, off uint64) ([]byte, error) {
	if off > uint64(len(b)) {
		return nil, fmt.Errorf("header at %d: %w", off, ErrTruncated)
	}
	hb, ok := buf.Slice(b, int(off), HeaderSize)
	if !ok {
		return nil, fmt.Errorf("header at %d: %w", off, ErrTruncated)
	}
	return hb, nil
}

// ReadHeader decodes the header at off. It checks the magic, the state byte,
// and that the class is in range and aligned with off; it does not check that
// the whole block fits in b (see NextBlock).
func ReadHeader(b []byte, off uint64) (Header, error) {
	hb, err := headerSlice(b, off)
	if err != nil {
		return Header{}, err
	}
	if ReadU32(hb, MagicOffset) != Magic {
		return Header{}, fmt.Errorf("header at %d: %w", off, ErrBadMagic)
	}
	h := Header{
		Offset: off,
		Next:   ReadU64(hb, NextOffset),
		Prev:   ReadU64(hb, PrevOffset),
		Class:  hb[ClassOffset],
		State:  State(hb[StateOffset]),
		Flags:  hb[FlagsOffset],
	}
	if h.State != StateFree && h.State != StateUsed {
		return Header{}, fmt.Errorf("header at %d: state %d: %w", off, h.State, ErrBadState)
	}
	if h.Class >= MaxClass || h.Class < MinClass() || !Aligned(off, h.Class) {
		return Header{}, fmt.Errorf("header at %d: class %d: %w", off, h.Class, ErrBadClass)
	}
	return h, nil
}

// WriteHeader encodes h at h.Offset.
func WriteHeader(b []byte, h Header) error {
	hb, err := headerSlice(b, h.Offset)
	if err != nil {
		return err
	}
	PutU64(hb, NextOffset, h.Next)
	PutU64(hb, PrevOffset, h.Prev)
	hb[ClassOffset] = h.Class
	hb[StateOffset] = uint8(h.State)
	hb[FlagsOffset] = h.Flags
	hb[ReservedOffset] = 0
	PutU32(hb, MagicOffset, Magic)
	return nil
}

// ClearHeader zeroes the header at off so that stale offsets into a merged
// block no longer decode.
func ClearHeader(b []byte, off uint64) {
	hb, err := headerSlice(b, off)
	if err != nil {
		return
	}
	clear(hb)
}

// NextBlock decodes the block at off and returns it together with the offset
// of the physically following block. The caller must ensure off is the start
// of a block.
func NextBlock(b []byte, off uint64) (Header, uint64, error) {
	h, err := ReadHeader(b, off)
	if err != nil {
		return Header{}, 0, err
	}
	if h.Size() > uint64(len(b)) {
		return Header{}, 0, fmt.Errorf("block at %d (class %d): %w", off, h.Class, ErrTruncated)
	}
	end, ok := buf.AddOverflowSafe(int(off), int(h.Size()))
	if !ok || end > len(b) {
		return Header{}, 0, fmt.Errorf("block at %d (class %d): %w", off, h.Class, ErrTruncated)
	}
	return h, uint64(end), nil
}
