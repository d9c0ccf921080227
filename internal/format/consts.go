// Package format describes the in-band block header that the buddy allocator
// writes at the start of every block in an arena. Keeping the layout here
// lets the allocator, the verifier and tests decode the arena the same way
// without depending on allocator internals.
package format

// Block header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    8     Next block offset in the same list (NilOffset if none)
//	0x08    8     Previous block offset (NilOffset for the list head)
//	0x10    1     Size class; block length is 1 << class
//	0x11    1     State (StateFree or StateUsed)
//	0x12    1     Flags (FlagText)
//	0x13    1     Reserved, zero
//	0x14    4     Magic
//	0x18    ...   Payload
const (
	NextOffset     = 0x00
	PrevOffset     = 0x08
	ClassOffset    = 0x10
	StateOffset    = 0x11
	FlagsOffset    = 0x12
	ReservedOffset = 0x13
	MagicOffset    = 0x14

	// HeaderSize is the number of bytes preceding every payload.
	HeaderSize = 0x18

	// HeaderAlignment is the natural alignment of the header (its widest field).
	HeaderAlignment = 8
)

// Magic marks a header written by the allocator ("BUDY").
const Magic uint32 = 0x42554459

// NilOffset terminates a list. No block can start at this offset.
const NilOffset = ^uint64(0)

// MaxClass is the largest representable size class (64-bit offsets).
const MaxClass = 64

// State of a block.
type State uint8

const (
	StateInvalid State = 0
	StateFree    State = 1
	StateUsed    State = 2
)

func (s State) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateUsed:
		return "used"
	default:
		return "invalid"
	}
}

// Flags carried in the header.
const (
	// FlagText marks a payload holding NUL-terminated text.
	FlagText uint8 = 1 << 0
)

// MinClass returns the smallest class whose block is strictly larger than
// the header, i.e. the smallest block that can carry at least one payload byte.
func MinClass() uint8 {
	c := uint8(0)
	for (uint64(1) << c) <= HeaderSize {
		c++
	}
	return c
}
