package buddy

import (
	"github.com/joshuapare/buddykit/internal/buf"
	"github.com/joshuapare/buddykit/internal/format"
)

// Free returns the allocation at ref to the pool. While the block's buddy is
// a free block of the same class the two are merged into their parent; the
// merged block is pushed onto the free list of the class it ends at.
func (a *Allocator) Free(ref Ref) error {
	a.stats.FreeCalls++
	h, err := a.usedHeader(ref)
	if err != nil {
		a.stats.Failures++
		return err
	}
	a.unlink(h)

	off, c := h.Offset, h.Class
	for c < a.maxClass {
		bud, ok := a.freeBuddy(off, c)
		if !ok {
			break
		}
		a.unlink(bud)
		upper := max(off, bud.Offset)
		off = min(off, bud.Offset)
		// The upper half's header is now payload of the parent.
		format.ClearHeader(a.arena, upper)
		c++
		a.stats.Merges++
	}
	a.pushFree(off, c)

	if c > h.Class {
		a.log.Debug("buddy: merged", "from", h.Class, "to", c, "offset", off)
	}
	return a.checkAfter("free")
}

// freeBuddy returns the buddy of the class-c block at off when it is a whole
// free block of the same class.
func (a *Allocator) freeBuddy(off uint64, c uint8) (format.Header, bool) {
	b := format.Buddy(off, c)
	if !buf.InRange(a.tiled(), b, format.BlockSize(c)) {
		return format.Header{}, false
	}
	// A buddy inside the pool always starts a block: either a whole block of
	// class c or the first of its split descendants.
	h, err := format.ReadHeader(a.arena, b)
	if err != nil || h.State != format.StateFree || h.Class != c {
		return format.Header{}, false
	}
	return h, true
}
