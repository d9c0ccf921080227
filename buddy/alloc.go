package buddy

import (
	"fmt"

	"github.com/joshuapare/buddykit/internal/buf"
	"github.com/joshuapare/buddykit/internal/format"
)

// classFor returns the smallest class whose block holds n payload bytes plus
// the header.
func (a *Allocator) classFor(n uint64) (uint8, error) {
	needed, ok := buf.AddU64(n, HeaderSize)
	if !ok || needed > a.size {
		return 0, fmt.Errorf("%w: %d bytes (+%d header) in a %d byte pool", ErrTooLarge, n, HeaderSize, a.size)
	}
	c := format.CeilClass(needed)
	if c < a.minClass {
		c = a.minClass
	}
	if c > a.maxClass {
		return 0, fmt.Errorf("%w: %d bytes needs class %d, pool max is %d", ErrTooLarge, n, c, a.maxClass)
	}
	return c, nil
}

// Alloc finds the smallest non-empty free list at or above the class n needs,
// splits down to that class and moves the block to the used list. The payload
// is zeroed; the returned slice has length n and capacity equal to the
// block's usable size.
func (a *Allocator) Alloc(n uint64) (Ref, []byte, error) {
	a.stats.AllocCalls++
	if n == 0 {
		a.stats.Failures++
		return 0, nil, ErrZeroSize
	}

	req, err := a.classFor(n)
	if err != nil {
		a.stats.Failures++
		return 0, nil, err
	}

	best := req
	for best <= a.maxClass && a.freeN[best] == 0 {
		best++
	}
	if best > a.maxClass {
		a.stats.Failures++
		a.log.Debug("buddy: pool exhausted", "size", n, "class", req)
		return 0, nil, fmt.Errorf("%w: %d bytes (class %d)", ErrNoSpace, n, req)
	}

	if best > req {
		a.log.Debug("buddy: splitting", "from", best, "to", req)
	}
	for best > req {
		if err := a.split(best); err != nil {
			return 0, nil, err
		}
		best--
	}

	off, err := a.popFree(req)
	if err != nil {
		return 0, nil, err
	}
	a.moveToUsed(off, req)

	end := off + format.BlockSize(req)
	payload := a.arena[off+HeaderSize : end : end]
	clear(payload)

	if err := a.checkAfter("alloc"); err != nil {
		return 0, nil, err
	}
	return off + HeaderSize, payload[:n], nil
}

// AllocString stores s followed by a NUL byte and marks the block as text so
// that Report prints it.
func (a *Allocator) AllocString(s string) (Ref, error) {
	ref, p, err := a.Alloc(uint64(len(s)) + 1)
	if err != nil {
		return 0, err
	}
	copy(p, s)
	p[len(s)] = 0
	a.setFlags(ref-HeaderSize, format.FlagText)
	return ref, nil
}

// usedHeader resolves ref to the header of a live allocation.
func (a *Allocator) usedHeader(ref Ref) (format.Header, error) {
	if ref < HeaderSize || ref >= a.tiled() {
		return format.Header{}, fmt.Errorf("%w: %d outside pool", ErrBadRef, ref)
	}
	off := ref - HeaderSize
	h, err := format.ReadHeader(a.arena, off)
	if err != nil {
		return format.Header{}, fmt.Errorf("%w: %d: %w", ErrBadRef, ref, err)
	}
	if h.End() > a.tiled() {
		return format.Header{}, fmt.Errorf("%w: %d: block runs past pool end", ErrBadRef, ref)
	}
	if h.State != format.StateUsed {
		return format.Header{}, fmt.Errorf("%w: %d is %s", ErrNotUsed, ref, h.State)
	}
	return h, nil
}

// Payload returns the whole usable payload of the allocation at ref.
func (a *Allocator) Payload(ref Ref) ([]byte, error) {
	h, err := a.usedHeader(ref)
	if err != nil {
		return nil, err
	}
	return a.arena[h.Payload():h.End():h.End()], nil
}

// UsableSize returns the payload capacity of the allocation at ref.
func (a *Allocator) UsableSize(ref Ref) (uint64, error) {
	h, err := a.usedHeader(ref)
	if err != nil {
		return 0, err
	}
	return h.Size() - HeaderSize, nil
}
