package buddy

import (
	"fmt"

	"github.com/joshuapare/buddykit/internal/format"
)

// Intrusive doubly-linked lists threaded through the block headers. Every
// operation is O(1). After each one the head's prev is NilOffset, every other
// prev names the true predecessor, and the counts equal the list lengths.

// list returns the head and count of the list holding blocks of the given
// state and class.
func (a *Allocator) list(st format.State, c uint8) (*uint64, *int) {
	if st == format.StateUsed {
		return &a.used[c], &a.usedN[c]
	}
	return &a.free[c], &a.freeN[c]
}

// header decodes the header at off. Offsets reaching here come from the lists
// or from split geometry, so a decode failure means the arena was overwritten.
func (a *Allocator) header(off uint64) (format.Header, error) {
	h, err := format.ReadHeader(a.arena, off)
	if err != nil {
		return format.Header{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return h, nil
}

// mustWrite encodes h. Offsets are always inside the arena, so a failure is
// a programming error.
func (a *Allocator) mustWrite(h format.Header) {
	if err := format.WriteHeader(a.arena, h); err != nil {
		panic(fmt.Sprintf("buddy: write header at %d: %v", h.Offset, err))
	}
}

func (a *Allocator) setNext(off, next uint64) {
	format.PutU64(a.arena, int(off)+format.NextOffset, next)
}

func (a *Allocator) setPrev(off, prev uint64) {
	format.PutU64(a.arena, int(off)+format.PrevOffset, prev)
}

func (a *Allocator) setFlags(off uint64, flags uint8) {
	a.arena[off+format.FlagsOffset] = flags
}

// push writes a fresh header for the block at off and inserts it at the head
// of the list for (st, c).
func (a *Allocator) push(off uint64, c uint8, st format.State, flags uint8) {
	head, n := a.list(st, c)
	a.mustWrite(format.Header{
		Offset: off,
		Next:   *head,
		Prev:   format.NilOffset,
		Class:  c,
		State:  st,
		Flags:  flags,
	})
	if *head != format.NilOffset {
		a.setPrev(*head, off)
	}
	*head = off
	*n++
}

// pushFree inserts the block at off into free[c].
func (a *Allocator) pushFree(off uint64, c uint8) {
	a.push(off, c, format.StateFree, 0)
}

// moveToUsed inserts a block already removed from its free list into used[c].
func (a *Allocator) moveToUsed(off uint64, c uint8) {
	a.push(off, c, format.StateUsed, 0)
}

// unlink removes h from the list named by its state and class.
func (a *Allocator) unlink(h format.Header) {
	head, n := a.list(h.State, h.Class)
	if h.Prev == format.NilOffset {
		*head = h.Next
	} else {
		a.setNext(h.Prev, h.Next)
	}
	if h.Next != format.NilOffset {
		a.setPrev(h.Next, h.Prev)
	}
	*n--
	a.setNext(h.Offset, format.NilOffset)
	a.setPrev(h.Offset, format.NilOffset)
}

// popFree removes and returns the head of free[c].
func (a *Allocator) popFree(c uint8) (uint64, error) {
	if a.freeN[c] == 0 {
		return 0, fmt.Errorf("class %d: %w", c, ErrListUnderflow)
	}
	h, err := a.header(a.free[c])
	if err != nil {
		return 0, err
	}
	if h.State != format.StateFree || h.Class != c || h.Prev != format.NilOffset {
		return 0, fmt.Errorf("%w: free[%d] head at %d is %s class %d", ErrCorrupt, c, h.Offset, h.State, h.Class)
	}
	a.unlink(h)
	return h.Offset, nil
}

// split pops one free block of class c and pushes its two halves onto
// free[c-1]: freeN[c] drops by one and freeN[c-1] grows by two.
func (a *Allocator) split(c uint8) error {
	if c <= a.minClass || c > a.maxClass {
		return fmt.Errorf("split class %d: %w", c, ErrBadClass)
	}
	base, err := a.popFree(c)
	if err != nil {
		return err
	}
	half := c - 1
	// Push the upper half first so the lower half ends up at the head.
	a.pushFree(base+format.BlockSize(half), half)
	a.pushFree(base, half)
	a.stats.Splits++
	return nil
}
