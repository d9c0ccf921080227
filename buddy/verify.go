package buddy

import (
	"fmt"

	"github.com/joshuapare/buddykit/internal/format"
)

// Verify checks the arena against the lists:
//
//   - walking headers physically from offset 0 tiles [0, Size-Slack) exactly;
//   - every block is aligned to its class and within [MinClass, MaxClass];
//   - every list has a NilOffset head prev, consistent prev links, members of
//     the right state and class, and a length equal to its count;
//   - list lengths agree with the physical tally.
func (a *Allocator) Verify() error {
	var physFree, physUsed [numClasses]int

	off := uint64(0)
	blocks := 0
	for off < a.tiled() {
		h, next, err := format.NextBlock(a.arena, off)
		if err != nil {
			return fmt.Errorf("%w: block walk: %w", ErrCorrupt, err)
		}
		if h.Class > a.maxClass {
			return fmt.Errorf("%w: block at %d has class %d above max %d", ErrCorrupt, off, h.Class, a.maxClass)
		}
		if next > a.tiled() {
			return fmt.Errorf("%w: block at %d ends at %d past %d", ErrCorrupt, off, next, a.tiled())
		}
		if h.State == format.StateUsed {
			physUsed[h.Class]++
		} else {
			physFree[h.Class]++
		}
		blocks++
		off = next
	}
	if off != a.tiled() {
		return fmt.Errorf("%w: block walk ended at %d, want %d", ErrCorrupt, off, a.tiled())
	}

	for c := range numClasses {
		if err := a.verifyList(format.StateFree, uint8(c), physFree[c], blocks); err != nil {
			return err
		}
		if err := a.verifyList(format.StateUsed, uint8(c), physUsed[c], blocks); err != nil {
			return err
		}
	}
	return nil
}

func (a *Allocator) verifyList(st format.State, c uint8, want, limit int) error {
	head, n := a.list(st, c)
	if *n != want {
		return fmt.Errorf("%w: %s[%d] count %d, arena holds %d", ErrCorrupt, st, c, *n, want)
	}

	prev := format.NilOffset
	length := 0
	for off := *head; off != format.NilOffset; {
		if length >= limit {
			return fmt.Errorf("%w: %s[%d] longer than the block count (cycle?)", ErrCorrupt, st, c)
		}
		h, err := a.header(off)
		if err != nil {
			return err
		}
		if h.State != st || h.Class != c {
			return fmt.Errorf("%w: %s[%d] holds %s class %d block at %d", ErrCorrupt, st, c, h.State, h.Class, off)
		}
		if h.Prev != prev {
			return fmt.Errorf("%w: %s[%d] block at %d has prev %d, want %d", ErrCorrupt, st, c, off, h.Prev, prev)
		}
		prev = off
		off = h.Next
		length++
	}
	if length != *n {
		return fmt.Errorf("%w: %s[%d] length %d, count %d", ErrCorrupt, st, c, length, *n)
	}
	return nil
}
