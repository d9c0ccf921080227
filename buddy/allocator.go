package buddy

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/buddykit/internal/format"
)

// HeaderSize is the per-block overhead in bytes.
const HeaderSize = format.HeaderSize

// numClasses covers every class a 64-bit length can produce.
const numClasses = format.MaxClass + 1

// Allocator is a buddy allocator over one arena. The zero value is not
// usable; construct one with New.
type Allocator struct {
	arena    []byte // Borrowed; never released by the allocator
	size     uint64
	maxClass uint8
	minClass uint8
	slack    uint64 // Trailing bytes too small for a minClass block

	// Heads of the per-class lists (format.NilOffset when empty) and their
	// exact lengths.
	free  [numClasses]uint64
	used  [numClasses]uint64
	freeN [numClasses]int
	usedN [numClasses]int

	stats      Counters
	log        *slog.Logger
	verifyEach bool
}

// New partitions arena into free blocks and returns an allocator over it.
// The caller keeps ownership of arena and must keep it alive, untouched
// outside of returned payloads, for as long as the allocator is used.
func New(arena []byte, opts *Options) (*Allocator, error) {
	if len(arena) == 0 {
		return nil, ErrEmptyPool
	}
	minClass := format.MinClass()
	if uint64(len(arena)) < format.BlockSize(minClass) {
		return nil, fmt.Errorf("%w: %d < %d bytes", ErrPoolTooSmall, len(arena), format.BlockSize(minClass))
	}
	if opts == nil {
		opts = &Options{}
	}

	a := &Allocator{
		arena:      arena,
		size:       uint64(len(arena)),
		minClass:   minClass,
		maxClass:   format.FloorClass(uint64(len(arena))),
		log:        opts.Logger,
		verifyEach: opts.VerifyEach,
	}
	if a.log == nil {
		a.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a.partition()
	return a, nil
}

// Reset forgets every allocation and repartitions the arena. Every old block
// header is wiped first, so refs returned before the reset fail Free and
// Payload until a new block happens to start at the same offset.
func (a *Allocator) Reset() {
	a.wipeHeaders()
	a.partition()
}

// wipeHeaders clears the header of every block in the arena. If the walk
// hits a damaged header the whole tiled region is zeroed instead.
func (a *Allocator) wipeHeaders() {
	for off := uint64(0); off < a.tiled(); {
		_, next, err := format.NextBlock(a.arena, off)
		if err != nil {
			clear(a.arena[:a.tiled()])
			return
		}
		format.ClearHeader(a.arena, off)
		off = next
	}
}

// partition clears all lists and carves the arena into one free block per
// set bit of its length, largest first.
func (a *Allocator) partition() {
	for c := range numClasses {
		a.free[c] = format.NilOffset
		a.used[c] = format.NilOffset
		a.freeN[c] = 0
		a.usedN[c] = 0
	}
	a.stats = Counters{}

	cursor := uint64(0)
	for c := int(a.maxClass); c >= int(a.minClass); c-- {
		if a.size&format.BlockSize(uint8(c)) == 0 {
			continue
		}
		// The cursor only holds bits above c, so the block is aligned.
		a.pushFree(cursor, uint8(c))
		cursor += format.BlockSize(uint8(c))
	}
	a.slack = a.size - cursor

	a.log.Debug("buddy: partitioned pool",
		"size", a.size,
		"max_class", a.maxClass,
		"min_class", a.minClass,
		"slack", a.slack,
	)
}

// Size returns the arena length.
func (a *Allocator) Size() uint64 { return a.size }

// MaxClass returns floor(log2(Size())).
func (a *Allocator) MaxClass() uint8 { return a.maxClass }

// MinClass returns the smallest class the allocator hands out.
func (a *Allocator) MinClass() uint8 { return a.minClass }

// Slack returns the trailing bytes not covered by any block.
func (a *Allocator) Slack() uint64 { return a.slack }

// FreeCount returns the number of free blocks of class c.
func (a *Allocator) FreeCount(c uint8) int {
	if int(c) >= numClasses {
		return 0
	}
	return a.freeN[c]
}

// UsedCount returns the number of used blocks of class c.
func (a *Allocator) UsedCount(c uint8) int {
	if int(c) >= numClasses {
		return 0
	}
	return a.usedN[c]
}

// tiled is the end of the region covered by blocks.
func (a *Allocator) tiled() uint64 { return a.size - a.slack }

// checkAfter runs Verify when VerifyEach is set.
func (a *Allocator) checkAfter(op string) error {
	if !a.verifyEach {
		return nil
	}
	if err := a.Verify(); err != nil {
		return fmt.Errorf("after %s: %w", op, err)
	}
	return nil
}
