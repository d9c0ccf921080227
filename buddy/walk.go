package buddy

import (
	"fmt"
	"io"

	"github.com/joshuapare/buddykit/internal/format"
)

// Block describes one block of the arena in address order.
type Block struct {
	Offset uint64 `json:"offset"`
	Class  uint8  `json:"class"`
	Size   uint64 `json:"size"`
	Used   bool   `json:"used"`
	Text   bool   `json:"text,omitempty"`
}

// Ref returns the payload reference of the block.
func (b Block) Ref() Ref { return b.Offset + HeaderSize }

// BlockIterator walks the arena header by header.
type BlockIterator struct {
	a    *Allocator
	off  uint64
	done bool
}

// Blocks returns an iterator over every block, starting at offset 0. The
// allocator must not be modified while the iterator is in use.
func (a *Allocator) Blocks() *BlockIterator {
	return &BlockIterator{a: a}
}

// Next returns the following block, or io.EOF once the tiled region has been
// covered.
func (it *BlockIterator) Next() (Block, error) {
	if it.done {
		return Block{}, io.EOF
	}
	if it.off >= it.a.tiled() {
		it.done = true
		return Block{}, io.EOF
	}

	h, next, err := format.NextBlock(it.a.arena, it.off)
	if err != nil {
		it.done = true
		return Block{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if next > it.a.tiled() {
		it.done = true
		return Block{}, fmt.Errorf("%w: block at %d ends at %d past %d", ErrCorrupt, it.off, next, it.a.tiled())
	}
	it.off = next

	return Block{
		Offset: h.Offset,
		Class:  h.Class,
		Size:   h.Size(),
		Used:   h.State == format.StateUsed,
		Text:   h.Text(),
	}, nil
}

// Layout collects every block in address order.
func (a *Allocator) Layout() ([]Block, error) {
	var blocks []Block
	it := a.Blocks()
	for {
		b, err := it.Next()
		if err == io.EOF {
			return blocks, nil
		}
		if err != nil {
			return blocks, err
		}
		blocks = append(blocks, b)
	}
}
