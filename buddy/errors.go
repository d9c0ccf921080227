package buddy

import "errors"

var (
	// ErrEmptyPool indicates a zero-length arena.
	ErrEmptyPool = errors.New("buddy: empty pool")

	// ErrPoolTooSmall indicates an arena that cannot hold a single block.
	ErrPoolTooSmall = errors.New("buddy: pool smaller than the minimum block")

	// ErrZeroSize indicates a request for zero bytes.
	ErrZeroSize = errors.New("buddy: zero-size request")

	// ErrTooLarge indicates a request that needs a block larger than the whole pool.
	ErrTooLarge = errors.New("buddy: request larger than pool")

	// ErrNoSpace indicates that no free block is large enough, even after splitting.
	ErrNoSpace = errors.New("buddy: no free block large enough")

	// ErrListUnderflow indicates a pop from an empty free list.
	ErrListUnderflow = errors.New("buddy: free list underflow")

	// ErrBadClass indicates a size class outside [MinClass, MaxClass].
	ErrBadClass = errors.New("buddy: size class out of range")

	// ErrBadRef indicates a reference that does not name a block payload in this pool.
	ErrBadRef = errors.New("buddy: bad reference")

	// ErrNotUsed indicates an attempt to free or read a block that is not allocated.
	ErrNotUsed = errors.New("buddy: expected used block")

	// ErrCorrupt indicates that the headers or lists violate an allocator invariant.
	ErrCorrupt = errors.New("buddy: corrupt pool")
)
