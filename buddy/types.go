package buddy

import (
	"io"
	"log/slog"
)

// Ref is the offset of an allocation's payload inside the arena. The zero
// value never names a payload because every payload follows a header.
type Ref = uint64

// Pool is the allocator surface shared by Allocator and Locked.
type Pool interface {
	// Alloc returns a block whose payload holds at least n bytes. The
	// returned slice has length n and aliases the arena.
	Alloc(n uint64) (Ref, []byte, error)

	// AllocString stores s plus a NUL terminator and flags the payload as
	// text for Report.
	AllocString(s string) (Ref, error)

	// Free returns the block to the pool and merges free buddies.
	Free(ref Ref) error

	// Payload returns the full usable payload of a live allocation.
	Payload(ref Ref) ([]byte, error)

	// Report writes the per-class table and the used-block listing.
	Report(w io.Writer, opts *ReportOptions) error

	// Stats returns a snapshot of counts and counters.
	Stats() Stats

	// Reset discards every allocation and repartitions the arena.
	Reset()

	// Verify checks every header and list invariant.
	Verify() error

	// Layout lists every block in address order.
	Layout() ([]Block, error)
}

// Options configures an Allocator. A nil *Options selects the defaults.
type Options struct {
	// Logger receives debug events (partition, splits, exhaustion, merges).
	// Defaults to a logger that discards everything.
	Logger *slog.Logger

	// VerifyEach runs Verify after every mutating operation and fails the
	// operation with ErrCorrupt when an invariant is broken.
	VerifyEach bool
}

// PayloadMode selects how Report renders used blocks.
type PayloadMode int

const (
	// PayloadText prints text-flagged payloads and a size for the rest.
	PayloadText PayloadMode = iota
	// PayloadNone omits the used-block listing.
	PayloadNone
	// PayloadHex prints the leading payload bytes in hex.
	PayloadHex
)

func (m PayloadMode) String() string {
	switch m {
	case PayloadText:
		return "text"
	case PayloadNone:
		return "none"
	case PayloadHex:
		return "hex"
	default:
		return "unknown"
	}
}

// ParsePayloadMode maps "text", "none" or "hex" to a PayloadMode.
func ParsePayloadMode(s string) (PayloadMode, bool) {
	switch s {
	case "text", "":
		return PayloadText, true
	case "none":
		return PayloadNone, true
	case "hex":
		return PayloadHex, true
	}
	return 0, false
}

// defaultHexBytes is the hex preview length when ReportOptions.HexBytes is zero.
const defaultHexBytes = 16

// ReportOptions configures Report. A nil *ReportOptions selects PayloadText.
type ReportOptions struct {
	Payloads PayloadMode
	HexBytes int
}

// ClassStats holds the list counts of one size class.
type ClassStats struct {
	Class     uint8  `json:"class"`
	BlockSize uint64 `json:"block_size"`
	Free      int    `json:"free"`
	Used      int    `json:"used"`
}

// Counters are cumulative operation counts since the last New or Reset.
type Counters struct {
	AllocCalls int `json:"alloc_calls"`
	FreeCalls  int `json:"free_calls"`
	Failures   int `json:"failures"`
	Splits     int `json:"splits"`
	Merges     int `json:"merges"`
}

// Stats is a snapshot of the allocator state.
type Stats struct {
	Size       uint64       `json:"size"`
	HeaderSize uint64       `json:"header_size"`
	MinClass   uint8        `json:"min_class"`
	MaxClass   uint8        `json:"max_class"`
	Slack      uint64       `json:"slack"`
	FreeBytes  uint64       `json:"free_bytes"`
	UsedBytes  uint64       `json:"used_bytes"`
	Classes    []ClassStats `json:"classes"`
	Counters   Counters     `json:"counters"`
}
