package buddy

import (
	"io"
	"sync"
)

// Locked serializes every call on an Allocator with a single mutex.
type Locked struct {
	mu sync.Mutex
	a  *Allocator
}

var (
	_ Pool = (*Allocator)(nil)
	_ Pool = (*Locked)(nil)
)

// NewLocked wraps a. The caller must stop using a directly.
func NewLocked(a *Allocator) *Locked {
	return &Locked{a: a}
}

func (l *Locked) Alloc(n uint64) (Ref, []byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Alloc(n)
}

func (l *Locked) AllocString(s string) (Ref, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.AllocString(s)
}

func (l *Locked) Free(ref Ref) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Free(ref)
}

// Payload returns the payload of ref. Reading or writing the returned slice is
// not guarded; it belongs to whoever owns ref.
func (l *Locked) Payload(ref Ref) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Payload(ref)
}

func (l *Locked) Report(w io.Writer, opts *ReportOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Report(w, opts)
}

func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Stats()
}

func (l *Locked) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Reset()
}

func (l *Locked) Verify() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Verify()
}

func (l *Locked) Layout() ([]Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Layout()
}
