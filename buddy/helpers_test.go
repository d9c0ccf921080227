package buddy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/buddykit/internal/format"
)

// newTestAllocator builds an allocator over a fresh heap arena with
// VerifyEach enabled, so every mutating call also checks all invariants.
func newTestAllocator(t testing.TB, size int) *Allocator {
	t.Helper()
	a, err := New(make([]byte, size), &Options{VerifyEach: true})
	require.NoError(t, err)
	require.NoError(t, a.Verify())
	return a
}

// freeCounts returns freeN[0..MaxClass].
func freeCounts(a *Allocator) []int {
	out := make([]int, int(a.maxClass)+1)
	for c := range out {
		out[c] = a.freeN[c]
	}
	return out
}

// usedCounts returns usedN[0..MaxClass].
func usedCounts(a *Allocator) []int {
	out := make([]int, int(a.maxClass)+1)
	for c := range out {
		out[c] = a.usedN[c]
	}
	return out
}

// listLen walks a list and returns its length.
func listLen(t testing.TB, a *Allocator, st format.State, c uint8) int {
	t.Helper()
	head, _ := a.list(st, c)
	n := 0
	for off := *head; off != format.NilOffset; n++ {
		h, err := a.header(off)
		require.NoError(t, err)
		off = h.Next
	}
	return n
}

// listOffsets returns the block offsets of a list in list order.
func listOffsets(t testing.TB, a *Allocator, st format.State, c uint8) []uint64 {
	t.Helper()
	head, _ := a.list(st, c)
	var out []uint64
	for off := *head; off != format.NilOffset; {
		out = append(out, off)
		h, err := a.header(off)
		require.NoError(t, err)
		off = h.Next
	}
	return out
}

// freeBytes sums the sizes of all blocks on the free lists.
func freeBytes(a *Allocator) uint64 {
	var total uint64
	for c := range numClasses {
		total += format.BlockSize(uint8(c)) * uint64(a.freeN[c])
	}
	return total
}

// requireCountsMatchLists checks that every count equals its list length.
func requireCountsMatchLists(t testing.TB, a *Allocator) {
	t.Helper()
	for c := range numClasses {
		require.Equal(t, a.freeN[c], listLen(t, a, format.StateFree, uint8(c)), "free[%d]", c)
		require.Equal(t, a.usedN[c], listLen(t, a, format.StateUsed, uint8(c)), "used[%d]", c)
	}
}
