package buddy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/buddykit/internal/format"
)

func Test_New_Rejects(t *testing.T) {
	_, err := New(nil, nil)
	require.ErrorIs(t, err, ErrEmptyPool)

	_, err = New(make([]byte, 0), nil)
	require.ErrorIs(t, err, ErrEmptyPool)

	_, err = New(make([]byte, 31), nil)
	require.ErrorIs(t, err, ErrPoolTooSmall)

	a, err := New(make([]byte, 32), nil)
	require.NoError(t, err)
	require.Equal(t, 1, a.FreeCount(5))
}

func Test_New_1024(t *testing.T) {
	a := newTestAllocator(t, 1024)

	assert.Equal(t, uint64(1024), a.Size())
	assert.Equal(t, uint8(10), a.MaxClass())
	assert.Equal(t, uint8(5), a.MinClass())
	assert.Equal(t, uint64(0), a.Slack())

	want := make([]int, 11)
	want[10] = 1
	assert.Equal(t, want, freeCounts(a))
	assert.Equal(t, make([]int, 11), usedCounts(a))
	assert.Equal(t, []uint64{0}, listOffsets(t, a, format.StateFree, 10))
}

// Test_Partition_BinaryDecomposition checks that the initial free blocks are
// the set bits of the length, laid out largest first.
func Test_Partition_BinaryDecomposition(t *testing.T) {
	a := newTestAllocator(t, 1024+256+64+32)

	assert.Equal(t, uint8(10), a.MaxClass())
	assert.Equal(t, []uint64{0}, listOffsets(t, a, format.StateFree, 10))
	assert.Equal(t, []uint64{1024}, listOffsets(t, a, format.StateFree, 8))
	assert.Equal(t, []uint64{1280}, listOffsets(t, a, format.StateFree, 6))
	assert.Equal(t, []uint64{1344}, listOffsets(t, a, format.StateFree, 5))
	assert.Zero(t, a.FreeCount(9))
	assert.Zero(t, a.FreeCount(7))
}

// Test_Partition_CoversPool checks that free bytes plus slack equal the pool
// length for a spread of sizes, and that slack is zero whenever the length
// has no bits below the minimum block.
func Test_Partition_CoversPool(t *testing.T) {
	for _, size := range []int{32, 33, 63, 64, 100, 1000, 1024, 1025, 1500, 4096, 4097, 65535, 1 << 20} {
		a := newTestAllocator(t, size)
		assert.Equal(t, uint64(size), freeBytes(a)+a.Slack(), "size %d", size)
		assert.Less(t, a.Slack(), format.BlockSize(a.MinClass()), "size %d", size)
		if size%32 == 0 {
			assert.Zero(t, a.Slack(), "size %d", size)
		}
		requireCountsMatchLists(t, a)
	}
}

func Test_Reset_DiscardsAllocations(t *testing.T) {
	a := newTestAllocator(t, 1024)
	initial := freeCounts(a)

	small, _, err := a.Alloc(30)
	require.NoError(t, err)
	large, _, err := a.Alloc(200)
	require.NoError(t, err)
	require.Equal(t, Ref(HeaderSize), small)
	require.Equal(t, Ref(256+HeaderSize), large)

	a.Reset()
	require.NoError(t, a.Verify())
	assert.Equal(t, initial, freeCounts(a))
	assert.Equal(t, make([]int, 11), usedCounts(a))
	assert.Equal(t, Counters{}, a.Stats().Counters)

	// Offset 0 starts the new class-10 free block; offset 256 is payload.
	require.ErrorIs(t, a.Free(small), ErrNotUsed)
	require.ErrorIs(t, a.Free(large), ErrBadRef)
	_, err = a.Payload(large)
	require.ErrorIs(t, err, ErrBadRef)
}

func Test_Counts_OutOfRange(t *testing.T) {
	a := newTestAllocator(t, 64)
	assert.Zero(t, a.FreeCount(200))
	assert.Zero(t, a.UsedCount(200))
}
