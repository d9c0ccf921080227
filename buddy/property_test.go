package buddy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Property_RandomAllocFree performs seeded random alloc/free steps and
// checks every invariant after each one.
func Test_Property_RandomAllocFree(t *testing.T) {
	for _, size := range []int{1024, 3000, 1 << 14} {
		a := newTestAllocator(t, size)
		rng := rand.New(rand.NewSource(int64(size)))
		live := make(map[Ref]byte)

		for step := range 500 {
			if rng.Intn(3) != 0 || len(live) == 0 {
				n := uint64(1 + rng.Intn(size/4))
				ref, p, err := a.Alloc(n)
				if err != nil {
					require.ErrorIs(t, err, ErrNoSpace, "step %d", step)
					continue
				}
				require.Len(t, p, int(n))
				tag := byte(step)
				for i := range p {
					p[i] = tag
				}
				live[ref] = tag
			} else {
				for ref := range live {
					p, err := a.Payload(ref)
					require.NoError(t, err)
					require.Equal(t, live[ref], p[0], "step %d: payload at %d overwritten", step, ref)
					require.NoError(t, a.Free(ref), "step %d", step)
					delete(live, ref)
					break
				}
			}
			requireCountsMatchLists(t, a)
			s := a.Stats()
			require.Equal(t, uint64(size), s.FreeBytes+s.UsedBytes+s.Slack, "step %d", step)
		}

		for ref := range live {
			require.NoError(t, a.Free(ref))
		}
		require.Equal(t, uint64(size), freeBytes(a)+a.Slack())
	}
}
