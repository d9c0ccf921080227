package buddy

import "github.com/joshuapare/buddykit/internal/format"

// Stats returns per-class counts for classes 0..MaxClass, the byte totals and
// the operation counters.
func (a *Allocator) Stats() Stats {
	s := Stats{
		Size:       a.size,
		HeaderSize: HeaderSize,
		MinClass:   a.minClass,
		MaxClass:   a.maxClass,
		Slack:      a.slack,
		Classes:    make([]ClassStats, 0, int(a.maxClass)+1),
		Counters:   a.stats,
	}
	for c := 0; c <= int(a.maxClass); c++ {
		size := format.BlockSize(uint8(c))
		s.Classes = append(s.Classes, ClassStats{
			Class:     uint8(c),
			BlockSize: size,
			Free:      a.freeN[c],
			Used:      a.usedN[c],
		})
		s.FreeBytes += size * uint64(a.freeN[c])
		s.UsedBytes += size * uint64(a.usedN[c])
	}
	return s
}
