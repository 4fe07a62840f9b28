package cellid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosToIJInverse(t *testing.T) {
	for orientation := 0; orientation < 4; orientation++ {
		for pos := 0; pos < 4; pos++ {
			assert.Equal(t, pos, ijToPos[orientation][posToIJ[orientation][pos]],
				"orientation %d pos %d", orientation, pos)
		}
	}
}

func TestLookupTablesAreInverse(t *testing.T) {
	for orientation := 0; orientation < 4; orientation++ {
		for pos := 0; pos < 1<<(2*lookupBits); pos++ {
			entry := lookupIJ[pos<<2|orientation]
			ij := entry >> 2
			assert.Equal(t, pos<<2|entry&3, lookupPos[ij<<2|orientation],
				"orientation %d pos %d", orientation, pos)
		}
	}
}

// Each orientation's lookup block must enumerate every (i,j) subcell exactly
// once, and consecutive curve positions must be adjacent in the grid.
func TestLookupTablesTraceHilbertCurve(t *testing.T) {
	for orientation := 0; orientation < 4; orientation++ {
		seen := make(map[int]bool, 1<<(2*lookupBits))
		prevI, prevJ := -1, -1
		for pos := 0; pos < 1<<(2*lookupBits); pos++ {
			ij := lookupIJ[pos<<2|orientation] >> 2
			i := ij >> lookupBits
			j := ij & (1<<lookupBits - 1)
			assert.False(t, seen[ij], "orientation %d revisits (%d,%d)", orientation, i, j)
			seen[ij] = true
			if pos > 0 {
				di, dj := i-prevI, j-prevJ
				if di < 0 {
					di = -di
				}
				if dj < 0 {
					dj = -dj
				}
				assert.Equal(t, 1, di+dj,
					"orientation %d pos %d jumps from (%d,%d) to (%d,%d)",
					orientation, pos, prevI, prevJ, i, j)
			}
			prevI, prevJ = i, j
		}
	}
}
