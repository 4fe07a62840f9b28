package cellid

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// Hash returns a well-mixed 64-bit hash of this cell id, for use as a hash
// map key. The raw id makes a poor key directly since nearby cells differ
// only in a few high bits.
func (ci CellID) Hash() uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(ci))
	return xxhash.Sum64(buf[:])
}

// Hash returns the hash of the equivalent curve-position id, so that the
// two encodings of the same cell hash identically.
func (ci CompactCellID) Hash() uint64 {
	return ci.CellID().Hash()
}
