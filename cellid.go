// Package cellid implements compact 64-bit identifiers for the cells of a
// recursive subdivision of the unit sphere.
//
// The sphere is projected onto the six faces of a cube, and each face is
// recursively divided into four quadrants. A CellID packs the face, the
// position of the cell along a Hilbert space-filling curve over that face,
// and the subdivision level into a single uint64, so that sequentially
// increasing ids follow a continuous space-filling curve over the entire
// sphere. Sorting ids by their integer value sorts them along the curve.
//
// Two encodings are provided. CellID is the canonical curve-position
// encoding supporting levels 0..30 and all navigation, ordering and range
// operations. CompactCellID is an alternate face+path+level encoding capped
// at level 28; it trades depth for a directly readable root-to-leaf path and
// delegates curve arithmetic to CellID through a lossless conversion.
//
// # Limitations
//
// 1. Both types are plain value types. There is no shared state, so values
// may be used from any number of goroutines without synchronization.
//
// 2. Operations document their preconditions (REQUIRES). Violating a
// precondition on one of the unchecked fast paths yields an unspecified id;
// callers handling external input should validate with IsValid first.
// Parsing and decoding never panic: malformed input degrades to the invalid
// zero id or to an error return.
//
// 3. A CellID deeper than level 28 has no exact CompactCellID counterpart.
// The factories that may observe such ids (point, latlng, token and stream
// decoding) truncate to the level-28 ancestor; the raw conversion does not.
package cellid

import (
	"math/bits"
)

const (
	faceBits = 3
	numFaces = 6
	posBits  = 2*maxLevel + 1
	maxSize  = 1 << maxLevel

	// MaxLevel is the deepest subdivision level a CellID can represent.
	MaxLevel = maxLevel
	maxLevel = 30

	// wrapOffset is the span of the full curve (6 faces of position range),
	// used when wrapping between the last and first face.
	wrapOffset = uint64(numFaces) << posBits
)

// A CellID identifies one cell of the subdivision:
//
// [ face (3 bits) - Hilbert curve position (61 bits) ]
//
// The position is encoded at the cell center, so the lowest set bit encodes
// the level: a cell at level k has its lowest set bit at position
// 2*(MaxLevel-k). The zero value is the unique invalid id.
type CellID uint64

// None returns the invalid zero cell id.
func None() CellID { return CellID(0) }

// Sentinel returns an invalid cell id guaranteed to be larger than any valid
// cell id. It is useful as an exclusive upper bound when indexing.
func Sentinel() CellID { return CellID(^uint64(0)) }

// CellIDFromFace returns the level-0 cell covering the given cube face.
// REQUIRES: 0 <= face <= 5.
func CellIDFromFace(face int) CellID {
	return CellID(uint64(face)<<posBits + lsbForLevel(0))
}

// CellIDFromFacePosLevel returns the cell at the given level containing the
// given Hilbert curve position on the given face. The position is rounded to
// the center of the cell at that level.
// REQUIRES: 0 <= face <= 5, 0 <= level <= MaxLevel.
func CellIDFromFacePosLevel(face int, pos uint64, level int) CellID {
	return CellID(uint64(face)<<posBits + (pos | 1)).Parent(level)
}

// CellIDFromPoint returns the leaf cell containing p. The point does not
// need to be unit length. Points on a cell boundary deterministically map to
// one of the adjacent cells.
func CellIDFromPoint(p Point) CellID {
	f, u, v := xyzToFaceUV(p)
	return cellIDFromFaceIJ(f, stToIJ(uvToST(u)), stToIJ(uvToST(v)))
}

// CellIDFromLatLng returns the leaf cell containing ll.
func CellIDFromLatLng(ll LatLng) CellID {
	return CellIDFromPoint(ll.Point())
}

// CellIDFromFaceIJ returns the leaf cell at the given (i,j) coordinates on
// the given face.
// REQUIRES: 0 <= i,j < 1<<MaxLevel.
func CellIDFromFaceIJ(face, i, j int) CellID {
	return cellIDFromFaceIJ(face, i, j)
}

// Face returns the cube face this cell belongs to, in the range 0..5.
func (ci CellID) Face() int {
	return int(uint64(ci) >> posBits)
}

// Pos returns the position of the cell center along the Hilbert curve over
// its face, in the range 0..2^61-1.
func (ci CellID) Pos() uint64 {
	return uint64(ci) & (^uint64(0) >> faceBits)
}

// Level returns the subdivision level of the cell, in the range 0..MaxLevel.
// REQUIRES: ci != None() (the end iterators returned by ChildEnd and End are
// allowed, the zero id is not).
func (ci CellID) Level() int {
	return maxLevel - bits.TrailingZeros64(uint64(ci))>>1
}

// IsValid reports whether ci represents a valid cell: the face is in range
// and the marker bit sits on an even bit-pair boundary.
func (ci CellID) IsValid() bool {
	return ci.Face() < numFaces && ci.lsb()&0x1555555555555555 != 0
}

// IsLeaf reports whether ci is a leaf (level 30) cell.
func (ci CellID) IsLeaf() bool { return uint64(ci)&1 != 0 }

// IsFace reports whether ci is a top-level face cell.
func (ci CellID) IsFace() bool { return uint64(ci)&(lsbForLevel(0)-1) == 0 }

// lsb returns the lowest set bit, whose position encodes the level.
func (ci CellID) lsb() uint64 { return uint64(ci) & -uint64(ci) }

// lsbForLevel returns the lowest set bit of cells at the given level.
func lsbForLevel(level int) uint64 { return 1 << uint(2*(maxLevel-level)) }

// ChildPosition returns the position (0..3) of this cell within its parent.
// REQUIRES: ci is valid and Level() >= 1.
func (ci CellID) ChildPosition() int {
	return ci.ChildPositionAt(ci.Level())
}

// ChildPositionAt returns the position (0..3) of this cell's ancestor at the
// given level within its parent. For example, ChildPositionAt(1) returns the
// position of the level-1 ancestor within its face cell.
// REQUIRES: ci is valid and 1 <= level <= ci.Level().
func (ci CellID) ChildPositionAt(level int) int {
	return int(uint64(ci)>>uint(2*(maxLevel-level)+1)) & 3
}

// Parent returns the ancestor of this cell at the given level.
// REQUIRES: ci is valid and 0 <= level <= ci.Level().
func (ci CellID) Parent(level int) CellID {
	lsb := lsbForLevel(level)
	return CellID(uint64(ci)&-lsb | lsb)
}

// ImmediateParent returns the cell one level up.
// REQUIRES: ci is valid and not a face cell.
func (ci CellID) ImmediateParent() CellID {
	lsb := ci.lsb() << 2
	return CellID(uint64(ci)&-lsb | lsb)
}

// Child returns the immediate child of this cell at the given traversal
// order position (0..3).
// REQUIRES: ci is valid and not a leaf.
func (ci CellID) Child(position int) CellID {
	// Move the marker bit down two positions (subtract 4*lsb, add lsb),
	// then advance to the requested child (add 2*position*lsb).
	lsb := ci.lsb() >> 2
	return CellID(uint64(ci) + (2*uint64(position)+1-4)*lsb)
}

// ChildBegin returns the first child of this cell in Hilbert curve order.
// Iterate with Next and compare against ChildEnd; the end value is exclusive
// and may not itself be a valid id.
// REQUIRES: ci is valid and not a leaf.
func (ci CellID) ChildBegin() CellID {
	lsb := ci.lsb()
	return CellID(uint64(ci) - lsb + lsb>>2)
}

// ChildBeginAt returns the first descendant of this cell at the given level.
// REQUIRES: ci is valid and ci.Level() <= level <= MaxLevel.
func (ci CellID) ChildBeginAt(level int) CellID {
	return CellID(uint64(ci) - ci.lsb() + lsbForLevel(level))
}

// ChildEnd returns the exclusive end of this cell's immediate children.
// The result is a position marker, not necessarily a valid id: compare
// against it, never navigate from it.
// REQUIRES: ci is valid and not a leaf.
func (ci CellID) ChildEnd() CellID {
	lsb := ci.lsb()
	return CellID(uint64(ci) + lsb + lsb>>2)
}

// ChildEndAt returns the exclusive end of this cell's descendants at the
// given level.
// REQUIRES: ci is valid and ci.Level() <= level <= MaxLevel.
func (ci CellID) ChildEndAt(level int) CellID {
	return CellID(uint64(ci) + ci.lsb() + lsbForLevel(level))
}

// Next returns the next cell at the same level along the curve. It moves
// correctly from one face to the following one, but does not wrap from the
// last face back to the first.
func (ci CellID) Next() CellID {
	return CellID(uint64(ci) + ci.lsb()<<1)
}

// Prev returns the previous cell at the same level along the curve, without
// wrapping.
func (ci CellID) Prev() CellID {
	return CellID(uint64(ci) - ci.lsb()<<1)
}

// NextWrap is like Next but wraps from the last position on face 5 back to
// the first position on face 0.
// REQUIRES: ci is valid.
func (ci CellID) NextWrap() CellID {
	n := ci.Next()
	if uint64(n) < wrapOffset {
		return n
	}
	return CellID(uint64(n) - wrapOffset)
}

// PrevWrap is like Prev but wraps from the first position on face 0 to the
// last position on face 5.
// REQUIRES: ci is valid.
func (ci CellID) PrevWrap() CellID {
	p := ci.Prev()
	if uint64(p) < wrapOffset {
		return p
	}
	return CellID(uint64(p) + wrapOffset)
}

// Advance moves steps cells along the curve at the current level, in either
// direction. The position is clamped to [Begin(level), End(level)]; it never
// advances past End or before Begin.
func (ci CellID) Advance(steps int64) CellID {
	if steps == 0 {
		return ci
	}
	shift := uint(2*(maxLevel-ci.Level()) + 1)
	if steps < 0 {
		if min := -int64(uint64(ci) >> shift); steps < min {
			steps = min
		}
	} else {
		if max := int64((wrapOffset + ci.lsb() - uint64(ci)) >> shift); steps > max {
			steps = max
		}
	}
	return CellID(uint64(ci) + (uint64(steps) << shift))
}

// AdvanceWrap is like Advance but wraps between the first and last faces as
// necessary.
// REQUIRES: ci is valid.
func (ci CellID) AdvanceWrap(steps int64) CellID {
	if steps == 0 {
		return ci
	}
	shift := uint(2*(maxLevel-ci.Level()) + 1)
	if steps < 0 {
		if min := -int64(uint64(ci) >> shift); steps < min {
			wrap := int64(wrapOffset >> shift)
			steps %= wrap
			if steps < min {
				steps += wrap
			}
		}
	} else {
		// Unlike Advance we don't want to return End(level).
		if max := int64((wrapOffset - uint64(ci)) >> shift); steps > max {
			wrap := int64(wrapOffset >> shift)
			steps %= wrap
			if steps > max {
				steps -= wrap
			}
		}
	}
	return CellID(uint64(ci) + (uint64(steps) << shift))
}

// DistanceFromBegin returns the number of steps between this cell and
// Begin(ci.Level()). The result is always non-negative.
func (ci CellID) DistanceFromBegin() int64 {
	return int64(uint64(ci) >> uint(2*(maxLevel-ci.Level())+1))
}

// RangeMin returns the first leaf cell contained within this cell. The range
// [RangeMin, RangeMax] is inclusive, and both bounds are valid leaf ids.
// Note that Sentinel().RangeMin() == Sentinel().
func (ci CellID) RangeMin() CellID {
	return CellID(uint64(ci) - (ci.lsb() - 1))
}

// RangeMax returns the last leaf cell contained within this cell.
func (ci CellID) RangeMax() CellID {
	return CellID(uint64(ci) + (ci.lsb() - 1))
}

// Contains reports whether other is contained within this cell.
// REQUIRES: both ids are valid.
func (ci CellID) Contains(other CellID) bool {
	return other >= ci.RangeMin() && other <= ci.RangeMax()
}

// Intersects reports whether this cell and other overlap, i.e. one contains
// the other.
// REQUIRES: both ids are valid.
func (ci CellID) Intersects(other CellID) bool {
	return other.RangeMin() <= ci.RangeMax() && other.RangeMax() >= ci.RangeMin()
}

// CommonAncestorLevel returns the deepest level at which this cell and other
// share a common ancestor, where parent(Level()) of a cell is the cell
// itself. It returns -1 if the cells are on different faces.
func (ci CellID) CommonAncestorLevel(other CellID) int {
	x := uint64(ci ^ other)
	if x < ci.lsb() {
		x = ci.lsb()
	}
	if x < other.lsb() {
		x = other.lsb()
	}
	msb := 63 - bits.LeadingZeros64(x)
	if msb > 60 {
		return -1
	}
	return (60 - msb) >> 1
}

// MaxTile returns the largest cell with the same RangeMin as this one and
// whose RangeMax is strictly below limit.RangeMin. It returns limit if no
// such cell exists. Together with Next it can tile a leaf cell range with a
// small number of cells of mixed levels.
func (ci CellID) MaxTile(limit CellID) CellID {
	id := ci
	start := id.RangeMin()
	if start >= limit.RangeMin() {
		return limit
	}
	if id.RangeMax() >= limit {
		// The cell is too large, shrink it. When tiling dense ranges this
		// loop usually executes only once.
		for {
			id = id.Child(0)
			if id.RangeMax() < limit {
				break
			}
		}
		return id
	}
	// The cell may be too small. Grow it if possible.
	for !id.IsFace() {
		parent := id.ImmediateParent()
		if parent.RangeMin() != start || parent.RangeMax() >= limit {
			break
		}
		id = parent
	}
	return id
}

// Begin returns the first cell at the given level in curve order across all
// six faces.
func Begin(level int) CellID {
	return CellIDFromFace(0).ChildBeginAt(level)
}

// End returns the exclusive iteration bound for the given level. The result
// is not a valid cell id.
func End(level int) CellID {
	return CellIDFromFace(5).ChildEndAt(level)
}

// SizeIJ returns the edge length of cells at the given level in (i,j)-space.
func SizeIJ(level int) int {
	return 1 << uint(maxLevel-level)
}

// SizeST returns the edge length of cells at the given level in (s,t)-space.
func SizeST(level int) float64 {
	return ijToSTMin(SizeIJ(level))
}

func clampInt(x, min, max int) int {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
