package cellid

import (
	"strconv"
	"strings"
)

const (
	// CompactMaxLevel is the deepest level a CompactCellID can represent.
	// It is shallower than MaxLevel so that an explicit 5-bit level field
	// fits alongside two path bits per level within 64 bits.
	CompactMaxLevel = compactMaxLevel

	compactMaxLevel  = 28
	compactLevelBits = 5
	compactPathBits  = 64 - faceBits - compactLevelBits
	compactFaceShift = 64 - faceBits
	compactLevelMask = 1<<compactLevelBits - 1
	compactPathMask  = 1<<compactPathBits - 1

	// compactRootMarker resolves the degenerate zero encoding: the natural
	// bit pattern of (face 0, level 0, empty path) is all zeros, which
	// collides with the invalid id. That one cell instead sets the highest
	// (otherwise unused) path bit. Every other cell has a non-zero face or
	// level field and needs no marker.
	compactRootMarker = uint64(1) << (compactLevelBits + compactPathBits - 1)
)

// A CompactCellID identifies a cell by its face and its root-to-leaf
// quadtree path:
//
// [ face (3 bits) - path (2 bits per level, most significant first) -
//
//	zero padding - level (5 bits) ]
//
// Levels run 0..CompactMaxLevel (28). The zero value is the unique invalid
// id. The path field of a valid cell has no bits set above position
// 2*level, so the path reads unambiguously at the encoded level.
//
// Curve-position arithmetic (ordering, ranges, wrapping) is defined on the
// CellID layout only; CompactCellID delegates those operations through the
// conversion and uses its own layout just for face/level/path extraction
// and shallow parent/child hops.
type CompactCellID uint64

// CompactNone returns the invalid zero compact cell id.
func CompactNone() CompactCellID { return CompactCellID(0) }

// CompactCellIDFromFace returns the level-0 compact cell for the given face.
// REQUIRES: 0 <= face <= 5.
func CompactCellIDFromFace(face int) CompactCellID {
	return CompactCellIDFromFaceLevel(face, 0)
}

// CompactCellIDFromFaceLevel returns the first (path all zeros) compact
// cell at the given level on the given face. Out-of-range arguments yield
// the invalid id.
func CompactCellIDFromFaceLevel(face, level int) CompactCellID {
	if face < 0 || face > 5 || level < 0 || level > compactMaxLevel {
		return CompactNone()
	}
	if level == 0 {
		id := uint64(face) << compactFaceShift
		if id == 0 {
			id = compactRootMarker
		}
		return CompactCellID(id)
	}
	return CompactCellIDFromCellID(CellIDFromFacePosLevel(face, 0, level))
}

// CompactCellIDFromCellID converts a curve-position id to the compact
// encoding. A CellID deeper than CompactMaxLevel has no compact
// counterpart and converts to the invalid id; callers that want the
// truncating behavior must take Parent(CompactMaxLevel) first, as the
// point, latlng, token and stream factories do.
func CompactCellIDFromCellID(ci CellID) CompactCellID {
	if !ci.IsValid() {
		return CompactNone()
	}
	face := ci.Face()
	level := ci.Level()
	if level > compactMaxLevel {
		return CompactNone()
	}
	if level == 0 {
		return CompactCellIDFromFaceLevel(face, 0)
	}

	// The curve-position layout gives no direct access to the root-to-leaf
	// path, only to depth-local child positions. Walk up to the face cell
	// collecting positions leaf-to-root, then pack them in the opposite
	// order.
	var stack [compactMaxLevel]int
	n := 0
	cur := ci
	for cur.Level() > 0 {
		stack[n] = cur.ChildPosition()
		n++
		cur = cur.ImmediateParent()
	}
	if cur.Face() != face {
		return CompactNone()
	}
	var path uint64
	for i := n - 1; i >= 0; i-- {
		path = path<<2 | uint64(stack[i])
	}
	return CompactCellID(uint64(face)<<compactFaceShift |
		path<<compactLevelBits |
		uint64(level))
}

// CellID converts back to the curve-position encoding by descending from
// the face cell along the stored path. The conversion is exact for every
// valid compact id.
func (ci CompactCellID) CellID() CellID {
	if ci == 0 {
		return None()
	}
	if uint64(ci) == compactRootMarker {
		return CellIDFromFace(0)
	}
	face := int(uint64(ci) >> compactFaceShift)
	level := int(uint64(ci) & compactLevelMask)
	if face >= numFaces || level > compactMaxLevel {
		return None()
	}
	result := CellIDFromFace(face)
	if level == 0 {
		return result
	}
	path := uint64(ci) >> compactLevelBits & compactPathMask
	for i := 0; i < level; i++ {
		result = result.Child(int(path >> uint(2*(level-1-i)) & 3))
	}
	if !result.IsValid() {
		return None()
	}
	return result
}

// CanRepresent reports whether id converts to a CompactCellID without loss.
func CanRepresent(id CellID) bool {
	return id.IsValid() && id.Level() <= compactMaxLevel
}

// CompactCellIDFromPoint returns the compact cell containing p. The leaf
// cell containing p is deeper than CompactMaxLevel, so this is its
// level-28 ancestor; the precision loss is intentional.
func CompactCellIDFromPoint(p Point) CompactCellID {
	return CompactCellIDFromCellID(truncateToCompact(CellIDFromPoint(p)))
}

// CompactCellIDFromLatLng returns the compact cell containing ll, truncated
// to CompactMaxLevel like CompactCellIDFromPoint.
func CompactCellIDFromLatLng(ll LatLng) CompactCellID {
	return CompactCellIDFromCellID(truncateToCompact(CellIDFromLatLng(ll)))
}

// CompactCellIDFromFacePosLevel is the compact analogue of
// CellIDFromFacePosLevel. Levels above CompactMaxLevel yield the invalid id.
func CompactCellIDFromFacePosLevel(face int, pos uint64, level int) CompactCellID {
	if level > compactMaxLevel {
		return CompactNone()
	}
	return CompactCellIDFromCellID(CellIDFromFacePosLevel(face, pos, level))
}

// CompactCellIDFromFaceIJ returns the compact cell for the leaf cell at
// (i,j) on the given face, truncated to CompactMaxLevel.
func CompactCellIDFromFaceIJ(face, i, j int) CompactCellID {
	return CompactCellIDFromCellID(truncateToCompact(CellIDFromFaceIJ(face, i, j)))
}

// truncateToCompact replaces ids deeper than CompactMaxLevel with their
// level-28 ancestor. Invalid ids pass through unchanged.
func truncateToCompact(id CellID) CellID {
	if id.IsValid() && id.Level() > compactMaxLevel {
		return id.Parent(compactMaxLevel)
	}
	return id
}

// Face returns the cube face of this cell, in the range 0..5.
func (ci CompactCellID) Face() int {
	if uint64(ci) == compactRootMarker {
		return 0
	}
	return int(uint64(ci) >> compactFaceShift)
}

// Level returns the subdivision level, in the range 0..CompactMaxLevel.
func (ci CompactCellID) Level() int {
	if uint64(ci) == compactRootMarker {
		return 0
	}
	return int(uint64(ci) & compactLevelMask)
}

// Path returns the root-to-leaf child positions packed two bits per level,
// most significant first. Face cells return 0.
func (ci CompactCellID) Path() uint64 {
	level := ci.Level()
	if level == 0 {
		return 0
	}
	path := uint64(ci) >> compactLevelBits & compactPathMask
	return path & (1<<uint(2*level) - 1)
}

// IsValid reports whether ci represents a valid cell: face and level in
// range, and no stray path bits above position 2*level.
func (ci CompactCellID) IsValid() bool {
	if ci == 0 {
		return false
	}
	if uint64(ci) == compactRootMarker {
		return true
	}
	face := int(uint64(ci) >> compactFaceShift)
	level := int(uint64(ci) & compactLevelMask)
	if face >= numFaces || level > compactMaxLevel {
		return false
	}
	path := uint64(ci) >> compactLevelBits & compactPathMask
	// Bits above the path of a shallower cell must be zero, otherwise
	// depth readout would be ambiguous.
	return path>>uint(2*level) == 0
}

// IsLeaf reports whether ci is at CompactMaxLevel.
func (ci CompactCellID) IsLeaf() bool { return ci.Level() == compactMaxLevel }

// IsFace reports whether ci is a top-level face cell.
func (ci CompactCellID) IsFace() bool { return ci.Level() == 0 }

// ChildPosition returns the position (0..3) of this cell within its parent,
// or -1 for face cells and invalid ids.
func (ci CompactCellID) ChildPosition() int {
	if !ci.IsValid() || ci.Level() == 0 {
		return -1
	}
	return int(ci.Path() & 3)
}

// ChildPositionAt returns the position (0..3) of this cell's ancestor at
// the given level within its parent, or -1 when out of range.
func (ci CompactCellID) ChildPositionAt(level int) int {
	if !ci.IsValid() || level <= 0 || level > ci.Level() {
		return -1
	}
	return int(ci.Path() >> uint(2*(ci.Level()-level)) & 3)
}

// ImmediateParent returns the cell one level up, or the invalid id for face
// cells. A single hop is a direct bit operation on the compact layout.
func (ci CompactCellID) ImmediateParent() CompactCellID {
	if !ci.IsValid() || ci.Level() == 0 {
		return CompactNone()
	}
	level := ci.Level() - 1
	path := ci.Path() >> 2
	id := uint64(ci.Face())<<compactFaceShift |
		path<<compactLevelBits |
		uint64(level)
	if id == 0 {
		id = compactRootMarker
	}
	return CompactCellID(id)
}

// Parent returns the ancestor at the given level. Hops of up to 5 levels
// stay on the compact layout; larger jumps delegate through the
// curve-position encoding.
func (ci CompactCellID) Parent(level int) CompactCellID {
	if level < 0 || level > compactMaxLevel {
		return CompactNone()
	}
	if level >= ci.Level() {
		return ci
	}
	if ci.Level()-level > 5 {
		return CompactCellIDFromCellID(ci.CellID().Parent(level))
	}
	cur := ci
	for cur.Level() > level {
		cur = cur.ImmediateParent()
	}
	return cur
}

// Child returns the immediate child at the given traversal position (0..3),
// or the invalid id when ci is invalid, already at CompactMaxLevel, or the
// position is out of range. A single hop is a direct bit operation.
func (ci CompactCellID) Child(position int) CompactCellID {
	if !ci.IsValid() || position < 0 || position > 3 {
		return CompactNone()
	}
	level := ci.Level()
	if level >= compactMaxLevel {
		return CompactNone()
	}
	path := ci.Path()<<2 | uint64(position)
	return CompactCellID(uint64(ci.Face())<<compactFaceShift |
		path<<compactLevelBits |
		uint64(level+1))
}

// ChildBegin returns the first immediate child.
func (ci CompactCellID) ChildBegin() CompactCellID {
	if ci.Level() >= compactMaxLevel {
		return CompactNone()
	}
	return ci.Child(0)
}

// ChildBeginAt returns the first descendant at the given level.
// REQUIRES: ci.Level() < level <= CompactMaxLevel.
func (ci CompactCellID) ChildBeginAt(level int) CompactCellID {
	if level > compactMaxLevel || level <= ci.Level() {
		return CompactNone()
	}
	return CompactCellIDFromCellID(ci.CellID().ChildBeginAt(level))
}

// ChildEnd returns the exclusive end of the immediate children. Unlike the
// CellID variant the result is a real compact id (the next cell along the
// curve) or the invalid id when no such cell exists.
func (ci CompactCellID) ChildEnd() CompactCellID {
	if ci.Level() >= compactMaxLevel {
		return CompactNone()
	}
	return CompactCellIDFromCellID(ci.CellID().ChildEnd())
}

// ChildEndAt returns the exclusive end of the descendants at the given
// level, or the invalid id when no such cell exists.
func (ci CompactCellID) ChildEndAt(level int) CompactCellID {
	if level > compactMaxLevel || level <= ci.Level() {
		return CompactNone()
	}
	return CompactCellIDFromCellID(ci.CellID().ChildEndAt(level))
}

// Next returns the next cell at the same level along the curve, or the
// invalid id past the end of the last face.
func (ci CompactCellID) Next() CompactCellID {
	return CompactCellIDFromCellID(ci.CellID().Next())
}

// Prev returns the previous cell at the same level along the curve, or the
// invalid id before the beginning of the first face.
func (ci CompactCellID) Prev() CompactCellID {
	return CompactCellIDFromCellID(ci.CellID().Prev())
}

// NextWrap is like Next but wraps from the last face to the first.
func (ci CompactCellID) NextWrap() CompactCellID {
	return CompactCellIDFromCellID(ci.CellID().NextWrap())
}

// PrevWrap is like Prev but wraps from the first face to the last.
func (ci CompactCellID) PrevWrap() CompactCellID {
	return CompactCellIDFromCellID(ci.CellID().PrevWrap())
}

// Advance moves steps cells along the curve at the current level, clamped
// to the level's begin/end bounds.
func (ci CompactCellID) Advance(steps int64) CompactCellID {
	return CompactCellIDFromCellID(ci.CellID().Advance(steps))
}

// AdvanceWrap is like Advance but wraps between the first and last faces.
func (ci CompactCellID) AdvanceWrap(steps int64) CompactCellID {
	return CompactCellIDFromCellID(ci.CellID().AdvanceWrap(steps))
}

// DistanceFromBegin returns the number of curve steps from the first cell
// at this cell's level.
func (ci CompactCellID) DistanceFromBegin() int64 {
	return ci.CellID().DistanceFromBegin()
}

// RangeMin returns the first descendant at CompactMaxLevel. The exact range
// bound lives at MaxLevel of the curve-position encoding; the compact form
// reports its level-28 ancestor.
func (ci CompactCellID) RangeMin() CompactCellID {
	if !ci.IsValid() {
		return CompactNone()
	}
	return CompactCellIDFromCellID(truncateToCompact(ci.CellID().RangeMin()))
}

// RangeMax returns the last descendant at CompactMaxLevel, truncated like
// RangeMin.
func (ci CompactCellID) RangeMax() CompactCellID {
	if !ci.IsValid() {
		return CompactNone()
	}
	return CompactCellIDFromCellID(truncateToCompact(ci.CellID().RangeMax()))
}

// Contains reports whether other is contained within this cell.
// REQUIRES: both ids are valid.
func (ci CompactCellID) Contains(other CompactCellID) bool {
	return ci.CellID().Contains(other.CellID())
}

// Intersects reports whether this cell and other overlap.
// REQUIRES: both ids are valid.
func (ci CompactCellID) Intersects(other CompactCellID) bool {
	return ci.CellID().Intersects(other.CellID())
}

// CommonAncestorLevel returns the deepest level at which this cell and
// other share an ancestor, or -1 when they are on different faces.
func (ci CompactCellID) CommonAncestorLevel(other CompactCellID) int {
	return ci.CellID().CommonAncestorLevel(other.CellID())
}

// MaxTile returns the largest cell with the same RangeMin as this one whose
// RangeMax stays below limit, or limit itself; see CellID.MaxTile. Results
// deeper than CompactMaxLevel yield the invalid id.
func (ci CompactCellID) MaxTile(limit CompactCellID) CompactCellID {
	return CompactCellIDFromCellID(ci.CellID().MaxTile(limit.CellID()))
}

// Less reports whether ci precedes other along the curve. Compact raw
// values do not order by curve position, so the comparison goes through
// the curve-position encoding.
func (ci CompactCellID) Less(other CompactCellID) bool {
	return ci.CellID() < other.CellID()
}

// EdgeNeighbors returns the four cells sharing an edge with this cell, in
// down, right, up, left order.
// REQUIRES: ci is valid.
func (ci CompactCellID) EdgeNeighbors() [4]CompactCellID {
	old := ci.CellID().EdgeNeighbors()
	var out [4]CompactCellID
	for i, n := range old {
		out[i] = CompactCellIDFromCellID(truncateToCompact(n))
	}
	return out
}

// AppendVertexNeighbors appends the 3 or 4 cells at the given level sharing
// the vertex closest to this cell, and returns the extended slice.
// REQUIRES: ci is valid and 0 <= level < ci.Level().
func (ci CompactCellID) AppendVertexNeighbors(level int, out []CompactCellID) []CompactCellID {
	if level < 0 || level > compactMaxLevel {
		return out
	}
	for _, n := range ci.CellID().AppendVertexNeighbors(level, nil) {
		if n.IsValid() && n.Level() <= compactMaxLevel {
			out = append(out, CompactCellIDFromCellID(n))
		}
	}
	return out
}

// AppendAllNeighbors appends all cells at the given level touching this
// cell's boundary, and returns the extended slice. Duplicates may occur at
// shared face vertices.
// REQUIRES: ci is valid and ci.Level() <= level <= CompactMaxLevel.
func (ci CompactCellID) AppendAllNeighbors(level int, out []CompactCellID) []CompactCellID {
	if level < 0 || level > compactMaxLevel {
		return out
	}
	for _, n := range ci.CellID().AppendAllNeighbors(level, nil) {
		if n.IsValid() && n.Level() <= compactMaxLevel {
			out = append(out, CompactCellIDFromCellID(n))
		}
	}
	return out
}

// Pos returns the Hilbert curve position of the cell center in the
// curve-position encoding.
func (ci CompactCellID) Pos() uint64 { return ci.CellID().Pos() }

// Point returns the unit-length direction vector of the cell center.
func (ci CompactCellID) Point() Point { return ci.CellID().Point() }

// LatLng returns the latitude and longitude of the cell center.
func (ci CompactCellID) LatLng() LatLng { return ci.CellID().LatLng() }

// BoundUV returns the bounds of this cell in (u,v)-space.
func (ci CompactCellID) BoundUV() Rect { return ci.CellID().BoundUV() }

// Token returns the order-preserving token of this cell. Tokens are shared
// between the two encodings: the compact id encodes as the token of its
// curve-position form.
func (ci CompactCellID) Token() string { return ci.CellID().Token() }

// CompactCellIDFromToken decodes a token, truncating cells deeper than
// CompactMaxLevel to their level-28 ancestor. Malformed input yields the
// invalid id.
func CompactCellIDFromToken(s string) CompactCellID {
	id := CellIDFromToken(s)
	if !id.IsValid() {
		return CompactNone()
	}
	return CompactCellIDFromCellID(truncateToCompact(id))
}

// String renders the cell in the same "<face>/<path>" form as CellID,
// reading the path directly off the compact layout.
func (ci CompactCellID) String() string {
	if !ci.IsValid() {
		return invalidString
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(ci.Face()))
	level := ci.Level()
	if level == 0 {
		return b.String()
	}
	b.WriteByte('/')
	path := ci.Path()
	for i := level - 1; i >= 0; i-- {
		b.WriteByte('0' + byte(path>>uint(2*i)&3))
	}
	return b.String()
}

// CompactCellIDFromString parses the format produced by String, building
// the id directly on the compact layout. Malformed input yields the
// invalid id.
func CompactCellIDFromString(s string) CompactCellID {
	faceStr, pathStr, found := strings.Cut(s, "/")
	face, err := strconv.Atoi(faceStr)
	if err != nil || face < 0 || face > 5 {
		return CompactNone()
	}
	if !found || len(pathStr) == 0 {
		return CompactCellIDFromFaceLevel(face, 0)
	}
	level := len(pathStr)
	if level > compactMaxLevel {
		return CompactNone()
	}
	var path uint64
	for i := 0; i < level; i++ {
		c := pathStr[i]
		if c < '0' || c > '3' {
			return CompactNone()
		}
		path = path<<2 | uint64(c-'0')
	}
	return CompactCellID(uint64(face)<<compactFaceShift |
		path<<compactLevelBits |
		uint64(level))
}
