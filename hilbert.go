package cellid

// The mapping between Hilbert curve position and (i,j) coordinates is done
// with lookup tables processing four levels (8 position bits) per iteration.
// Each table entry is a 10-bit key "iiiijjjjoo" or "ppppppppoo" where the
// trailing two bits carry the curve orientation (swap and invert flags) of
// the subcell.

const (
	lookupBits = 4
	swapMask   = 0x01
	invertMask = 0x02
)

// posToIJ holds, for each of the four curve orientations, the (i,j) quadrant
// (packed as i<<1|j) visited at each position along the curve.
var posToIJ = [4][4]int{
	{0, 1, 3, 2}, // canonical order
	{0, 2, 3, 1}, // axes swapped
	{3, 2, 0, 1}, // bits inverted
	{3, 1, 0, 2}, // swapped & inverted
}

// ijToPos is the inverse of posToIJ.
var ijToPos = [4][4]int{
	{0, 1, 3, 2},
	{0, 3, 1, 2},
	{2, 3, 1, 0},
	{2, 1, 3, 0},
}

// posToOrientation gives the orientation modifier of the child cell at each
// position along the curve.
var posToOrientation = [4]int{swapMask, 0, 0, invertMask | swapMask}

var (
	lookupPos [1 << (2*lookupBits + 2)]int
	lookupIJ  [1 << (2*lookupBits + 2)]int
)

func init() {
	initLookupCell(0, 0, 0, 0, 0, 0)
	initLookupCell(0, 0, 0, swapMask, swapMask, 0)
	initLookupCell(0, 0, 0, invertMask, invertMask, 0)
	initLookupCell(0, 0, 0, swapMask|invertMask, swapMask|invertMask, 0)
}

// initLookupCell recursively fills lookupPos and lookupIJ for the 4-level
// block starting at the given subcell.
func initLookupCell(level, i, j, origOrientation, orientation, pos int) {
	if level == lookupBits {
		ij := (i << lookupBits) + j
		lookupPos[(ij<<2)+origOrientation] = (pos << 2) + orientation
		lookupIJ[(pos<<2)+origOrientation] = (ij << 2) + orientation
		return
	}
	level++
	i <<= 1
	j <<= 1
	pos <<= 2
	r := posToIJ[orientation]
	for index := 0; index < 4; index++ {
		initLookupCell(level, i+(r[index]>>1), j+(r[index]&1), origOrientation,
			orientation^posToOrientation[index], pos+index)
	}
}

// cellIDFromFaceIJ returns the leaf cell at the given (i,j) coordinates on
// the given face.
func cellIDFromFaceIJ(f, i, j int) CellID {
	// The value gets shifted one bit to the left at the end to place the
	// leaf marker bit.
	n := uint64(f) << (posBits - 1)
	// Alternating faces have opposite curve orientations, which is required
	// for all faces to share a right-handed coordinate system.
	bits := f & swapMask
	// Each iteration maps 4 bits of i and j into 8 position bits.
	for k := 7; k >= 0; k-- {
		mask := (1 << lookupBits) - 1
		bits += ((i >> uint(k*lookupBits)) & mask) << (lookupBits + 2)
		bits += ((j >> uint(k*lookupBits)) & mask) << 2
		bits = lookupPos[bits]
		n |= uint64(bits>>2) << uint(k*2*lookupBits)
		bits &= swapMask | invertMask
	}
	return CellID(n*2 + 1)
}

// FaceIJOrientation returns the (face, i, j) coordinates of the leaf cell
// nearest the center of this cell, and the Hilbert curve orientation of the
// cell itself.
func (ci CellID) FaceIJOrientation() (f, i, j, orientation int) {
	return ci.faceIJOrientation()
}

func (ci CellID) faceIJOrientation() (f, i, j, orientation int) {
	f = ci.Face()
	orientation = f & swapMask
	nbits := maxLevel - 7*lookupBits // first iteration decodes fewer bits

	for k := 7; k >= 0; k-- {
		orientation += (int(uint64(ci)>>uint(k*2*lookupBits+1)) & ((1 << uint(2*nbits)) - 1)) << 2
		orientation = lookupIJ[orientation]
		i += (orientation >> (lookupBits + 2)) << uint(k*lookupBits)
		j += ((orientation >> 2) & ((1 << lookupBits) - 1)) << uint(k*lookupBits)
		orientation &= swapMask | invertMask
		nbits = lookupBits
	}

	// The position of a non-leaf cell is its center, which lies one curve
	// step into the cell, so the orientation needs correcting whenever the
	// center position has an odd number of trailing position bit pairs.
	if ci.lsb()&0x1111111111111110 != 0 {
		orientation ^= swapMask
	}
	return f, i, j, orientation
}

// CenterSiTi returns the (face, si, ti) coordinates of the center of this
// cell. Although (si,ti) coordinates cover the range [0, 2^31], cell center
// coordinates are always in [1, 2^31-1].
func (ci CellID) CenterSiTi() (face int, si, ti uint64) {
	face, i, j, _ := ci.faceIJOrientation()
	// For non-leaf cells faceIJOrientation returns one of the two leaf
	// cells closest to the center; the low bit of i distinguishes which.
	var delta int
	if ci.IsLeaf() {
		delta = 1
	} else if (i^(int(uint64(ci))>>2))&1 != 0 {
		delta = 2
	}
	return face, uint64(2*i + delta), uint64(2*j + delta)
}
