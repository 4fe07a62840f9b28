package cellid

import "math"

// cellIDFromFaceIJWrap is like cellIDFromFaceIJ, but (i,j) is allowed to lie
// just outside the face: the coordinates are wrapped onto the adjacent face
// and the nearest leaf cell on that face is returned.
func cellIDFromFaceIJWrap(f, i, j int) CellID {
	// Convert i and j to the coordinates of a leaf cell just beyond the
	// boundary of this face. This prevents 32-bit overflow in the case of
	// finding the neighbors of a face cell.
	i = clampInt(i, -1, maxSize)
	j = clampInt(j, -1, maxSize)

	// Convert (i,j) to (u,v) with the linear projection, map through 3D
	// space onto the correct adjacent face, and convert back. The linear
	// projection is simpler than the quadratic one and gives the same
	// final errors here.
	const scale = 1.0 / maxSize
	limit := math.Nextafter(1, 2)
	u := math.Max(-limit, math.Min(limit, scale*float64((i<<1)+1-maxSize)))
	v := math.Max(-limit, math.Min(limit, scale*float64((j<<1)+1-maxSize)))

	f, u, v = xyzToFaceUV(faceUVToXYZ(f, u, v))
	return cellIDFromFaceIJ(f, stToIJ(0.5*(u+1)), stToIJ(0.5*(v+1)))
}

// cellIDFromFaceIJSame dispatches on whether (i,j) is known to stay on the
// same face.
func cellIDFromFaceIJSame(f, i, j int, sameFace bool) CellID {
	if sameFace {
		return cellIDFromFaceIJ(f, i, j)
	}
	return cellIDFromFaceIJWrap(f, i, j)
}

// EdgeNeighbors returns the four cells at the same level that share an edge
// with this cell, in the order down, right, up, left relative to the face
// coordinate system. All four neighbors are distinct.
// REQUIRES: ci is valid.
func (ci CellID) EdgeNeighbors() [4]CellID {
	level := ci.Level()
	size := SizeIJ(level)
	f, i, j, _ := ci.faceIJOrientation()
	return [4]CellID{
		cellIDFromFaceIJWrap(f, i, j-size).Parent(level),
		cellIDFromFaceIJWrap(f, i+size, j).Parent(level),
		cellIDFromFaceIJWrap(f, i, j+size).Parent(level),
		cellIDFromFaceIJWrap(f, i-size, j).Parent(level),
	}
}

// AppendVertexNeighbors appends the cells at the given level that share the
// vertex closest to this cell's center, and returns the extended slice.
// Normally there are four neighbors, but only three when the closest vertex
// is one of the 8 cube corners. The cell itself (or rather its ancestor at
// the given level) is included.
// REQUIRES: ci is valid and level < ci.Level(), so that the closest vertex
// is well defined.
func (ci CellID) AppendVertexNeighbors(level int, out []CellID) []CellID {
	// The closest vertex is determined by the halfSize bit of (i,j): it
	// tells which quadrant of the level-"level" cell this cell lies in.
	halfSize := SizeIJ(level + 1)
	size := halfSize << 1
	f, i, j, _ := ci.faceIJOrientation()

	var isame, jsame bool
	var ioffset, joffset int
	if i&halfSize != 0 {
		ioffset = size
		isame = i+size < maxSize
	} else {
		ioffset = -size
		isame = i-size >= 0
	}
	if j&halfSize != 0 {
		joffset = size
		jsame = j+size < maxSize
	} else {
		joffset = -size
		jsame = j-size >= 0
	}

	out = append(out,
		ci.Parent(level),
		cellIDFromFaceIJSame(f, i+ioffset, j, isame).Parent(level),
		cellIDFromFaceIJSame(f, i, j+joffset, jsame).Parent(level),
	)
	// The diagonal neighbor does not exist when the vertex is a cube
	// corner, i.e. both offsets leave the face.
	if isame || jsame {
		out = append(out, cellIDFromFaceIJSame(f, i+ioffset, j+joffset, isame && jsame).Parent(level))
	}
	return out
}

// AppendAllNeighbors appends all cells at the given level whose boundary
// touches the boundary of this cell, and returns the extended slice. Cells
// touching at a single point count as neighbors. For cells adjacent to a
// face vertex the same neighbor may be appended more than once.
// REQUIRES: ci is valid and level >= ci.Level().
func (ci CellID) AppendAllNeighbors(level int, out []CellID) []CellID {
	f, i, j, _ := ci.faceIJOrientation()

	// Find the coordinates of the lower left corner of the cell, then the
	// pass below walks top-bottom, left-right and diagonal neighbors at
	// once.
	size := SizeIJ(ci.Level())
	i &= -size
	j &= -size

	nbrSize := SizeIJ(level)

	for k := -nbrSize; ; k += nbrSize {
		var sameFace bool
		switch {
		case k < 0:
			sameFace = j+k >= 0
		case k >= size:
			sameFace = j+k < maxSize
		default:
			sameFace = true
			// Top and bottom neighbors.
			out = append(out,
				cellIDFromFaceIJSame(f, i+k, j-nbrSize, j-size >= 0).Parent(level),
				cellIDFromFaceIJSame(f, i+k, j+size, j+size < maxSize).Parent(level),
			)
		}
		// Left, right, and diagonal neighbors.
		out = append(out,
			cellIDFromFaceIJSame(f, i-nbrSize, j+k, sameFace && i-size >= 0).Parent(level),
			cellIDFromFaceIJSame(f, i+size, j+k, sameFace && i+size < maxSize).Parent(level),
		)
		if k >= size {
			return out
		}
	}
}
