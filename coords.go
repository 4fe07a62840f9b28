package cellid

import (
	"math"
)

// The projection between the unit sphere and cell coordinates goes through
// several coordinate systems:
//
//	(x,y,z)  point on the unit sphere (need not be normalized)
//	(face,u,v)  cube face plus coordinates in [-1,1] on that face
//	(face,s,t)  cube face plus coordinates in [0,1], related to (u,v) by a
//	            quadratic transform that makes cell areas more uniform
//	(face,i,j)  discrete leaf cell coordinates in [0, 2^MaxLevel)
//	(face,si,ti)  like (s,t) but discretized to half-leaf resolution, used
//	              to represent cell centers exactly
const maxSiTi = maxSize << 1

// A Point is a point in 3D space, usually on or near the unit sphere.
type Point struct {
	X, Y, Z float64
}

// Norm returns the length of the vector.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Normalize returns a unit-length vector in the same direction as p, or the
// zero point if p is the zero point.
func (p Point) Normalize() Point {
	n := p.Norm()
	if n == 0 {
		return p
	}
	return Point{p.X / n, p.Y / n, p.Z / n}
}

// A LatLng is a point on the sphere given as latitude and longitude in
// radians.
type LatLng struct {
	Lat, Lng float64
}

// LatLngFromDegrees constructs a LatLng from degree values.
func LatLngFromDegrees(lat, lng float64) LatLng {
	return LatLng{lat * math.Pi / 180, lng * math.Pi / 180}
}

// LatDegrees returns the latitude in degrees.
func (ll LatLng) LatDegrees() float64 { return ll.Lat * 180 / math.Pi }

// LngDegrees returns the longitude in degrees.
func (ll LatLng) LngDegrees() float64 { return ll.Lng * 180 / math.Pi }

// Point returns the direction vector corresponding to ll.
func (ll LatLng) Point() Point {
	cosLat := math.Cos(ll.Lat)
	return Point{
		math.Cos(ll.Lng) * cosLat,
		math.Sin(ll.Lng) * cosLat,
		math.Sin(ll.Lat),
	}
}

// latLngFromPoint returns the LatLng for a direction vector, which does not
// need to be unit length.
func latLngFromPoint(p Point) LatLng {
	return LatLng{
		math.Atan2(p.Z, math.Sqrt(p.X*p.X+p.Y*p.Y)),
		math.Atan2(p.Y, p.X),
	}
}

// A Rect is an axis-aligned rectangle in (u,v)- or (s,t)-space.
type Rect struct {
	X0, Y0 float64 // lower bounds
	X1, Y1 float64 // upper bounds
}

// rectFromCenterSize returns a square of the given edge length centered at
// (x, y).
func rectFromCenterSize(x, y, size float64) Rect {
	half := size / 2
	return Rect{x - half, y - half, x + half, y + half}
}

// stToUV converts an s- or t-value in [0,1] to the corresponding u- or
// v-value in [-1,1] using the quadratic projection, which gives cells at
// different locations more uniform areas than the linear one.
func stToUV(s float64) float64 {
	if s >= 0.5 {
		return (1 / 3.) * (4*s*s - 1)
	}
	return (1 / 3.) * (1 - 4*(1-s)*(1-s))
}

// uvToST is the inverse of stToUV.
func uvToST(u float64) float64 {
	if u >= 0 {
		return 0.5 * math.Sqrt(1+3*u)
	}
	return 1 - 0.5*math.Sqrt(1-3*u)
}

// stToIJ converts an s- or t-value to the i- or j-coordinate of the leaf
// cell containing it.
func stToIJ(s float64) int {
	return clampInt(int(math.Floor(maxSize*s)), 0, maxSize-1)
}

// ijToSTMin converts the i- or j-coordinate of a cell to the minimum
// corresponding s- or t-value of that cell.
func ijToSTMin(i int) float64 {
	return float64(i) / maxSize
}

// siTiToST converts an si- or ti-value to the corresponding s- or t-value.
func siTiToST(si uint64) float64 {
	return float64(si) / maxSiTi
}

// face returns the cube face containing the direction p, i.e. the face with
// the largest dot product with p.
func face(p Point) int {
	f := 0
	abs := math.Abs(p.X)
	if a := math.Abs(p.Y); a > abs {
		f, abs = 1, a
	}
	if a := math.Abs(p.Z); a > abs {
		f = 2
	}
	switch f {
	case 0:
		if p.X < 0 {
			f += 3
		}
	case 1:
		if p.Y < 0 {
			f += 3
		}
	case 2:
		if p.Z < 0 {
			f += 3
		}
	}
	return f
}

// validFaceXYZToUV returns the (u,v) coordinates of p on the given face.
// REQUIRES: p has a positive dot product with the face axis.
func validFaceXYZToUV(f int, p Point) (u, v float64) {
	switch f {
	case 0:
		return p.Y / p.X, p.Z / p.X
	case 1:
		return -p.X / p.Y, p.Z / p.Y
	case 2:
		return -p.X / p.Z, -p.Y / p.Z
	case 3:
		return p.Z / p.X, p.Y / p.X
	case 4:
		return p.Z / p.Y, -p.X / p.Y
	}
	return -p.Y / p.Z, -p.X / p.Z
}

// xyzToFaceUV projects p onto the cube, returning the face and the (u,v)
// coordinates on that face.
func xyzToFaceUV(p Point) (f int, u, v float64) {
	f = face(p)
	u, v = validFaceXYZToUV(f, p)
	return f, u, v
}

// faceUVToXYZ returns the direction vector of the point at (u,v) on the
// given face.
func faceUVToXYZ(f int, u, v float64) Point {
	switch f {
	case 0:
		return Point{1, u, v}
	case 1:
		return Point{-u, 1, v}
	case 2:
		return Point{-u, -v, 1}
	case 3:
		return Point{-1, -v, -u}
	case 4:
		return Point{v, -1, -u}
	}
	return Point{v, u, -1}
}

// rawPoint returns the direction vector of the cell center, not necessarily
// unit length.
func (ci CellID) rawPoint() Point {
	f, si, ti := ci.CenterSiTi()
	return faceUVToXYZ(f, stToUV(siTiToST(si)), stToUV(siTiToST(ti)))
}

// Point returns the unit-length direction vector of the cell center.
func (ci CellID) Point() Point {
	return ci.rawPoint().Normalize()
}

// LatLng returns the latitude and longitude of the cell center.
func (ci CellID) LatLng() LatLng {
	return latLngFromPoint(ci.rawPoint())
}

// CenterST returns the center of the cell in (s,t)-space. Note that the
// center is the point at which the cell is subdivided into its children; in
// general it is not the midpoint of the (u,v) rectangle covered by the cell.
func (ci CellID) CenterST() (s, t float64) {
	_, si, ti := ci.CenterSiTi()
	return siTiToST(si), siTiToST(ti)
}

// BoundST returns the bounds of this cell in (s,t)-space.
func (ci CellID) BoundST() Rect {
	s, t := ci.CenterST()
	return rectFromCenterSize(s, t, SizeST(ci.Level()))
}

// CenterUV returns the center of the cell in (u,v)-space.
func (ci CellID) CenterUV() (u, v float64) {
	s, t := ci.CenterST()
	return stToUV(s), stToUV(t)
}

// BoundUV returns the bounds of this cell in (u,v)-space.
func (ci CellID) BoundUV() Rect {
	_, i, j, _ := ci.faceIJOrientation()
	return IJLevelToBoundUV(i, j, ci.Level())
}

// IJLevelToBoundUV returns the bounds in (u,v)-space of the cell at the
// given level containing the leaf cell at the given (i,j) coordinates.
func IJLevelToBoundUV(i, j, level int) Rect {
	cellSize := SizeIJ(level)
	iLo := i & -cellSize
	jLo := j & -cellSize
	return Rect{
		X0: stToUV(ijToSTMin(iLo)),
		Y0: stToUV(ijToSTMin(jLo)),
		X1: stToUV(ijToSTMin(iLo + cellSize)),
		Y1: stToUV(ijToSTMin(jLo + cellSize)),
	}
}

// ExpandedByDistanceUV expands a rectangle in (u,v)-space so that it
// contains all points within the given angular distance (radians, measured
// on the sphere) of the boundary, and returns the smallest such rectangle.
// A negative distance shrinks the rectangle instead. Because the rectangle
// lies on one cube face plane it can cover at most one hemisphere, which
// limits the expansion to 45 degrees.
func ExpandedByDistanceUV(uv Rect, distance float64) Rect {
	// Expand each of the four sides just enough to include all points
	// within the given distance of that side; the expansion differs per
	// side in (u,v)-space.
	maxU := math.Max(math.Abs(uv.X0), math.Abs(uv.X1))
	maxV := math.Max(math.Abs(uv.Y0), math.Abs(uv.Y1))
	sinDist := math.Sin(distance)
	return Rect{
		X0: expandEndpoint(uv.X0, maxV, -sinDist),
		Y0: expandEndpoint(uv.Y0, maxU, -sinDist),
		X1: expandEndpoint(uv.X1, maxV, sinDist),
		Y1: expandEndpoint(uv.Y1, maxU, sinDist),
	}
}

// expandEndpoint returns a new u-coordinate such that the distance from the
// line u=u to the line u=result on the sphere is sinDist, on the side of the
// rectangle bounded by v in [-maxV, maxV]. Derived from a spherical right
// triangle.
func expandEndpoint(u, maxV, sinDist float64) float64 {
	sinUShift := sinDist * math.Sqrt((1+u*u+maxV*maxV)/(1+u*u))
	cosUShift := math.Sqrt(1 - sinUShift*sinUShift)
	// Expansion of tan(atan(u) + asin(sinUShift)).
	return (cosUShift*u + sinUShift*math.Sqrt(1+u*u)) /
		(cosUShift - sinUShift*u)
}
