package cellid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSTUVInverse(t *testing.T) {
	assert.Equal(t, 0.0, stToUV(0.5))
	assert.Equal(t, 0.5, uvToST(0))
	assert.Equal(t, 1.0, stToUV(1))
	assert.Equal(t, -1.0, stToUV(0))

	rng := rand.New(rand.NewSource(15))
	for n := 0; n < 1000; n++ {
		s := rng.Float64()
		assert.InDelta(t, s, uvToST(stToUV(s)), 1e-15)
		u := 2*rng.Float64() - 1
		assert.InDelta(t, u, stToUV(uvToST(u)), 1e-15)
	}
}

func TestFaceUVRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(16))
	for f := 0; f < 6; f++ {
		for n := 0; n < 100; n++ {
			u := 2*rng.Float64() - 1
			v := 2*rng.Float64() - 1
			p := faceUVToXYZ(f, u, v)
			gotF, gotU, gotV := xyzToFaceUV(p)
			require.Equal(t, f, gotF)
			assert.InDelta(t, u, gotU, 1e-14)
			assert.InDelta(t, v, gotV, 1e-14)
		}
	}
}

func TestFaceAxes(t *testing.T) {
	// The center of each face maps back to that face.
	centers := []Point{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
	}
	for f, c := range centers {
		assert.Equal(t, f, face(c))
		u, v := validFaceXYZToUV(f, c)
		assert.Equal(t, 0.0, u)
		assert.Equal(t, 0.0, v)
	}
}

func TestCellIDFromPointRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for n := 0; n < 1000; n++ {
		p := Point{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		if p.Norm() == 0 {
			continue
		}
		id := CellIDFromPoint(p)
		require.True(t, id.IsValid())
		require.True(t, id.IsLeaf())
		// The center of the leaf cell containing p maps back to the same leaf.
		assert.Equal(t, id, CellIDFromPoint(id.Point()))
	}
}

func TestCellIDLatLngKnownValue(t *testing.T) {
	// Nuremberg.
	id := CellID(0x47a1cbd595522b39)
	require.True(t, id.IsValid())
	require.True(t, id.IsLeaf())
	ll := id.LatLng()
	assert.InDelta(t, 49.703498679, ll.LatDegrees(), 1e-8)
	assert.InDelta(t, 11.770681595, ll.LngDegrees(), 1e-8)
	assert.Equal(t, id, CellIDFromLatLng(LatLngFromDegrees(49.703498679, 11.770681595)))
}

func TestCellIDLatLngRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	for n := 0; n < 1000; n++ {
		lat := 180*rng.Float64() - 90
		lng := 360*rng.Float64() - 180
		ll := LatLngFromDegrees(lat, lng)
		id := CellIDFromLatLng(ll)
		require.True(t, id.IsLeaf())
		// The cell center is within a leaf diagonal of the input point, so
		// the direction vectors are nearly identical.
		p, q := ll.Point(), id.Point()
		dot := p.X*q.X + p.Y*q.Y + p.Z*q.Z
		assert.InDelta(t, 1.0, dot, 1e-15)
	}
}

func TestCellIDPointIsCenter(t *testing.T) {
	rng := rand.New(rand.NewSource(18))
	for n := 0; n < 100; n++ {
		id := randomCellIDAnyLevel(rng)
		p := id.Point()
		assert.InDelta(t, 1.0, p.Norm(), 1e-14)
		// The center lies within the cell's (s,t) bounds.
		f, u, v := xyzToFaceUV(p)
		require.Equal(t, id.Face(), f)
		bound := id.BoundST()
		s, t2 := uvToST(u), uvToST(v)
		assert.True(t, bound.X0 <= s && s <= bound.X1, "s %v outside %+v", s, bound)
		assert.True(t, bound.Y0 <= t2 && t2 <= bound.Y1, "t %v outside %+v", t2, bound)
	}
}

func TestCenterSiTi(t *testing.T) {
	id := CellIDFromFace(3)
	_, si, ti := id.CenterSiTi()
	assert.EqualValues(t, maxSiTi/2, si)
	assert.EqualValues(t, maxSiTi/2, ti)

	// Center coordinates are never on the boundary of the si/ti range.
	rng := rand.New(rand.NewSource(19))
	for n := 0; n < 100; n++ {
		id := randomCellIDAnyLevel(rng)
		_, si, ti := id.CenterSiTi()
		assert.True(t, si >= 1 && si <= maxSiTi-1)
		assert.True(t, ti >= 1 && ti <= maxSiTi-1)
		// A leaf center is an odd multiple of the half-leaf unit.
		if id.IsLeaf() {
			assert.EqualValues(t, 1, si&1)
			assert.EqualValues(t, 1, ti&1)
		} else {
			assert.EqualValues(t, 0, si&1)
			assert.EqualValues(t, 0, ti&1)
		}
	}
}

func TestBoundUVContainsCenter(t *testing.T) {
	rng := rand.New(rand.NewSource(20))
	for n := 0; n < 100; n++ {
		id := randomCellIDAnyLevel(rng)
		u, v := id.CenterUV()
		bound := id.BoundUV()
		assert.True(t, bound.X0 <= u && u <= bound.X1)
		assert.True(t, bound.Y0 <= v && v <= bound.Y1)
	}
}

func TestIJLevelToBoundUV(t *testing.T) {
	// The top level covers the full face.
	assert.Equal(t, Rect{-1, -1, 1, 1}, IJLevelToBoundUV(0, 0, 0))
	assert.Equal(t, Rect{-1, -1, 1, 1}, IJLevelToBoundUV(maxSize-1, maxSize-1, 0))
	// Level 1 splits the face at the center.
	assert.Equal(t, Rect{-1, -1, 0, 0}, IJLevelToBoundUV(0, 0, 1))
	assert.Equal(t, Rect{0, 0, 1, 1}, IJLevelToBoundUV(maxSize-1, maxSize-1, 1))
}

func TestExpandedByDistanceUV(t *testing.T) {
	uv := Rect{-0.3, -0.1, 0.2, 0.4}

	expanded := ExpandedByDistanceUV(uv, 0.1)
	assert.True(t, expanded.X0 < uv.X0)
	assert.True(t, expanded.Y0 < uv.Y0)
	assert.True(t, expanded.X1 > uv.X1)
	assert.True(t, expanded.Y1 > uv.Y1)

	shrunk := ExpandedByDistanceUV(uv, -0.1)
	assert.True(t, shrunk.X0 > uv.X0)
	assert.True(t, shrunk.X1 < uv.X1)

	// Zero distance is the identity.
	assert.Equal(t, uv, ExpandedByDistanceUV(uv, 0))
}

func TestLatLngPointRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for n := 0; n < 1000; n++ {
		lat := 180*rng.Float64() - 90
		lng := 360*rng.Float64() - 180
		ll := LatLngFromDegrees(lat, lng)
		got := latLngFromPoint(ll.Point())
		assert.InDelta(t, lat, got.LatDegrees(), 1e-12)
		if math.Abs(lat) < 90-1e-9 {
			assert.InDelta(t, lng, got.LngDegrees(), 1e-9)
		}
	}
}
