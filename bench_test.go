package cellid

import (
	"io"
	"math/rand"
	"testing"
)

func benchmarkIDs(n int) []CellID {
	rng := rand.New(rand.NewSource(0))
	ids := make([]CellID, n)
	for i := range ids {
		ids[i] = randomCellIDAnyLevel(rng)
	}
	return ids
}

func BenchmarkCellIDFromPoint(b *testing.B) {
	rng := rand.New(rand.NewSource(0))
	points := make([]Point, 1024)
	for i := range points {
		points[i] = Point{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		CellIDFromPoint(points[n&1023])
	}
}

func BenchmarkPoint(b *testing.B) {
	ids := benchmarkIDs(1024)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		ids[n&1023].Point()
	}
}

func BenchmarkToken(b *testing.B) {
	ids := benchmarkIDs(1024)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		ids[n&1023].Token()
	}
}

func BenchmarkFromToken(b *testing.B) {
	ids := benchmarkIDs(1024)
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = id.Token()
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		CellIDFromToken(tokens[n&1023])
	}
}

func BenchmarkCompactFromCellID(b *testing.B) {
	rng := rand.New(rand.NewSource(0))
	ids := make([]CellID, 1024)
	for i := range ids {
		ids[i] = randomCellID(rng, rng.Intn(compactMaxLevel+1))
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		CompactCellIDFromCellID(ids[n&1023])
	}
}

func BenchmarkCompactToCellID(b *testing.B) {
	rng := rand.New(rand.NewSource(0))
	ids := make([]CompactCellID, 1024)
	for i := range ids {
		ids[i] = CompactCellIDFromCellID(randomCellID(rng, rng.Intn(compactMaxLevel+1)))
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		ids[n&1023].CellID()
	}
}

func BenchmarkAppendAllNeighbors(b *testing.B) {
	ids := benchmarkIDs(1024)
	var out []CellID
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		id := ids[n&1023]
		out = id.AppendAllNeighbors(id.Level(), out[:0])
	}
}

func BenchmarkWriteCellStream(b *testing.B) {
	ids := benchmarkIDs(100000)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		WriteCellStream(io.Discard, ids)
	}
	b.SetBytes(int64(8 * len(ids)))
}
