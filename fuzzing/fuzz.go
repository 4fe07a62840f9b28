package fuzzing

import (
	"bytes"
	"fmt"

	"github.com/jayloop/cellid"
)

// Fuzz treats the input data as a list of \n separated cell tokens or debug
// strings. For each cell it exercises navigation, conversion and codec round
// trips, panicking on any violated invariant.
func Fuzz(data []byte) int {
	var ids []cellid.CellID
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		if i == 0 || i > 20 {
			// zero length or oversized input, not interesting for the corpus
			return -1
		}
		s := string(data[:i])
		data = data[i+1:]
		id := cellid.CellIDFromString(s)
		if !id.IsValid() {
			id = cellid.CellIDFromToken(s)
		}
		if !id.IsValid() {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return -1
	}

	for _, id := range ids {
		// Codec round trips.
		if got := cellid.CellIDFromToken(id.Token()); got != id {
			panic(fmt.Sprintf("token round trip failed for %s: got %s", id, got))
		}
		if got := cellid.CellIDFromString(id.String()); got != id {
			panic(fmt.Sprintf("string round trip failed for %s: got %s", id, got))
		}

		// Hierarchy invariants.
		if !id.IsFace() {
			p := id.ImmediateParent()
			if p.Child(id.ChildPosition()) != id {
				panic(fmt.Sprintf("parent/child inverse failed for %s", id))
			}
			if !p.Contains(id) {
				panic(fmt.Sprintf("parent does not contain %s", id))
			}
		}
		if !id.IsLeaf() {
			for pos := 0; pos < 4; pos++ {
				c := id.Child(pos)
				if c.ImmediateParent() != id {
					panic(fmt.Sprintf("child %d of %s has wrong parent", pos, id))
				}
			}
		}
		if id.RangeMin() > id || id.RangeMax() < id {
			panic(fmt.Sprintf("range does not cover %s", id))
		}

		// Ordering.
		if id.NextWrap().PrevWrap() != id {
			panic(fmt.Sprintf("next/prev wrap inverse failed for %s", id))
		}
		if id.AdvanceWrap(7).AdvanceWrap(-7) != id {
			panic(fmt.Sprintf("advance wrap inverse failed for %s", id))
		}

		// Compact conversion. Exact below the compact level cap, truncated above.
		trunc := id
		if trunc.Level() > cellid.CompactMaxLevel {
			trunc = trunc.Parent(cellid.CompactMaxLevel)
		}
		c := cellid.CompactCellIDFromCellID(trunc)
		if !c.IsValid() {
			panic(fmt.Sprintf("compact conversion failed for %s", trunc))
		}
		if c.CellID() != trunc {
			panic(fmt.Sprintf("compact round trip failed for %s", trunc))
		}

		// Geometry: the center point must map back to the same leaf path.
		if got := cellid.CellIDFromPoint(id.Point()); !id.Contains(got) && !got.Contains(id) {
			panic(fmt.Sprintf("center point of %s maps to unrelated cell %s", id, got))
		}
	}

	// Pairwise ancestor checks.
	for i := 1; i < len(ids); i++ {
		a, b := ids[i-1], ids[i]
		level := a.CommonAncestorLevel(b)
		if level >= 0 && a.Parent(level) != b.Parent(level) {
			panic(fmt.Sprintf("common ancestor mismatch for %s and %s", a, b))
		}
	}

	return 1
}
