package cellid

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jayloop/table"
)

// Admin provides cell inspection functions for use by a CLI or terminal.
// It takes a writer and a slice with the command and arguments. Cells may
// be given as debug strings ("3/0122") or as tokens.
func Admin(out io.Writer, argv []string) {
	if len(argv) == 0 {
		fmt.Fprint(out, "available commands:\ninfo <cell>\nchildren <cell>\nneighbors <cell> [level]\nparent <cell> [level]\ncompact <cell>\nbegin <level>\n")
		return
	}
	switch argv[0] {
	case "info":
		id, ok := parseCellArg(out, argv)
		if !ok {
			return
		}
		t := table.New("NAME", "VALUE")
		t.Row("id", fmt.Sprintf("0x%016x", uint64(id)))
		t.Row("face", id.Face())
		t.Row("level", id.Level())
		t.Row("pos", id.Pos())
		t.Row("token", id.Token())
		t.Row("string", id.String())
		t.Row("leaf", id.IsLeaf())
		t.Row("range_min", id.RangeMin().Token())
		t.Row("range_max", id.RangeMax().Token())
		ll := id.LatLng()
		t.Row("lat", fmt.Sprintf("%.6f", ll.LatDegrees()))
		t.Row("lng", fmt.Sprintf("%.6f", ll.LngDegrees()))
		t.Print(out)

	case "children":
		id, ok := parseCellArg(out, argv)
		if !ok {
			return
		}
		if id.IsLeaf() {
			fmt.Fprint(out, "cell is a leaf\n")
			return
		}
		t := table.New("POS", "STRING", "TOKEN")
		for pos := 0; pos < 4; pos++ {
			c := id.Child(pos)
			t.Row(pos, c.String(), c.Token())
		}
		t.Print(out)

	case "neighbors":
		id, ok := parseCellArg(out, argv)
		if !ok {
			return
		}
		if len(argv) > 2 {
			level, err := strconv.Atoi(argv[2])
			if err != nil || level < id.Level() || level > MaxLevel {
				fmt.Fprint(out, "usage: neighbors <cell> [level >= cell level]\n")
				return
			}
			t := table.New("STRING", "TOKEN")
			for _, n := range id.AppendAllNeighbors(level, nil) {
				t.Row(n.String(), n.Token())
			}
			t.Print(out)
			return
		}
		t := table.New("EDGE", "STRING", "TOKEN")
		names := [4]string{"down", "right", "up", "left"}
		for i, n := range id.EdgeNeighbors() {
			t.Row(names[i], n.String(), n.Token())
		}
		t.Print(out)

	case "parent":
		id, ok := parseCellArg(out, argv)
		if !ok {
			return
		}
		level := id.Level() - 1
		if len(argv) > 2 {
			l, err := strconv.Atoi(argv[2])
			if err != nil {
				fmt.Fprint(out, "usage: parent <cell> [level]\n")
				return
			}
			level = l
		}
		if level < 0 || level > id.Level() {
			fmt.Fprint(out, "cell has no parent at that level\n")
			return
		}
		p := id.Parent(level)
		fmt.Fprintf(out, "%s (%s)\n", p, p.Token())

	case "compact":
		id, ok := parseCellArg(out, argv)
		if !ok {
			return
		}
		c := CompactCellIDFromCellID(truncateToCompact(id))
		t := table.New("NAME", "VALUE")
		t.Row("id", fmt.Sprintf("0x%016x", uint64(c)))
		t.Row("face", c.Face())
		t.Row("level", c.Level())
		t.Row("path", fmt.Sprintf("%#b", c.Path()))
		t.Row("string", c.String())
		t.Row("round_trip", c.CellID().String())
		t.Print(out)

	case "begin":
		if len(argv) != 2 {
			fmt.Fprint(out, "usage: begin <level>\n")
			return
		}
		level, err := strconv.Atoi(argv[1])
		if err != nil || level < 0 || level > MaxLevel {
			fmt.Fprint(out, "usage: begin <level>\n")
			return
		}
		b := Begin(level)
		fmt.Fprintf(out, "%s (%s)\n", b, b.Token())

	default:
		fmt.Fprintf(out, "Unknown command '%s'\n", argv[0])
	}
}

// parseCellArg reads argv[1] as a debug string first, then as a token.
func parseCellArg(out io.Writer, argv []string) (CellID, bool) {
	if len(argv) < 2 {
		fmt.Fprintf(out, "usage: %s <cell>\n", argv[0])
		return None(), false
	}
	if id := CellIDFromString(argv[1]); id.IsValid() {
		return id, true
	}
	if id := CellIDFromToken(argv[1]); id.IsValid() {
		return id, true
	}
	fmt.Fprintf(out, "Invalid cell '%s'\n", argv[1])
	return None(), false
}
