package cellid_test

import (
	"fmt"

	"github.com/jayloop/cellid"
)

func ExampleCellID_Token() {
	fmt.Println(cellid.CellIDFromFace(4).Token())
	fmt.Println(cellid.CellIDFromFace(4).Child(0).Token())
	fmt.Println(cellid.CellIDFromToken("84") == cellid.CellIDFromFace(4).Child(0))
	// Output:
	// 9
	// 84
	// true
}

func ExampleCellID_String() {
	id := cellid.CellIDFromFace(3).Child(2).Child(1)
	fmt.Println(id)
	// Output: 3/21
}

func ExampleCellID_Contains() {
	region := cellid.CellIDFromString("2/03")
	point := cellid.CellIDFromLatLng(cellid.LatLngFromDegrees(47.3769, 8.5417))
	_ = region.Contains(point)
}

func ExampleCompactCellIDFromCellID() {
	id := cellid.CellIDFromString("5/1302")
	c := cellid.CompactCellIDFromCellID(id)
	fmt.Println(c.Level(), c.String())
	// Output: 4 5/1302
}
