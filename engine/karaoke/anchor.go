package karaoke

// Anchor is a numpad-style alignment code, 1 = bottom-left to 9 = top-right.
type Anchor int

// Rows of the anchor grid.
const (
	RowBottom = 0
	RowMiddle = 1
	RowTop    = 2
)

// Columns of the anchor grid.
const (
	ColumnLeft   = 0
	ColumnCenter = 1
	ColumnRight  = 2
)

// Valid reports whether a is in 1…9.
func (a Anchor) Valid() bool {
	return a >= 1 && a <= 9
}

// Row returns the grid row of a.
func (a Anchor) Row() int {
	return (int(a) - 1) / 3
}

// Column returns the grid column of a.
func (a Anchor) Column() int {
	return (int(a) - 1) % 3
}

// AnchorAt returns the anchor for a grid row and column.
func AnchorAt(row, column int) Anchor {
	return Anchor(row*3 + column + 1)
}
