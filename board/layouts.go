package board

import (
	"errors"
	"fmt"
)

var ErrUnknownLayout = errors.New("unknown layout")

// Layout is a packed ship bitmap, one byte per row. Only the low Cols bits
// are used and column 0 is the most significant of them.
type Layout [Rows]uint8

// Ship reports whether the layout places a ship at (row, col).
func (l Layout) Ship(row, col int) bool {
	return (l[row]>>(Cols-1-col))&1 == 1
}

// ShipCount returns the number of ship cells in the layout.
func (l Layout) ShipCount() int {
	n := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if l.Ship(row, col) {
				n++
			}
		}
	}
	return n
}

// Catalog is the fixed set of selectable layouts, addressed by index.
// Layout 0 only has two ship cells and is meant for testing.
var Catalog = [...]Layout{
	{
		0b00000,
		0b00000,
		0b00000,
		0b01010,
		0b00000,
		0b00000,
		0b00000,
	},
	{
		0b00110,
		0b11000,
		0b00001,
		0b00001,
		0b11101,
		0b00000,
		0b01100,
	},
	{
		0b10111,
		0b10000,
		0b00110,
		0b01000,
		0b01011,
		0b01000,
		0b00000,
	},
	{
		0b00001,
		0b10001,
		0b10101,
		0b10100,
		0b00011,
		0b00000,
		0b11000,
	},
	{
		0b01010,
		0b01010,
		0b00010,
		0b11000,
		0b00111,
		0b00000,
		0b11000,
	},
	{
		0b10001,
		0b10001,
		0b00001,
		0b00011,
		0b01100,
		0b00000,
		0b00111,
	},
}

// NumLayouts is the catalog size. It must stay at or below 16 so an ID fits
// in a board-ID announcement.
const NumLayouts = len(Catalog)

// LayoutByID looks up a catalog entry.
func LayoutByID(id uint8) (Layout, error) {
	if int(id) >= NumLayouts {
		return Layout{}, fmt.Errorf("%w: %d", ErrUnknownLayout, id)
	}
	return Catalog[id], nil
}

// WrapID steps id by delta through the catalog, wrapping at both ends.
func WrapID(id uint8, delta int) uint8 {
	n := (int(id) + delta) % NumLayouts
	if n < 0 {
		n += NumLayouts
	}
	return uint8(n)
}
