// Package board holds the Battleship grid model: cell kinds, grids built from
// predefined layouts, and shot resolution.
package board

// Rows and Cols match the 5x7 LED matrix the grid is shown on.
const (
	Rows = 7
	Cols = 5
)

// Cell is the state of a single grid position.
type Cell uint8

const (
	ShipUnexplored Cell = iota
	ShipExplored
	EmptyUnexplored
	EmptyExplored
)

// IsShip reports whether the cell holds part of a ship.
func (c Cell) IsShip() bool {
	return c == ShipUnexplored || c == ShipExplored
}

// IsExplored reports whether the cell has been shot at.
func (c Cell) IsExplored() bool {
	return c == ShipExplored || c == EmptyExplored
}

// explore returns the explored counterpart of c, keeping its kind.
func (c Cell) explore() Cell {
	switch c {
	case ShipUnexplored:
		return ShipExplored
	case EmptyUnexplored:
		return EmptyExplored
	}
	return c
}

// Rune is the single-character form used in match records.
func (c Cell) Rune() rune {
	switch c {
	case ShipUnexplored:
		return '#'
	case ShipExplored:
		return 'X'
	case EmptyExplored:
		return 'o'
	default:
		return '.'
	}
}

func (c Cell) String() string {
	switch c {
	case ShipUnexplored:
		return "ship"
	case ShipExplored:
		return "ship-hit"
	case EmptyUnexplored:
		return "empty"
	case EmptyExplored:
		return "empty-miss"
	}
	return "unknown"
}

// ShotResult is the outcome of resolving a shot. The numeric values are the
// tags carried on the wire.
type ShotResult uint8

const (
	Miss ShotResult = iota
	Hit
	AlreadyExplored
	Winner
)

// Valid reports whether r is one of the four known results.
func (r ShotResult) Valid() bool {
	return r <= Winner
}

func (r ShotResult) String() string {
	switch r {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case AlreadyExplored:
		return "none"
	case Winner:
		return "winner"
	}
	return "unknown"
}
