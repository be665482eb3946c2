package board

import "fmt"

// Position is a cell coordinate, row 0 at the top and col 0 at the left.
type Position struct {
	Row int
	Col int
}

// InBounds reports whether p addresses a cell of the grid.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Cols
}

// Clamp moves p by (dRow, dCol), saturating at the grid edges.
func (p Position) Clamp(dRow, dCol int) Position {
	return Position{
		Row: min(max(p.Row+dRow, 0), Rows-1),
		Col: min(max(p.Col+dCol, 0), Cols-1),
	}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Grid is indexed as Grid[row][col].
type Grid [Rows][Cols]Cell

// BuildGrid materializes a grid from a layout: ship bits become
// ShipUnexplored, everything else EmptyUnexplored.
func BuildGrid(layout Layout) *Grid {
	var g Grid
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if layout.Ship(row, col) {
				g[row][col] = ShipUnexplored
			} else {
				g[row][col] = EmptyUnexplored
			}
		}
	}
	return &g
}

// At returns the cell at (row, col).
func (g *Grid) At(row, col int) Cell {
	return g[row][col]
}

// ResolveShot fires at (row, col). Only the targeted cell changes. Shooting
// an explored cell returns AlreadyExplored and changes nothing. Coordinates
// outside the grid are a caller bug and panic.
func (g *Grid) ResolveShot(row, col int) ShotResult {
	if !(Position{Row: row, Col: col}).InBounds() {
		panic(fmt.Sprintf("board: shot at (%d, %d) outside %dx%d grid", row, col, Rows, Cols))
	}

	switch cell := g[row][col]; cell {
	case ShipUnexplored:
		g[row][col] = cell.explore()
		if g.AllShipsFound() {
			return Winner
		}
		return Hit
	case EmptyUnexplored:
		g[row][col] = cell.explore()
		return Miss
	default:
		return AlreadyExplored
	}
}

// AllShipsFound reports whether no ShipUnexplored cell remains.
func (g *Grid) AllShipsFound() bool {
	return g.Count(ShipUnexplored) == 0
}

// Count returns how many cells are in state c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for row := range g {
		for col := range g[row] {
			if g[row][col] == c {
				n++
			}
		}
	}
	return n
}

// Lines serializes the grid one string per row, using Cell.Rune.
func (g *Grid) Lines() []string {
	lines := make([]string, Rows)
	for row := range g {
		runes := make([]rune, Cols)
		for col := range g[row] {
			runes[col] = g[row][col].Rune()
		}
		lines[row] = string(runes)
	}
	return lines
}
