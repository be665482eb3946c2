// Package engine runs the Battleship turn state machine on top of the board
// model and the link protocol.
package engine

import "irship/protocol"

// Link is the byte transport between the two boards.
type Link interface {
	protocol.Receiver

	// Send transmits one byte. There is no delivery confirmation; an error
	// only means the byte never left this side.
	Send(b byte) error
}

// Reflector is implemented by links that receive their own transmissions,
// the way an IR receiver picks up the LED next to it.
type Reflector interface {
	Reflects() bool
}

// Direction is a navigation switch event.
type Direction uint8

const (
	DirNone Direction = iota
	DirNorth
	DirEast
	DirSouth
	DirWest
	DirPushed
)

func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirEast:
		return "east"
	case DirSouth:
		return "south"
	case DirWest:
		return "west"
	case DirPushed:
		return "pushed"
	}
	return "none"
}

// Input is polled once per tick. Each method reports whether the event
// happened since the previous poll; nothing is queued.
type Input interface {
	Direction() Direction
	ButtonPushed() bool
}

// Display is the LED matrix. The engine never reads it back.
type Display interface {
	// Clear turns every pixel off and stops any text.
	Clear()

	// SetPixel sets the pixel at (row, col).
	SetPixel(row, col int, on bool)

	// SetChar shows a single character.
	SetChar(ch rune)

	// ScrollText scrolls text across the matrix for the given number of ticks.
	ScrollText(text string, ticks int)
}

// Config holds the timing parameters of a match. All durations are in ticks.
type Config struct {
	TickRate           int    // ticks per second
	ScrollRate         int    // characters scrolled per 10 seconds
	FontWidth          int    // columns per character
	SettleTicks        int    // wait before polling for their turn
	CursorBlinkTicks   int    // cursor toggle period
	ExploredBlinkTicks int    // explored ship cell toggle period
	Banner             string // title text; empty skips the title scroll
}

// DefaultConfig returns the timing the LED boards run at.
func DefaultConfig() Config {
	return Config{
		TickRate:           500,
		ScrollRate:         20,
		FontWidth:          5,
		SettleTicks:        250,
		CursorBlinkTicks:   100,
		ExploredBlinkTicks: 10,
		Banner:             " G ",
	}
}

// ScrollTicks returns how long text takes to scroll across the matrix.
// Characters are separated by one blank column.
func (c Config) ScrollTicks(text string) int {
	n := len([]rune(text))
	if n == 0 || c.ScrollRate <= 0 || c.FontWidth <= 0 {
		return 0
	}
	cols := n*c.FontWidth + n - 1
	return cols * c.TickRate * 10 / (c.ScrollRate * c.FontWidth)
}
