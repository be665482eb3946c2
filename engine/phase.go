package engine

import "irship/board"

// Phase is one stage of a match. Each variant carries only the state that
// stage needs; Match.Tick switches on the concrete type.
type Phase interface {
	Name() string
	phase()
}

// Player is the local identity picked before the board exchange.
type Player uint8

const (
	PlayerOne Player = 1
	PlayerTwo Player = 2
)

// Other returns the opposite player.
func (p Player) Other() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// Rune is the character shown while selecting.
func (p Player) Rune() rune {
	if p == PlayerTwo {
		return '2'
	}
	return '1'
}

// Outcome is how the match ended from this board's point of view.
type Outcome uint8

const (
	Undecided Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "undecided"
}

// StartCursor is where the aiming cursor starts in a new match.
var StartCursor = board.Position{Row: 3, Col: 2}

type TitleScreen struct{}

type SelectPlayer struct {
	Player Player
}

type ChooseBoard struct {
	LayoutID uint8
}

type AwaitBoardExchange struct {
	LayoutID         uint8
	OwnSent          bool
	OpponentReceived bool
}

type SelectShootPosition struct {
	Cursor board.Position

	cursorOn      bool
	cursorTicks   int
	exploredOn    bool
	exploredTicks int
}

type TheirTurn struct {
	// Aim is restored as the cursor when our turn comes back.
	Aim    board.Position
	Waited int
}

// ShowingMessage scrolls Text for Total ticks and then moves to Next.
type ShowingMessage struct {
	Text    string
	Total   int
	Elapsed int
	Next    Phase
}

type End struct {
	Outcome Outcome
}

func (*TitleScreen) Name() string         { return "title" }
func (*SelectPlayer) Name() string        { return "select-player" }
func (*ChooseBoard) Name() string         { return "choose-board" }
func (*AwaitBoardExchange) Name() string  { return "await-board-exchange" }
func (*SelectShootPosition) Name() string { return "select-shoot-position" }
func (*TheirTurn) Name() string           { return "their-turn" }
func (*ShowingMessage) Name() string      { return "showing-message" }
func (*End) Name() string                 { return "end" }

func (*TitleScreen) phase()         {}
func (*SelectPlayer) phase()        {}
func (*ChooseBoard) phase()         {}
func (*AwaitBoardExchange) phase()  {}
func (*SelectShootPosition) phase() {}
func (*TheirTurn) phase()           {}
func (*ShowingMessage) phase()      {}
func (*End) phase()                 {}
