package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"irship/board"
	"irship/engine"
)

// MatchView is what the panels read from a running match.
type MatchView interface {
	Phase() engine.Phase
	Player() engine.Player
	OwnLayoutID() uint8
	OpponentLayoutID() uint8
	OwnGrid() *board.Grid
	OpponentGrid() *board.Grid
	Outcome() engine.Outcome
	Stats() engine.Stats
}

// GameInfoPanel displays match information alongside the matrix.
type GameInfoPanel struct {
	box  *tview.TextView
	link string
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box:  tview.NewTextView(),
		link: "connecting",
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetLinkStatus sets the one-word link state shown in the panel.
func (p *GameInfoPanel) SetLinkStatus(status string) {
	p.link = status
}

// Refresh redraws the panel from m.
func (p *GameInfoPanel) Refresh(m MatchView) {
	p.box.SetText(panelText(m, p.link))
}

func panelText(m MatchView, link string) string {
	var b strings.Builder

	b.WriteString("[white::b]Match[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&b, "[white]Link:[-:-:-]  %s\n", link)
	fmt.Fprintf(&b, "[white]Phase:[-:-:-] %s\n", m.Phase().Name())

	if _, ok := m.Phase().(*engine.TitleScreen); ok {
		return b.String()
	}
	if _, ok := m.Phase().(*engine.SelectPlayer); ok {
		return b.String()
	}
	fmt.Fprintf(&b, "[white]Player:[-:-:-] %d\n", m.Player())

	if own := m.OwnGrid(); own != nil {
		fmt.Fprintf(&b, "\n[white::b]Fleet[-:-:-] [dimgray]layout %d[-]\n", m.OwnLayoutID())
		writeGrid(&b, own)
	}
	if view := m.OpponentGrid(); view != nil {
		fmt.Fprintf(&b, "\n[white::b]Target[-:-:-] [dimgray]layout %d[-]\n", m.OpponentLayoutID())
		writeGrid(&b, view)
	}

	s := m.Stats()
	b.WriteString("\n[white::b]Shots[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&b, "[white]Fired:[-:-:-] %d  [red]%d hit[-]  [dimgray]%d miss[-]\n", s.ShotsFired, s.Hits, s.Misses)
	fmt.Fprintf(&b, "[white]Taken:[-:-:-] [red]%d hit[-]  [dimgray]%d miss[-]\n", s.HitsTaken, s.MissesTaken)

	switch m.Outcome() {
	case engine.Won:
		b.WriteString("\n[green::b]Victory[-:-:-]\n")
	case engine.Lost:
		b.WriteString("\n[red::b]Defeat[-:-:-]\n")
	}
	return b.String()
}

func writeGrid(b *strings.Builder, g *board.Grid) {
	for _, line := range g.Lines() {
		b.WriteString("  ")
		for _, r := range line {
			switch r {
			case board.ShipExplored.Rune():
				b.WriteString("[red]X[-]")
			case board.ShipUnexplored.Rune():
				b.WriteString("[white]#[-]")
			case board.EmptyExplored.Rune():
				b.WriteString("[blue]o[-]")
			default:
				b.WriteString("[dimgray].[-]")
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
}

// HintText is the status bar text for the given phase.
func HintText(p engine.Phase) string {
	switch p.(type) {
	case *engine.SelectPlayer:
		return "  ←→ choose player   ␣ confirm   q quit"
	case *engine.ChooseBoard:
		return "  ←→ browse fleets   ␣ confirm   q quit"
	case *engine.AwaitBoardExchange:
		return "  ◌ Waiting for the other board...   q quit"
	case *engine.SelectShootPosition:
		return "  hjkl/↑↓←→ aim   ⏎ fire   q quit"
	case *engine.TheirTurn:
		return "  ◌ Opponent is aiming...   q quit"
	case *engine.End:
		return "  r · new match   q quit"
	}
	return "  q quit"
}

// CreateGameLayout creates the main game layout with the matrix and side panel.
func CreateGameLayout(matrix *LEDMatrix, infoPanel *GameInfoPanel, hint *tview.TextView) *tview.Flex {
	matrixWidth := 2*board.Cols + 3
	matrixHeight := board.Rows + 2

	// Center the matrix with flex spacers
	matrixCol := tview.NewFlex().SetDirection(tview.FlexRow)
	matrixCol.AddItem(nil, 0, 1, false)
	matrixCol.AddItem(matrix.Box, matrixHeight, 0, true)
	matrixCol.AddItem(nil, 0, 1, false)

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(nil, 0, 1, false)
	boardRow.AddItem(matrixCol, matrixWidth, 0, true)
	boardRow.AddItem(nil, 0, 1, false)
	boardRow.AddItem(infoPanel.Box(), 30, 0, false)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 3, 0, false)

	return mainFlex
}
