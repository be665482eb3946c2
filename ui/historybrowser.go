package ui

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"irship/board"
	"irship/record"
)

const historyHint = "  [dimgray]d[-] delete  [dimgray]q[-] back"

// HistoryBrowserUI provides a screen for browsing saved match records.
type HistoryBrowserUI struct {
	flex     *tview.Flex
	list     *tview.List
	preview  *tview.Box
	hint     *tview.TextView
	dir      string
	records  []record.MatchRecord
	selected int
	onDone   func()
}

// NewHistoryBrowser creates a browser over the records in dir.
func NewHistoryBrowser(dir string, onDone func()) *HistoryBrowserUI {
	hb := &HistoryBrowserUI{
		dir:    dir,
		onDone: onDone,
	}

	hb.list = tview.NewList()
	hb.list.SetBorder(true)
	hb.list.SetTitle(" Match History ")
	hb.list.ShowSecondaryText(false)
	hb.list.SetHighlightFullLine(true)
	hb.list.SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label))
	hb.list.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.Accent))

	hb.preview = tview.NewBox()
	hb.preview.SetBorder(true)
	hb.preview.SetTitle(" Boards ")
	hb.preview.SetDrawFunc(hb.drawPreview)

	hb.hint = tview.NewTextView()
	hb.hint.SetDynamicColors(true)
	hb.hint.SetBorder(false)
	hb.hint.SetText(historyHint)

	hb.list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		hb.selected = index
	})
	hb.list.SetInputCapture(hb.handleInput)

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(hb.list, 38, 0, true).
		AddItem(hb.preview, 0, 1, false)

	hb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(hb.hint, 1, 0, false)

	hb.Refresh()
	return hb
}

// Flex returns the flex container for this UI.
func (hb *HistoryBrowserUI) Flex() *tview.Flex {
	return hb.flex
}

// Refresh reloads the record list from disk.
func (hb *HistoryBrowserUI) Refresh() {
	hb.list.Clear()
	hb.records = nil
	hb.selected = 0

	recs, err := record.List(hb.dir)
	if err != nil || len(recs) == 0 {
		hb.list.AddItem("[dimgray]No matches recorded[-]", "", 0, nil)
		return
	}

	hb.records = recs
	for _, r := range recs {
		hb.list.AddItem(recordLabel(r), "", 0, nil)
	}
}

func recordLabel(r record.MatchRecord) string {
	outcome := r.Outcome
	if outcome == "" || outcome == "?" {
		outcome = "..."
	}
	return fmt.Sprintf("%s  P%d  %s", r.Date, r.Player, outcome)
}

func (hb *HistoryBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if hb.onDone != nil {
			hb.onDone()
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			if hb.onDone != nil {
				hb.onDone()
			}
			return nil
		case 'd':
			hb.deleteSelected()
			return nil
		}
	}
	return event
}

func (hb *HistoryBrowserUI) deleteSelected() {
	if hb.selected < 0 || hb.selected >= len(hb.records) {
		return
	}
	if err := os.Remove(hb.records[hb.selected].FilePath); err != nil {
		hb.hint.SetText(fmt.Sprintf("  [red]delete failed:[-] %s", tview.Escape(err.Error())))
		return
	}
	hb.hint.SetText(historyHint)
	hb.Refresh()
}

// drawPreview renders both boards of the selected record and its tally.
func (hb *HistoryBrowserUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if hb.selected < 0 || hb.selected >= len(hb.records) {
		return x, y, width, height
	}
	r := hb.records[hb.selected]

	gridWidth := 2*board.Cols + 2
	if width < 2*gridWidth+4 || height < board.Rows+8 {
		return x, y, width, height
	}

	startX, startY := x+2, y+1
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Bold(true)
	dimStyle := tcell.StyleDefault.Foreground(MenuColors.Hint)

	drawText(screen, startX, startY, fmt.Sprintf("Fleet %d", r.OwnLayout), labelStyle)
	drawText(screen, startX+gridWidth+2, startY, fmt.Sprintf("Target %d", r.OpponentLayout), labelStyle)
	drawRecordGrid(screen, startX, startY+1, r.OwnBoard)
	drawRecordGrid(screen, startX+gridWidth+2, startY+1, r.OpponentView)

	infoY := startY + board.Rows + 2
	t := r.Tally
	drawText(screen, startX, infoY, fmt.Sprintf("Fired %d  hit %d  miss %d", t.ShotsFired, t.Hits, t.Misses), dimStyle)
	infoY++
	drawText(screen, startX, infoY, fmt.Sprintf("Taken hit %d  miss %d", t.HitsTaken, t.MissesTaken), dimStyle)

	infoY++
	outcome := r.Outcome
	if outcome == "" || outcome == "?" {
		outcome = "Unfinished"
	}
	drawText(screen, startX, infoY, "Outcome: "+outcome, tcell.StyleDefault.Foreground(MenuColors.Accent))

	return x, y, width, height
}

// drawRecordGrid draws the saved lines of a grid, two columns per cell.
func drawRecordGrid(screen tcell.Screen, x, y int, lines []string) {
	for row, line := range lines {
		for col, ch := range []rune(line) {
			screen.SetContent(x+col*2, y+row, ch, nil, cellStyle(ch))
		}
	}
}

func cellStyle(ch rune) tcell.Style {
	switch ch {
	case board.ShipExplored.Rune():
		return tcell.StyleDefault.Foreground(MenuColors.Hit).Bold(true)
	case board.EmptyExplored.Rune():
		return tcell.StyleDefault.Foreground(MenuColors.Miss)
	case board.ShipUnexplored.Rune():
		return tcell.StyleDefault.Foreground(MenuColors.Label)
	}
	return tcell.StyleDefault.Foreground(MenuColors.Hint)
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}
