package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"irship/board"
	"irship/config"
)

// ColorConfigUI lets the user pick LED colors with a live matrix preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func(error)

	selectedOn  int
	selectedOff int
	editingOff  bool
}

type paletteEntry struct {
	code int
	name string
}

// Lit LED colors
var ledOnColors = []paletteEntry{
	{196, "Red"},
	{202, "Orange"},
	{214, "Amber"},
	{226, "Yellow"},
	{46, "Green"},
	{51, "Cyan"},
	{33, "Blue"},
	{201, "Magenta"},
	{231, "White"},
}

// Unlit LED colors, dim enough that lit ones stand out
var ledOffColors = []paletteEntry{
	{52, "Dark Maroon"},
	{88, "Dark Red"},
	{58, "Olive"},
	{22, "Dark Green"},
	{23, "Teal"},
	{17, "Navy Blue"},
	{236, "Dark Gray"},
	{240, "Gray"},
	{232, "Black"},
}

// preview lights the cells of this layout.
var previewLayout = board.Catalog[1]

// NewColorConfig creates the LED color screen. onDone receives the error
// from saving the config, if any.
func NewColorConfig(cfg *config.Config, onDone func(error)) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:         cfg,
		onDone:      onDone,
		selectedOn:  cfg.Theme.Colors.LedOn,
		selectedOff: cfg.Theme.Colors.LedOff,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.highlight(index)
	})
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.confirm(index)
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) palette() []paletteEntry {
	if cc.editingOff {
		return ledOffColors
	}
	return ledOnColors
}

func (cc *ColorConfigUI) highlight(index int) {
	p := cc.palette()
	if index < 0 || index >= len(p) {
		return
	}
	if cc.editingOff {
		cc.selectedOff = p[index].code
	} else {
		cc.selectedOn = p[index].code
	}
}

// confirm applies the highlighted color. Picking the lit color moves on to
// the unlit one; picking the unlit color saves and leaves.
func (cc *ColorConfigUI) confirm(index int) {
	if index < 0 || index >= len(cc.palette()) {
		return
	}
	cc.highlight(index)
	if !cc.editingOff {
		cc.cfg.Theme.Colors.LedOn = cc.selectedOn
		cc.ToggleMode()
		return
	}
	cc.cfg.Theme.Colors.LedOff = cc.selectedOff
	cc.editingOff = false
	cc.populateColorList()
	cc.onDone(cc.cfg.Save())
}

func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedOn
	if cc.editingOff {
		cc.colorList.SetTitle(" Unlit LED (Tab: lit) ")
		current = cc.selectedOff
	} else {
		cc.colorList.SetTitle(" Lit LED (Tab: unlit) ")
	}
	for i, c := range cc.palette() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range cc.palette() {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if width < 2*board.Cols+4 || height < board.Rows+4 {
		return x, y, width, height
	}

	bg := tcell.ColorDefault
	if cc.cfg.Theme.DrawLedBackground {
		bg = tcell.PaletteColor(cc.cfg.Theme.Colors.Background)
	}
	on := tcell.StyleDefault.Background(bg).Foreground(tcell.PaletteColor(cc.selectedOn))
	off := tcell.StyleDefault.Background(bg).Foreground(tcell.PaletteColor(cc.selectedOff))

	l, t := x+2, y+1
	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			style, r := off, cc.cfg.Theme.Symbols.LedOff
			if previewLayout.Ship(row, col) {
				style, r = on, cc.cfg.Theme.Symbols.LedOn
			}
			drawCell(screen, style, r, col, row, l, t)
		}
	}

	info := fmt.Sprintf("Lit: %d  Unlit: %d", cc.selectedOn, cc.selectedOff)
	for i, ch := range info {
		if l+i < x+width-1 {
			screen.SetContent(l+i, t+board.Rows+1, ch, nil, tcell.StyleDefault)
		}
	}
	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between the lit and unlit color lists.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingOff = !cc.editingOff
	cc.populateColorList()
}
