// Package ui specifies tview controls that stand in for the board hardware:
// the LED matrix, the navigation switch and a status panel.
package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"irship/board"
	"irship/config"
)

// textRow is the matrix row scrolling text and characters are drawn on.
const textRow = board.Rows / 2

// LEDMatrix is the 5x7 display. It implements engine.Display and must only
// be touched from the tview event loop.
type LEDMatrix struct {
	Box         *tview.Box
	pixels      [board.Rows][board.Cols]bool
	char        rune
	text        []rune
	textTicks   int
	textElapsed int
	cfg         *config.Config
	styles      []tcell.Color
}

func NewLEDMatrix(c *config.Config) *LEDMatrix {
	m := &LEDMatrix{Box: tview.NewBox()}
	m.SetConfig(c)
	m.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		// 2 characters per cell for square appearance, plus the frame
		w, h := board.Cols*2+3, board.Rows+2
		drawFrame(screen, x, y, w, h, tcell.StyleDefault.Foreground(m.styles[3]))
		m.drawLEDs(screen, x+2, y+1)
		return x, y, w, h
	})
	return m
}

func (m *LEDMatrix) SetConfig(c *config.Config) {
	m.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.Background), // 0
		tcell.PaletteColor(c.Theme.Colors.LedOn),      // 1
		tcell.PaletteColor(c.Theme.Colors.LedOff),     // 2
		tcell.PaletteColor(c.Theme.Colors.Frame),      // 3
		tcell.PaletteColor(c.Theme.Colors.Text),       // 4
	}
	m.cfg = c
}

func (m *LEDMatrix) Clear() {
	m.pixels = [board.Rows][board.Cols]bool{}
	m.char = 0
	m.text = nil
	m.textTicks, m.textElapsed = 0, 0
}

func (m *LEDMatrix) SetPixel(row, col int, on bool) {
	if !(board.Position{Row: row, Col: col}).InBounds() {
		return
	}
	m.pixels[row][col] = on
}

func (m *LEDMatrix) SetChar(ch rune) {
	m.text = nil
	m.char = ch
}

func (m *LEDMatrix) ScrollText(text string, ticks int) {
	m.char = 0
	m.text = []rune(text)
	m.textTicks, m.textElapsed = ticks, 0
}

// Advance moves scrolling text one tick along.
func (m *LEDMatrix) Advance() {
	if m.text != nil && m.textElapsed < m.textTicks {
		m.textElapsed++
	}
}

// Pixel reports whether the LED at (row, col) is lit.
func (m *LEDMatrix) Pixel(row, col int) bool {
	return m.pixels[row][col]
}

// Visible returns what the text row currently shows, if anything.
func (m *LEDMatrix) Visible() string {
	switch {
	case m.text != nil:
		return marquee(m.text, board.Cols*2, m.textElapsed, m.textTicks)
	case m.char != 0:
		return string(m.char)
	}
	return ""
}

func (m *LEDMatrix) drawLEDs(s tcell.Screen, l, t int) {
	bg := tcell.ColorDefault
	if m.cfg.Theme.DrawLedBackground {
		bg = m.styles[0]
	}
	on := tcell.StyleDefault.Background(bg).Foreground(m.styles[1])
	off := tcell.StyleDefault.Background(bg).Foreground(m.styles[2])
	text := tcell.StyleDefault.Background(bg).Foreground(m.styles[4]).Bold(true)

	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			style, r := off, m.cfg.Theme.Symbols.LedOff
			if m.pixels[row][col] {
				style, r = on, m.cfg.Theme.Symbols.LedOn
			}
			drawCell(s, style, r, col, row, l, t)
		}
	}

	switch {
	case m.text != nil:
		for i, r := range []rune(m.Visible()) {
			s.SetContent(l+i, t+textRow, r, nil, text)
		}
	case m.char != 0:
		drawCell(s, text, m.char, board.Cols/2, textRow, l, t)
	}
}

// marquee returns width characters of text scrolled in from the right.
// At elapsed 0 the window is blank; at total the text has fully left.
func marquee(text []rune, width, elapsed, total int) string {
	pad := strings.Repeat(" ", width)
	full := []rune(pad + string(text) + pad)
	steps := len(full) - width
	off := steps
	if total > 0 && elapsed < total {
		off = elapsed * steps / total
	}
	return string(full[off : off+width])
}

// drawCell draws one LED (2 characters wide).
func drawCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, ' ', nil, c)
}

func drawFrame(s tcell.Screen, x, y, w, h int, c tcell.Style) {
	for ix := 0; ix < w; ix++ {
		for iy := 0; iy < h; iy++ {
			if r := frameRune(ix, iy, w, h); r != 0 {
				s.SetContent(x+ix, y+iy, r, nil, c)
			}
		}
	}
}

// frameRune returns the box-drawing character for a frame position, or 0
// inside the frame.
func frameRune(x, y, width, height int) rune {
	isTop := y == 0
	isBottom := y == height-1
	isLeft := x == 0
	isRight := x == width-1

	switch {
	case isTop && isLeft:
		return '┌'
	case isTop && isRight:
		return '┐'
	case isBottom && isLeft:
		return '└'
	case isBottom && isRight:
		return '┘'
	case isTop, isBottom:
		return '─'
	case isLeft, isRight:
		return '│'
	default:
		return 0
	}
}
