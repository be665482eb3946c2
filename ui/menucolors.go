package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette for the screens around the matrix.
var MenuColors = struct {
	Label      tcell.Color
	Hint       tcell.Color
	Accent     tcell.Color
	ButtonBG   tcell.Color
	ButtonText tcell.Color
	Hit        tcell.Color
	Miss       tcell.Color
}{
	Label:      tcell.PaletteColor(250), // Light gray
	Hint:       tcell.PaletteColor(245), // Dim gray
	Accent:     tcell.PaletteColor(109), // Blue
	ButtonBG:   tcell.PaletteColor(60),  // Nord blue
	ButtonText: tcell.PaletteColor(255), // White
	Hit:        tcell.PaletteColor(196),
	Miss:       tcell.PaletteColor(67),
}
