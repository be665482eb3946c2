package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawLedBackground: false,
		Colors: ConfigColors{
			Background: 232,
			LedOn:      196,
			LedOff:     52,
			Frame:      240,
			Text:       196,
		},
		Symbols: ConfigSymbols{
			LedOn:  '●',
			LedOff: '·',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Timing: TimingConfig{
			TickRate:           500,
			SettleTicks:        250,
			CursorBlinkTicks:   100,
			ExploredBlinkTicks: 10,
			ScrollRate:         20,
			Banner:             " G ",
		},
		Link: LinkConfig{
			Listen: ":9191",
		},
		Log: LogConfig{
			Level: "info",
		},
		Records: RecordsConfig{
			Enabled: true,
		},
	}
}
