package cmd

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"irship/ui"
)

// chooseLink shows the setup form and returns what the user picked. ok is
// false when they quit instead.
func chooseLink(ctx context.Context) (choice ui.LinkChoice, ok bool, err error) {
	app := tview.NewApplication()
	pages := tview.NewPages()

	colors := ui.NewColorConfig(cfg, func(err error) {
		pages.SwitchToPage("setup")
		if err != nil {
			pages.AddPage("error", tview.NewModal().
				SetText("Could not save colors: "+err.Error()).
				AddButtons([]string{"OK"}).
				SetDoneFunc(func(int, string) { pages.RemovePage("error") }), true, true)
		}
	})
	colors.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab:
			colors.ToggleMode()
			return nil
		case tcell.KeyEscape:
			pages.SwitchToPage("setup")
			return nil
		}
		return event
	})

	setup := ui.NewGameSetup(cfg.Link.Listen, cfg.Link.Peer, cfg.Link.Echo,
		func(c ui.LinkChoice) {
			choice, ok = c, true
			app.Stop()
		},
		app.Stop,
		func() { pages.SwitchToPage("colors") },
	)
	setup.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			app.Stop()
			return nil
		}
		return event
	})

	pages.AddPage("colors", colors.Flex(), true, false)
	pages.AddPage("setup", setup.Form(), true, true)

	stop := context.AfterFunc(ctx, app.Stop)
	defer stop()

	if err := app.SetRoot(pages, true).Run(); err != nil {
		return ui.LinkChoice{}, false, err
	}
	return choice, ok, nil
}

// applyChoice copies the form's answer into cfg.
func applyChoice(c ui.LinkChoice) {
	cfg.Link.Echo = c.Echo
	if c.Host {
		if c.Address != "" {
			cfg.Link.Listen = c.Address
		}
		return
	}
	cfg.Link.Peer = c.Address
}

func runSetup(ctx context.Context) error {
	choice, ok, err := chooseLink(ctx)
	if err != nil || !ok {
		return err
	}
	applyChoice(choice)
	if choice.Host {
		return runHost(ctx)
	}
	return runJoin(ctx)
}
