package cmd

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"irship/engine"
	"irship/record"
	"irship/ui"
)

// frameRate caps how often the screen is redrawn; the match itself ticks at
// the configured rate.
const frameRate = 50

// play runs a match over l until the user quits or ctx ends. lost is closed
// when the link goes away.
func play(ctx context.Context, l engine.Link, lost <-chan struct{}, log logrus.FieldLogger) error {
	app := tview.NewApplication()
	rootPage := tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ⬡ irship ")

	hint := tview.NewTextView()
	hint.SetBorder(true)
	hint.SetBorderPadding(0, 0, 1, 1)
	hint.SetTitle(" Status ")
	hint.SetTitleAlign(tview.AlignLeft)

	matrix := ui.NewLEDMatrix(cfg)
	panel := ui.NewGameInfoPanel()
	panel.SetLinkStatus("connected")
	rootPage.AddPage("game", ui.CreateGameLayout(matrix, panel, hint), true, true)

	keys := &ui.KeyLatch{}
	m := engine.NewMatch(l, keys, matrix,
		engine.WithConfig(cfg.Timing.Engine()),
		engine.WithLogger(log),
	)

	var rec *record.Recorder
	if cfg.Records.Enabled {
		if dir, err := cfg.RecordsDir(); err != nil {
			log.WithError(err).Warn("match will not be recorded")
		} else {
			rec = record.NewRecorder(dir, log)
		}
	}
	m.OnTransition(func(from, to engine.Phase) {
		if rec != nil {
			rec.Transition(m, from, to)
		}
		hint.SetText(ui.HintText(to))
	})
	m.OnShot(func(ev engine.ShotEvent) {
		if rec != nil {
			rec.Shot(m, ev)
		}
	})
	hint.SetText(ui.HintText(m.Phase()))
	panel.Refresh(m)

	rootPage.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		if event.Key() == tcell.KeyRune && event.Rune() == 'r' && m.Finished() {
			m.Reset()
			return nil
		}
		if keys.HandleKey(event) {
			return nil
		}
		return event
	})

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return app.SetRoot(rootPage, true).Run()
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.Timing.TickRate))
		defer ticker.Stop()
		drawEvery := max(1, cfg.Timing.TickRate/frameRate)

		for n := 1; ; n++ {
			select {
			case <-ctx.Done():
				app.Stop()
				return nil
			case <-lost:
				lost = nil
				log.Warn("link lost")
				app.QueueUpdate(func() { panel.SetLinkStatus("lost") })
			case <-ticker.C:
				update := func() {
					m.Tick()
					matrix.Advance()
				}
				if n%drawEvery != 0 {
					app.QueueUpdate(update)
					continue
				}
				app.QueueUpdateDraw(func() {
					update()
					panel.Refresh(m)
				})
			}
		}
	})

	return g.Wait()
}
