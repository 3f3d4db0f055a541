package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/tim-projects/aegis-tui/internal/state"
)

// countdownInterval paces the reveal countdown. 50ms keeps the seconds
// display accurate without busy-rendering.
const countdownInterval = 50 * time.Millisecond

// Run drives the event loop until the user quits.
func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var countdownTimer *time.Timer
	var countdownCh <-chan time.Time

	startCountdown := func() {
		if countdownTimer == nil {
			countdownTimer = time.NewTimer(countdownInterval)
		} else {
			if !countdownTimer.Stop() {
				select {
				case <-countdownTimer.C:
				default:
				}
			}
			countdownTimer.Reset(countdownInterval)
		}
		countdownCh = countdownTimer.C
	}

	stopCountdown := func() {
		if countdownTimer == nil {
			return
		}
		if !countdownTimer.Stop() {
			select {
			case <-countdownTimer.C:
			default:
			}
		}
		countdownCh = nil
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		// The timer only runs while a code is on screen.
		if app.state.Mode == statepkg.ModeReveal {
			startCountdown()
		} else {
			stopCountdown()
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-countdownCh:
			switch app.tickReveal() {
			case statepkg.RedrawFull:
				renderPending = true
			case statepkg.RedrawPartial:
				if !renderPending {
					app.renderer.UpdateReveal(app.state)
				}
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			app.screen.Sync()
			renderPending = true
		}

		if app.processActions() {
			renderPending = true
		}
	}

	stopCountdown()
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

// handleAction runs one action through the reducer and reports whether
// a full repaint is owed.
func (app *Application) handleAction(action statepkg.Action) bool {
	if _, ok := action.(statepkg.QuitAction); ok {
		app.shouldQuit = true
		return false
	}

	wasRevealed := app.state.Mode == statepkg.ModeReveal
	redraw, err := app.reducer.Reduce(app.state, action)
	if err != nil {
		return false
	}

	if !wasRevealed && app.state.Mode == statepkg.ModeReveal {
		app.copyRevealedCode()
	}
	if wasRevealed && app.state.Mode != statepkg.ModeReveal && app.quitAfterReveal {
		app.shouldQuit = true
	}

	switch redraw {
	case statepkg.RedrawFull:
		return true
	case statepkg.RedrawPartial:
		app.renderer.UpdateReveal(app.state)
		return false
	default:
		return false
	}
}

// tickReveal advances the countdown to the current wall clock.
func (app *Application) tickReveal() statepkg.Redraw {
	redraw, err := app.reducer.Reduce(app.state, statepkg.TickAction{Now: time.Now()})
	if err != nil {
		return statepkg.RedrawNone
	}
	return redraw
}

// processActions drains any queued actions without blocking.
func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}
