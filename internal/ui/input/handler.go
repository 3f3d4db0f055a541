package input

import (
	"github.com/gdamore/tcell/v2"

	statepkg "github.com/tim-projects/aegis-tui/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. The return value
// is false once the application should stop pumping events.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	inReveal := ih.state != nil && ih.state.Mode == statepkg.ModeReveal

	// Ctrl+C quits from every mode.
	if ev.Key() == tcell.KeyCtrlC {
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}

	if inReveal {
		// Any key closes the reveal view.
		ih.actionChan <- statepkg.CloseRevealAction{}
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.ClearAction{}
		return true

	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
		return true

	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
		return true

	case tcell.KeyEnter:
		ih.actionChan <- statepkg.EnterAction{}
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.SearchBackspaceAction{}
		return true

	case tcell.KeyCtrlG:
		ih.actionChan <- statepkg.ToggleGroupSelectAction{}
		return true

	case tcell.KeyRune:
		r := ev.Rune()
		// Printable ASCII feeds the incremental search.
		if r >= 32 && r <= 126 {
			ih.actionChan <- statepkg.SearchCharAction{Char: r}
		}
		return true
	}

	return true
}
