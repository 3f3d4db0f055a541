package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tim-projects/aegis-tui/internal/otp"
	"github.com/tim-projects/aegis-tui/internal/platform"
	statepkg "github.com/tim-projects/aegis-tui/internal/state"
	inputui "github.com/tim-projects/aegis-tui/internal/ui/input"
	renderui "github.com/tim-projects/aegis-tui/internal/ui/render"
	"github.com/tim-projects/aegis-tui/internal/vault"
)

// Options configures the application at startup.
type Options struct {
	// Vault is the decrypted vault to browse.
	Vault *vault.Vault
	// Group preselects a group filter, as if picked from the group list.
	Group string
	// RevealUUID opens reveal mode for that entry immediately.
	RevealUUID string
	// NoColor disables the color theme.
	NoColor bool
	// ClipboardTool overrides clipboard auto-detection with an
	// external command.
	ClipboardTool string
}

// Application represents the running app.
type Application struct {
	screen    tcell.Screen
	state     *statepkg.AppState
	reducer   *statepkg.StateReducer
	renderer  *renderui.Renderer
	input     *inputui.InputHandler
	actionCh  chan statepkg.Action
	clipboard *platform.Clipboard

	shouldQuit bool
	// quitAfterReveal exits once a --uuid reveal closes, when no group
	// filter asked to keep browsing.
	quitAfterReveal bool
	// lastCopied tracks which reveal session already went to the
	// clipboard, so ticks do not re-copy.
	lastCopied *statepkg.RevealSession
}

// NewApplication initializes the terminal and builds the UI over a
// decrypted vault.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	rows, groups := statepkg.BuildIndex(opts.Vault)
	state := statepkg.NewAppState(rows, groups)
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	// Entries with OTP types we cannot generate stay in the list but
	// never reveal.
	generators := make(map[string]otp.Generator, len(opts.Vault.DB.Entries))
	for _, e := range opts.Vault.DB.Entries {
		if gen, err := otp.FromEntry(e); err == nil {
			generators[e.UUID] = gen
		}
	}

	theme := renderui.GetColorTheme()
	if opts.NoColor {
		theme = renderui.GetMonoTheme()
	}

	actionCh := make(chan statepkg.Action, 10)
	app := &Application{
		screen:    screen,
		state:     state,
		reducer:   statepkg.NewStateReducer(generators),
		renderer:  renderui.NewRenderer(screen, theme),
		input:     inputui.NewInputHandler(actionCh),
		actionCh:  actionCh,
		clipboard: platform.NewClipboard(opts.ClipboardTool),
	}
	app.input.SetState(state)
	state.ClipboardAvailable = true

	if opts.Group != "" {
		state.SetGroupFilter(opts.Group)
	}
	if opts.RevealUUID != "" {
		app.revealByUUID(opts.RevealUUID)
		if opts.Group == "" && state.Mode == statepkg.ModeReveal {
			app.quitAfterReveal = true
		}
	}
	return app, nil
}

// revealByUUID moves the cursor onto the entry and opens it, as a
// --uuid flag asks for.
func (app *Application) revealByUUID(uuid string) {
	for i, row := range app.state.VisibleRows() {
		if row.UUID == uuid {
			app.state.SelectedRow = i
			app.state.CursorMoved = true
			app.handleAction(statepkg.EnterAction{})
			return
		}
	}
}

// copyRevealedCode puts a freshly revealed code on the clipboard once
// per session. Clipboard trouble is not fatal, the code is on screen.
func (app *Application) copyRevealedCode() {
	session := app.state.Reveal
	if session == nil || session == app.lastCopied || session.Err != nil {
		return
	}
	app.lastCopied = session
	if err := app.clipboard.Copy(session.Code); err == nil {
		app.state.LastCopyTime = time.Now()
	}
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.screen.Fini()
	return nil
}
