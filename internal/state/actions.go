package state

import "time"

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}

// EnterAction confirms the current selection: reveal an entry in list
// mode, pick a group in group select mode.
type EnterAction struct{}

// ===== SEARCH ACTIONS =====

type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}

// ClearAction is bound to ESC: drop the search term and group filter
// and return to the plain list.
type ClearAction struct{}

// ===== MODE ACTIONS =====

// ToggleGroupSelectAction switches between list and group select mode.
type ToggleGroupSelectAction struct{}

// CloseRevealAction leaves reveal mode back to the list.
type CloseRevealAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

// TickAction advances the reveal countdown.
type TickAction struct {
	Now time.Time
}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
