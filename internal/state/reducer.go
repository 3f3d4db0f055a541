package state

import (
	"time"

	"github.com/tim-projects/aegis-tui/internal/otp"
)

// StateReducer processes actions and updates state. It holds the code
// generators, keyed by entry UUID, so the state itself stays plain data.
type StateReducer struct {
	generators map[string]otp.Generator

	// now is overridable in tests.
	now func() time.Time
}

// NewStateReducer creates a reducer over the given generators.
func NewStateReducer(generators map[string]otp.Generator) *StateReducer {
	return &StateReducer{
		generators: generators,
		now:        time.Now,
	}
}

// Reduce applies one action and returns how much of the screen the
// change invalidated.
func (r *StateReducer) Reduce(s *AppState, action Action) (Redraw, error) {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case NavigateDownAction:
		if s.Mode == ModeGroupSelect {
			if s.GroupSelected >= len(s.visibleGroups())-1 {
				return RedrawNone, nil
			}
			s.GroupSelected++
			s.clampGroupSelection()
			return RedrawFull, nil
		}

		count := s.VisibleCount()
		if count == 0 {
			return RedrawNone, nil
		}
		// A clamped move at the edge still counts as an explicit pick.
		s.CursorMoved = true
		if s.SelectedRow < 0 {
			s.SelectedRow = 0
		} else if s.SelectedRow >= count-1 {
			return RedrawNone, nil
		} else {
			s.SelectedRow++
		}
		s.updateScrollVisibility()
		return RedrawFull, nil

	case NavigateUpAction:
		if s.Mode == ModeGroupSelect {
			// -1 is the "All OTPs" row above the first group.
			if s.GroupSelected <= -1 {
				return RedrawNone, nil
			}
			s.GroupSelected--
			s.clampGroupSelection()
			return RedrawFull, nil
		}

		count := s.VisibleCount()
		if count == 0 {
			return RedrawNone, nil
		}
		s.CursorMoved = true
		if s.SelectedRow < 0 {
			s.SelectedRow = count - 1
		} else if s.SelectedRow == 0 {
			return RedrawNone, nil
		} else {
			s.SelectedRow--
		}
		s.updateScrollVisibility()
		return RedrawFull, nil

	// ===== SEARCH =====

	case SearchCharAction:
		if s.Mode == ModeGroupSelect {
			s.GroupSearchTerm += string(a.Char)
			s.GroupSelected = -1
			s.clampGroupSelection()
			return RedrawFull, nil
		}
		s.SearchTerm += string(a.Char)
		s.applySearchTerm()
		return RedrawFull, nil

	case SearchBackspaceAction:
		if s.Mode == ModeGroupSelect {
			if s.GroupSearchTerm == "" {
				return RedrawNone, nil
			}
			runes := []rune(s.GroupSearchTerm)
			s.GroupSearchTerm = string(runes[:len(runes)-1])
			s.GroupSelected = -1
			s.clampGroupSelection()
			return RedrawFull, nil
		}
		if s.SearchTerm == "" {
			return RedrawNone, nil
		}
		runes := []rune(s.SearchTerm)
		s.SearchTerm = string(runes[:len(runes)-1])
		s.applySearchTerm()
		return RedrawFull, nil

	case ClearAction:
		switch s.Mode {
		case ModeGroupSelect:
			// Leave the picker, keep whatever filter was active.
			s.Mode = ModeList
			s.GroupSearchTerm = ""
			return RedrawFull, nil
		case ModeReveal:
			s.Mode = ModeList
			s.Reveal = nil
			return RedrawFull, nil
		default:
			if s.SearchTerm == "" && s.GroupFilter == "" {
				return RedrawNone, nil
			}
			s.SearchTerm = ""
			s.GroupFilter = ""
			s.CursorMoved = false
			s.ScrollOffset = 0
			s.invalidateVisibleRows()
			s.SelectedRow = 0
			if s.VisibleCount() == 0 {
				s.SelectedRow = -1
			}
			return RedrawFull, nil
		}

	// ===== MODES =====

	case ToggleGroupSelectAction:
		if s.Mode == ModeReveal {
			return RedrawNone, nil
		}
		if s.Mode == ModeGroupSelect {
			s.Mode = ModeList
			s.GroupSearchTerm = ""
			return RedrawFull, nil
		}
		s.Mode = ModeGroupSelect
		s.GroupSearchTerm = ""
		s.GroupSelected = -1
		s.GroupScroll = 0
		return RedrawFull, nil

	case EnterAction:
		if s.Mode == ModeGroupSelect {
			return r.pickGroup(s), nil
		}
		if s.Mode == ModeReveal {
			return RedrawNone, nil
		}
		return r.revealSelection(s), nil

	case CloseRevealAction:
		if s.Mode != ModeReveal {
			return RedrawNone, nil
		}
		s.Mode = ModeList
		s.Reveal = nil
		return RedrawFull, nil

	// ===== VIEW =====

	case ResizeAction:
		s.ScreenWidth = a.Width
		s.ScreenHeight = a.Height
		s.clampSelection()
		s.clampGroupSelection()
		return RedrawFull, nil

	case TickAction:
		if s.Mode != ModeReveal || s.Reveal == nil {
			return RedrawNone, nil
		}
		if s.Reveal.Tick(a.Now) {
			return RedrawPartial, nil
		}
		return RedrawNone, nil

	case QuitAction:
		// The loop handles shutdown; nothing to change here.
		return RedrawNone, nil
	}

	return RedrawNone, nil
}

// revealSelection opens reveal mode for the row under the cursor.
// A row qualifies when the user moved the cursor onto it, or when the
// search term narrowed the list to exactly one entry. The default
// selection on an unfiltered list does not qualify, so a stray Enter
// cannot reveal anything.
func (r *StateReducer) revealSelection(s *AppState) Redraw {
	entry := s.SelectedEntry()
	if entry == nil {
		return RedrawNone
	}

	uniqueHit := s.VisibleCount() == 1 && normalizedSearchTerm(s.SearchTerm) != ""
	if !s.CursorMoved && !uniqueHit {
		return RedrawNone
	}

	gen, ok := r.generators[entry.UUID]
	if !ok {
		return RedrawNone
	}
	s.Mode = ModeReveal
	s.Reveal = newRevealSession(*entry, gen, r.now())
	return RedrawFull
}

// pickGroup applies the highlighted group as the list filter. The -1
// row means all groups.
func (r *StateReducer) pickGroup(s *AppState) Redraw {
	if s.GroupSelected < 0 {
		s.GroupFilter = ""
	} else {
		groups := s.visibleGroups()
		if s.GroupSelected >= len(groups) {
			return RedrawNone
		}
		s.GroupFilter = groups[s.GroupSelected]
	}

	s.Mode = ModeList
	s.GroupSearchTerm = ""
	s.SearchTerm = ""
	s.CursorMoved = false
	s.ScrollOffset = 0
	s.invalidateVisibleRows()
	s.SelectedRow = 0
	if s.VisibleCount() == 0 {
		s.SelectedRow = -1
	}
	return RedrawFull
}
