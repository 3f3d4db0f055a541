package state

import (
	"strconv"
	"strings"
)

// normalizedSearchTerm lowercases and trims the term for matching.
func normalizedSearchTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// parseNumericTerm parses a term made only of digits into a 1-based row
// number. Numeric terms select by the displayed index instead of
// filtering the list, as long as the number is in range.
func parseNumericTerm(term string) (int, bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return 0, false
	}
	for _, r := range term {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(term)
	if err != nil {
		return 0, false
	}
	return n, true
}

// applySearchTerm recomputes the view after the term changed and moves
// the selection accordingly: an in-range numeric term jumps to that row
// number, any other term filters and resets the cursor to the top.
func (s *AppState) applySearchTerm() {
	s.invalidateVisibleRows()

	if n := s.numericSelector(); n > 0 {
		s.SelectedRow = n - 1
		s.CursorMoved = true
		s.updateScrollVisibility()
		return
	}

	s.CursorMoved = false
	s.ScrollOffset = 0
	if s.VisibleCount() == 0 {
		s.SelectedRow = -1
	} else {
		s.SelectedRow = 0
	}
}

// visibleGroups returns the group names matching the group search term.
func (s *AppState) visibleGroups() []string {
	term := normalizedSearchTerm(s.GroupSearchTerm)
	if term == "" {
		return s.Groups
	}
	matched := make([]string, 0, len(s.Groups))
	for _, g := range s.Groups {
		if strings.Contains(strings.ToLower(g), term) {
			matched = append(matched, g)
		}
	}
	return matched
}

// VisibleGroups exposes the filtered group list to the renderer.
func (s *AppState) VisibleGroups() []string {
	return s.visibleGroups()
}

// clampGroupSelection keeps GroupSelected inside the filtered group
// list. -1 stays valid: it is the "All OTPs" row above the groups.
// GroupScroll counts lines of the combined list, All row included, so
// group i sits at line i+1.
func (s *AppState) clampGroupSelection() {
	count := len(s.visibleGroups())
	if s.GroupSelected >= count {
		s.GroupSelected = count - 1
	}
	if s.GroupSelected < -1 {
		s.GroupSelected = -1
	}

	visibleLines := s.ListHeight()
	line := s.GroupSelected + 1
	if line < s.GroupScroll {
		s.GroupScroll = line
	} else if line >= s.GroupScroll+visibleLines {
		s.GroupScroll = line - visibleLines + 1
	}

	maxOffset := count + 1 - visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.GroupScroll > maxOffset {
		s.GroupScroll = maxOffset
	}
	if s.GroupScroll < 0 {
		s.GroupScroll = 0
	}
}
